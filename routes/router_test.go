package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/postboard/config"
	"github.com/cppla/postboard/middleware"
	"github.com/cppla/postboard/testutil"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	c := config.Defaults()
	c.AppKey = "routes-test-key"
	c.GinMode = "test"
	c.AllowedOrigins = []string{"https://board.example"}
	config.Set(c)
	t.Cleanup(config.Reset)
	return NewHandler(testutil.NewDB(t))
}

func TestHealthAndRoot(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"success","data":{"status":"ok"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts", w.Header().Get("Location"))
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts", nil)
	req.Header.Set("Origin", "https://board.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://board.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResourceRoutesRegistered(t *testing.T) {
	c := config.Defaults()
	c.AppKey = "routes-test-key"
	c.GinMode = "test"
	config.Set(c)
	t.Cleanup(config.Reset)

	got := map[string]bool{}
	for _, r := range SetupRouter(nil).Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /posts",
		"GET /posts/create",
		"POST /posts",
		"GET /posts/:id",
		"GET /posts/:id/edit",
		"PUT /posts/:id",
		"PATCH /posts/:id",
		"DELETE /posts/:id",
		"POST /posts/:id/comments",
		"DELETE /posts/:id/comments/:comment",
		"POST /api/v1/posts",
		"DELETE /api/v1/comments/:commentId",
	} {
		require.True(t, got[want], want)
	}
}
