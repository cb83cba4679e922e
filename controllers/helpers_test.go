package controllers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cppla/postboard/config"
	"github.com/cppla/postboard/routes"
	"github.com/cppla/postboard/testutil"
	"github.com/cppla/postboard/utils"
)

// browser drives the full handler over HTTP, keeping cookies between requests
// and leaving redirects to the test.
type browser struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	db     *gorm.DB
}

func newBrowser(t *testing.T, tweak ...func(*config.AppConfig)) *browser {
	t.Helper()

	c := config.Defaults()
	c.AppKey = "controllers-test-key"
	c.GinMode = "test"
	c.LogLevel = "silent"
	c.RateLimitPerMinute = 1000
	for _, fn := range tweak {
		fn(&c)
	}
	config.Set(c)
	t.Cleanup(config.Reset)
	utils.SetRedis(nil)

	db := testutil.NewDB(t)
	server := httptest.NewServer(routes.NewHandler(db))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:      t,
		server: server,
		db:     db,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.server.URL + path)
	require.NoError(b.t, err)
	return readBody(b.t, resp)
}

// submit posts an HTML form and returns the status and redirect target.
func (b *browser) submit(path string, form url.Values) (int, string) {
	b.t.Helper()
	resp, err := b.client.PostForm(b.server.URL+path, form)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, resp.Header.Get("Location")
}

// api sends a JSON request, optionally with a bearer token.
func (b *browser) api(method, path, token string, body interface{}) (int, apiEnvelope) {
	b.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		reader = strings.NewReader(string(raw))
	}
	req, err := http.NewRequest(method, b.server.URL+path, reader)
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	status, text := readBody(b.t, resp)

	var env apiEnvelope
	require.NoError(b.t, json.Unmarshal([]byte(text), &env), text)
	return status, env
}

func (b *browser) token(name string) string {
	b.t.Helper()
	tok, err := utils.GenerateToken(name, time.Hour)
	require.NoError(b.t, err)
	return tok
}

type apiEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e apiEnvelope) decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, out))
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}
