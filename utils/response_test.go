package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		write      func(ctx *gin.Context)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			write:      func(ctx *gin.Context) { Success(ctx, gin.H{"id": 1}) },
			wantStatus: http.StatusOK,
			wantBody:   `{"code":0,"message":"success","data":{"id":1}}`,
		},
		{
			name:       "created",
			write:      func(ctx *gin.Context) { Created(ctx, gin.H{"id": 2}) },
			wantStatus: http.StatusCreated,
			wantBody:   `{"code":0,"message":"success","data":{"id":2}}`,
		},
		{
			name:       "error carries request id",
			write:      func(ctx *gin.Context) { Error(ctx, http.StatusNotFound, 40401, "post not found") },
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":40401,"message":"post not found","request_id":"req-1"}`,
		},
		{
			name: "validation",
			write: func(ctx *gin.Context) {
				ValidationError(ctx, 42201, map[string]string{"title": "The title field is required."})
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"code":42201,"message":"the given data was invalid","data":{"errors":{"title":"The title field is required."}},"request_id":"req-1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Set(ContextRequestIDKey, "req-1")
			tt.write(ctx)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
