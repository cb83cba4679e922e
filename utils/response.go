package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextRequestIDKey is where the request id middleware stores its value.
const ContextRequestIDKey = "request_id"

// JSONResponse is the envelope of every API response. Code 0 is success;
// failures pair the HTTP status with a numeric application code.
type JSONResponse struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Created is Success with 201.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusCreated, 0, "success", data)
}

// Error returns a failure envelope. The request id lets clients quote the
// matching access log line.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, JSONResponse{
		Code:      code,
		Message:   message,
		RequestID: ctx.GetString(ContextRequestIDKey),
	})
}

// ValidationError returns 422 with per-field messages under data.errors.
func ValidationError(ctx *gin.Context, code int, errors map[string]string) {
	ctx.JSON(http.StatusUnprocessableEntity, JSONResponse{
		Code:      code,
		Message:   "the given data was invalid",
		Data:      gin.H{"errors": errors},
		RequestID: ctx.GetString(ContextRequestIDKey),
	})
}
