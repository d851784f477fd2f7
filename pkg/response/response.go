package response

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// includeStack controls whether error bodies carry a stack trace.
// It is enabled everywhere except release mode.
var includeStack = true

// SetReleaseMode hides stack traces from error responses
func SetReleaseMode(release bool) {
	includeStack = !release
}

// ErrorBody is the error response shape
type ErrorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// OK sends a 200 response with the given body
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 response with the given body
func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

// Message sends a 200 response with only a message field
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Error sends an error response; the stack trace is attached only outside
// release mode
func Error(c *gin.Context, statusCode int, message string) {
	body := ErrorBody{Message: message}
	if includeStack {
		body.Stack = string(debug.Stack())
	}
	c.JSON(statusCode, body)
}

// BadRequest sends a 400 error response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict sends a 409 error response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError sends a 500 error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
