// Package api defines the uniform JSON envelope returned by every endpoint.
package api

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// Generic client-facing messages. Internal details never reach the client.
const (
	MsgInternalError = "Internal server error"
	MsgInvalidBody   = "Invalid request body"
)

// Envelope is the response shape shared by all endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success writes a successful envelope with the given status.
func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Fail writes an error envelope with the given status.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Error: message})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: message})
}

// BindJSON decodes the request body into v. An empty body leaves v at its
// zero value so that field-level checks report the missing fields.
func BindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
