package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope for every API response.
type Response struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Success bool         `json:"success"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
		Success: true,
	})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
		Success: true,
	})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error response.
func Error(c *gin.Context, code int, message string, fields ...FieldError) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
		Success: false,
		Fields:  fields,
	})
}

// RenderError writes err using the status it maps to.
func RenderError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	Error(c, appErr.Status, appErr.Message, appErr.Fields...)
}

// WantsHTML reports whether the client prefers an HTML document, which is how
// browser navigations are told apart from API calls. A bare */* does not count.
func WantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), gin.MIMEHTML)
}
