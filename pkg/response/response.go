package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/pkg/apperr"
)

// Body is the standard API response envelope.
type Body struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details interface{}       `json:"details,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// Message sends a 200 JSON response carrying only a message.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Body{Success: true, Data: gin.H{"message": msg}})
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Error: err})
}

// Error renders any error through its apperr kind. Internal errors are logged and the raw
// error text is echoed in details.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	e := apperr.As(err)
	body := Body{Success: false, Error: e.Message, Fields: e.Fields}
	if len(e.Details) > 0 {
		body.Details = e.Details
	}
	if e.Kind == apperr.KindInternal {
		if logger != nil {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
			)
		}
		if e.Err != nil {
			body.Details = gin.H{"error": e.Err.Error()}
		}
	}
	c.JSON(e.Kind.Status(), body)
}
