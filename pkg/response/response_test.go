package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/parkops/events-backend/pkg/apperr"
)

func render(t *testing.T, logger *zap.Logger, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/events/1/participants", nil)
	Error(c, logger, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestError_InternalEchoesCauseAndLogs(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	code, body := render(t, zap.New(core), fmt.Errorf("insert registration: %w", errors.New("connection reset")))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "internal server error", body["error"])
	assert.Equal(t, map[string]interface{}{"error": "insert registration: connection reset"}, body["details"])
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "request failed", logs.All()[0].Message)
}

func TestError_InternalWithoutLogger(t *testing.T) {
	code, body := render(t, nil, apperr.Internal(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, map[string]interface{}{"error": "boom"}, body["details"])
}

func TestError_Kinds(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"not found", apperr.NotFound("event"), http.StatusNotFound, "event not found"},
		{"conflict", apperr.Conflict("volunteer already assigned to this event"), http.StatusBadRequest, "volunteer already assigned to this event"},
		{"unauthorized", apperr.Unauthorized("invalid or expired token"), http.StatusUnauthorized, "invalid or expired token"},
		{"unavailable", apperr.Unavailable("exports storage not configured"), http.StatusServiceUnavailable, "exports storage not configured"},
		{"wrapped", fmt.Errorf("lookup: %w", apperr.NotFound("participant")), http.StatusNotFound, "participant not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := render(t, logger, tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, body["error"])
			assert.NotContains(t, body, "details")
		})
	}
	assert.Zero(t, logs.Len())
}

func TestError_CapacityDetailsAndFields(t *testing.T) {
	code, body := render(t, nil, apperr.CapacityExceeded(0, 1))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]interface{}{"available": float64(0), "requested": float64(1)}, body["details"])

	code, body = render(t, nil, apperr.Invalid("fullName", "cannot be blank"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation failed", body["error"])
	assert.Equal(t, map[string]interface{}{"fullName": "cannot be blank"}, body["fields"])
}

func TestSuccessHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, gin.H{"id": 3})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":3}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Message(c, "event deleted")
	assert.JSONEq(t, `{"success":true,"data":{"message":"event deleted"}}`, w.Body.String())
}
