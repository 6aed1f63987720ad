package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/auth"
	"github.com/parkops/events-backend/internal/evaluations"
	"github.com/parkops/events-backend/internal/events"
	"github.com/parkops/events-backend/internal/notifications"
	"github.com/parkops/events-backend/internal/participants"
	"github.com/parkops/events-backend/internal/resources"
	"github.com/parkops/events-backend/internal/staff"
)

func testRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	h := handlers{
		events:        events.NewHandler(events.NewService(nil, events.Details{}), log),
		participants:  participants.NewHandler(participants.NewService(nil, nil, nil, log), log),
		resources:     resources.NewHandler(resources.NewService(nil, nil), log),
		staff:         staff.NewHandler(staff.NewService(nil, nil), log),
		evaluations:   evaluations.NewHandler(evaluations.NewService(nil, nil), log),
		notifications: notifications.NewHandler(nil, nil, log),
	}
	jwtSvc := auth.NewJWTService("secret", "", 1)
	var router *gin.Engine
	require.NotPanics(t, func() { router = newRouter(h, jwtSvc, "*", log) }, "route table must not conflict")
	return router, jwtSvc
}

func TestRouter_PublicRoutes(t *testing.T) {
	r, _ := testRouter(t)

	for _, tt := range []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/events-reference-data", http.StatusOK},
		{http.MethodPost, "/events/abc/participants", http.StatusBadRequest},
		{http.MethodPost, "/events/abc/evaluations", http.StatusBadRequest},
		{http.MethodGet, "/events/0/resources/summary", http.StatusBadRequest},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`)))
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRouter_MutationsRequireToken(t *testing.T) {
	r, jwtSvc := testRouter(t)

	protected := []struct{ method, path string }{
		{http.MethodPost, "/events"},
		{http.MethodPut, "/events/1"},
		{http.MethodDelete, "/events/1"},
		{http.MethodPut, "/events/1/participants/2/status"},
		{http.MethodDelete, "/events/1/participants/2"},
		{http.MethodPost, "/events/1/participants/export"},
		{http.MethodPost, "/events/1/resources"},
		{http.MethodPut, "/events/1/resources/2"},
		{http.MethodPut, "/events/1/resources/2/status"},
		{http.MethodDelete, "/events/1/resources/2"},
		{http.MethodPost, "/events/1/volunteers"},
		{http.MethodPut, "/events/1/volunteers/2"},
		{http.MethodDelete, "/events/1/volunteers/2"},
		{http.MethodPost, "/events/1/staff"},
		{http.MethodPut, "/events/1/evaluations/2"},
		{http.MethodDelete, "/events/1/evaluations/2"},
		{http.MethodGet, "/events/1/notifications"},
	}
	for _, p := range protected {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}

	token, err := jwtSvc.Generate(1, "coord@parques.gob", "coordinator")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code, "validation runs once authenticated")
}
