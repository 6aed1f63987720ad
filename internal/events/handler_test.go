package events

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(newMemStore(), Details{}), zap.NewNop())

	r := gin.New()
	r.GET("/events", h.List)
	r.GET("/events/:id", h.GetByID)
	r.POST("/events", h.Create)
	r.PUT("/events/:id", h.Update)
	r.DELETE("/events/:id", h.Delete)
	r.GET("/parks/:id/events", h.ListByPark)
	r.GET("/events-reference-data", h.Reference)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHandler_ListByEmptyParkReturnsEmptyArray(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodGet, "/events?park=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestHandler_CreateValidationErrorListsFields(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodPost, "/events", map[string]interface{}{
		"title":     "x",
		"startDate": "2025-06-01",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Fields, "title")
	assert.Contains(t, env.Fields, "eventType")
	assert.Contains(t, env.Fields, "parkIds")
}

func TestHandler_CreateGetDelete(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodPost, "/events", map[string]interface{}{
		"title":     "Concierto al aire libre",
		"eventType": "cultural",
		"startDate": "2025-06-01",
		"capacity":  2,
		"parkIds":   []int64{5},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID       int64 `json:"id"`
		Capacity *int  `json:"capacity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotNil(t, created.Capacity)
	assert.Equal(t, 2, *created.Capacity)

	path := "/events/" + strconv.FormatInt(created.ID, 10)
	w, env = do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Parks []struct {
			ID int64 `json:"id"`
		} `json:"parks"`
		Registrations []json.RawMessage `json:"registrations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Parks, 1)
	assert.Equal(t, int64(5), detail.Parks[0].ID)
	assert.NotNil(t, detail.Registrations)

	w, _ = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "event not found", env.Error)
}

func TestHandler_InvalidIDs(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/events/abc", "/events/0", "/parks/x/events", "/events?park=-1"} {
		w, _ := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestHandler_InvalidStatusFilter(t *testing.T) {
	r := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/events?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Reference(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodGet, "/events-reference-data", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ref ReferenceData
	require.NoError(t, json.Unmarshal(env.Data, &ref))
	assert.Len(t, ref.EventTypes, 8)
	assert.Len(t, ref.TargetAudiences, 6)
	assert.Len(t, ref.EventStatuses, 5)
	assert.Len(t, ref.RegistrationTypes, 2)
	for _, o := range ref.EventTypes {
		assert.NotEmpty(t, o.Label, o.Value)
	}
}
