package evaluations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
)

type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Evaluation
}

type knownEvents map[int64]bool

func (k knownEvents) Exists(_ context.Context, id int64) (bool, error) { return k[id], nil }

func (m *memStore) ListByEvent(_ context.Context, eventID int64) ([]models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Evaluation{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].EventID == eventID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, ev *models.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ev.ID = m.nextID
	ev.CreatedAt = time.Now()
	ev.UpdatedAt = ev.CreatedAt
	m.rows = append(m.rows, *ev)
	return nil
}

func (m *memStore) Update(_ context.Context, eventID, id int64, p models.EvaluationPatch) (*models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		ev := &m.rows[i]
		if ev.ID != id || ev.EventID != eventID {
			continue
		}
		if p.RespondentType != nil {
			ev.RespondentType = *p.RespondentType
		}
		if p.Rating != nil {
			ev.Rating = p.Rating
		}
		if p.Feedback != nil {
			ev.Feedback = *p.Feedback
		}
		if p.SurveyAnswers != nil {
			ev.SurveyAnswers = p.SurveyAnswers
		}
		out := *ev
		return &out, nil
	}
	return nil, apperr.NotFound("evaluation")
}

func (m *memStore) Delete(_ context.Context, eventID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, ev := range m.rows {
		if ev.ID == id && ev.EventID == eventID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("evaluation")
}

func intPtr(v int) *int { return &v }

func TestCreate_ValidatesRatingAndRespondent(t *testing.T) {
	svc := NewService(&memStore{}, knownEvents{1: true})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, &CreateRequest{Rating: intPtr(6)})
	assert.Contains(t, apperr.As(err).Fields, "rating")

	_, err = svc.Create(ctx, 1, &CreateRequest{Rating: intPtr(0)})
	assert.Contains(t, apperr.As(err).Fields, "rating")

	_, err = svc.Create(ctx, 1, &CreateRequest{RespondentType: "sponsor"})
	assert.Contains(t, apperr.As(err).Fields, "respondentType")

	_, err = svc.Create(ctx, 1, &CreateRequest{SurveyAnswers: json.RawMessage(`[1,2]`)})
	assert.Contains(t, apperr.As(err).Fields, "surveyAnswers")

	_, err = svc.Create(ctx, 5, &CreateRequest{Rating: intPtr(4)})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateListUpdateRemove(t *testing.T) {
	svc := NewService(&memStore{}, knownEvents{1: true})
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, &CreateRequest{Rating: intPtr(5), Feedback: "Excelente"})
	require.NoError(t, err)
	assert.Equal(t, models.RespondentParticipant, first.RespondentType)
	assert.Nil(t, first.SurveyAnswers)

	second, err := svc.Create(ctx, 1, &CreateRequest{
		RespondentType: models.RespondentVolunteer,
		SurveyAnswers:  json.RawMessage(`{"volvería":true}`),
	})
	require.NoError(t, err)
	assert.Nil(t, second.Rating)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	feedback := "Muy bueno"
	updated, err := svc.Update(ctx, 1, first.ID, &UpdateRequest{Feedback: &feedback})
	require.NoError(t, err)
	assert.Equal(t, "Muy bueno", updated.Feedback)
	assert.Equal(t, 5, *updated.Rating)

	_, err = svc.Update(ctx, 1, first.ID, &UpdateRequest{Rating: intPtr(9)})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	require.NoError(t, svc.Remove(ctx, 1, first.ID))
	assert.True(t, apperr.IsKind(svc.Remove(ctx, 1, first.ID), apperr.KindNotFound))

	_, err = svc.List(ctx, 2)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(&memStore{}, knownEvents{1: true}), zap.NewNop())
	r := gin.New()
	r.POST("/events/:id/evaluations", h.Create)

	tests := []struct {
		path string
		body string
		want int
	}{
		{"/events/1/evaluations", `{"rating":4,"feedback":"Bien"}`, http.StatusCreated},
		{"/events/1/evaluations", `{"rating":7}`, http.StatusBadRequest},
		{"/events/1/evaluations", `{"rating":"x"}`, http.StatusBadRequest},
		{"/events/2/evaluations", `{"rating":3}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, tt.body)
	}
}
