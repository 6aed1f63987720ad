package evaluations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
)

var (
	errRating    = errors.New("must be between 1 and 5")
	errNotObject = errors.New("must be a JSON object")
)

func ratingRange(value interface{}) error {
	r, _ := value.(*int)
	if r != nil && (*r < 1 || *r > 5) {
		return errRating
	}
	return nil
}

func jsonObject(value interface{}) error {
	raw := bytes.TrimSpace(value.(json.RawMessage))
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var obj map[string]interface{}
	if raw[0] != '{' || json.Unmarshal(raw, &obj) != nil {
		return errNotObject
	}
	return nil
}

func normalizeJSON(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return raw
}

// CreateRequest is the body for POST /events/:id/evaluations.
type CreateRequest struct {
	RespondentType models.RespondentType `json:"respondentType"`
	Rating         *int                  `json:"rating"`
	Feedback       string                `json:"feedback"`
	SurveyAnswers  json.RawMessage       `json:"surveyAnswers"`
}

func (req *CreateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RespondentType, validation.In(models.Values(models.RespondentTypes)...)),
		validation.Field(&req.Rating, validation.By(ratingRange)),
		validation.Field(&req.Feedback, validation.Length(0, 5000)),
		validation.Field(&req.SurveyAnswers, validation.By(jsonObject)),
	)
}

// UpdateRequest is the body for PUT /events/:id/evaluations/:evaluationId. Absent fields are kept.
type UpdateRequest struct {
	RespondentType *models.RespondentType `json:"respondentType"`
	Rating         *int                   `json:"rating"`
	Feedback       *string                `json:"feedback"`
	SurveyAnswers  json.RawMessage        `json:"surveyAnswers"`
}

func (req *UpdateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RespondentType, validation.In(models.Values(models.RespondentTypes)...)),
		validation.Field(&req.Rating, validation.By(ratingRange)),
		validation.Field(&req.SurveyAnswers, validation.By(jsonObject)),
	)
}

// Store is the evaluation persistence used by Service.
type Store interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.Evaluation, error)
	Create(ctx context.Context, ev *models.Evaluation) error
	Update(ctx context.Context, eventID, id int64, p models.EvaluationPatch) (*models.Evaluation, error)
	Delete(ctx context.Context, eventID, id int64) error
}

// EventChecker reports whether an event exists.
type EventChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service implements evaluation collection.
type Service struct {
	store  Store
	events EventChecker
}

// NewService creates an evaluation service.
func NewService(store Store, events EventChecker) *Service {
	return &Service{store: store, events: events}
}

func (s *Service) ensureEvent(ctx context.Context, eventID int64) error {
	ok, err := s.events.Exists(ctx, eventID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("event")
	}
	return nil
}

// List returns the evaluations of an event, newest first.
func (s *Service) List(ctx context.Context, eventID int64) ([]models.Evaluation, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListByEvent(ctx, eventID)
}

// Create records an evaluation. The respondent defaults to participant.
func (s *Service) Create(ctx context.Context, eventID int64, req *CreateRequest) (*models.Evaluation, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	ev := &models.Evaluation{
		EventID:        eventID,
		RespondentType: req.RespondentType,
		Rating:         req.Rating,
		Feedback:       req.Feedback,
		SurveyAnswers:  normalizeJSON(req.SurveyAnswers),
	}
	if ev.RespondentType == "" {
		ev.RespondentType = models.RespondentParticipant
	}
	if err := s.store.Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Update changes the provided fields of an evaluation.
func (s *Service) Update(ctx context.Context, eventID, id int64, req *UpdateRequest) (*models.Evaluation, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	return s.store.Update(ctx, eventID, id, models.EvaluationPatch{
		RespondentType: req.RespondentType,
		Rating:         req.Rating,
		Feedback:       req.Feedback,
		SurveyAnswers:  normalizeJSON(req.SurveyAnswers),
	})
}

// Remove deletes an evaluation.
func (s *Service) Remove(ctx context.Context, eventID, id int64) error {
	return s.store.Delete(ctx, eventID, id)
}
