package resources

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
)

var (
	errQuantity   = errors.New("must be at least 1")
	errResourceID = errors.New("must be a positive integer")
)

func positiveResourceID(value interface{}) error {
	id, _ := value.(*int64)
	if id != nil && *id < 1 {
		return errResourceID
	}
	return nil
}

func positiveQuantity(value interface{}) error {
	n, _ := value.(*int)
	if n != nil && *n < 1 {
		return errQuantity
	}
	return nil
}

// AssignRequest is the body for POST /events/:id/resources.
type AssignRequest struct {
	ResourceType models.ResourceType   `json:"resourceType"`
	ResourceName string                `json:"resourceName"`
	ResourceID   *int64                `json:"resourceId"`
	Quantity     *int                  `json:"quantity"`
	Notes        string                `json:"notes"`
	Status       models.ResourceStatus `json:"status"`
}

func (req *AssignRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ResourceType, validation.Required, validation.In(models.Values(models.ResourceTypes)...)),
		validation.Field(&req.ResourceName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.ResourceID, validation.By(positiveResourceID)),
		validation.Field(&req.Quantity, validation.By(positiveQuantity)),
		validation.Field(&req.Status, validation.In(models.Values(models.ResourceStatuses)...)),
	)
}

// UpdateRequest is the body for PUT /events/:id/resources/:resourceId. Absent fields are kept.
type UpdateRequest struct {
	ResourceName *string                `json:"resourceName"`
	Quantity     *int                   `json:"quantity"`
	Notes        *string                `json:"notes"`
	Status       *models.ResourceStatus `json:"status"`
}

func (req *UpdateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ResourceName, validation.NilOrNotEmpty),
		validation.Field(&req.Quantity, validation.By(positiveQuantity)),
		validation.Field(&req.Status, validation.In(models.Values(models.ResourceStatuses)...)),
	)
}

// StatusRequest is the body for PUT /events/:id/resources/:resourceId/status.
type StatusRequest struct {
	Status models.ResourceStatus `json:"status"`
}

func (req *StatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(models.Values(models.ResourceStatuses)...)),
	)
}

// Store is the resource persistence used by Service.
type Store interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.Resource, error)
	Get(ctx context.Context, eventID, id int64) (*models.Resource, error)
	IsAssigned(ctx context.Context, eventID int64, typ models.ResourceType, resourceID int64) (bool, error)
	Create(ctx context.Context, res *models.Resource) error
	Update(ctx context.Context, eventID, id int64, p models.ResourcePatch) (*models.Resource, error)
	Delete(ctx context.Context, eventID, id int64) error
	Counts(ctx context.Context, eventID int64) ([]TypeStatusCount, error)
}

// EventChecker reports whether an event exists.
type EventChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service implements resource assignment.
type Service struct {
	store  Store
	events EventChecker
}

// NewService creates a resource service.
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

// List returns the resources of an existing event.
func (s *Service) List(ctx context.Context, eventID int64) ([]models.Resource, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListByEvent(ctx, eventID)
}

// Get returns one resource of an event.
func (s *Service) Get(ctx context.Context, eventID, id int64) (*models.Resource, error) {
	return s.store.Get(ctx, eventID, id)
}

// Assign allocates a resource to an event. An external resource may be linked only once per event.
func (s *Service) Assign(ctx context.Context, eventID int64, req *AssignRequest) (*models.Resource, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if req.ResourceID != nil {
		taken, err := s.store.IsAssigned(ctx, eventID, req.ResourceType, *req.ResourceID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrAlreadyAssigned
		}
	}
	res := &models.Resource{
		EventID:      eventID,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		Quantity:     1,
		Notes:        req.Notes,
		Status:       req.Status,
	}
	if req.Quantity != nil {
		res.Quantity = *req.Quantity
	}
	if res.Status == "" {
		res.Status = models.ResourceStatusPending
	}
	if err := s.store.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Update changes the provided fields of a resource.
func (s *Service) Update(ctx context.Context, eventID, id int64, req *UpdateRequest) (*models.Resource, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	return s.store.Update(ctx, eventID, id, models.ResourcePatch{
		ResourceName: req.ResourceName,
		Quantity:     req.Quantity,
		Notes:        req.Notes,
		Status:       req.Status,
	})
}

// UpdateStatus sets the status of a resource.
func (s *Service) UpdateStatus(ctx context.Context, eventID, id int64, req *StatusRequest) (*models.Resource, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	status := req.Status
	return s.store.Update(ctx, eventID, id, models.ResourcePatch{Status: &status})
}

// Remove deletes a resource allocation.
func (s *Service) Remove(ctx context.Context, eventID, id int64) error {
	return s.store.Delete(ctx, eventID, id)
}

// Summary counts the resources of an event by type and by status.
func (s *Service) Summary(ctx context.Context, eventID int64) (*models.ResourceSummary, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	counts, err := s.store.Counts(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return buildSummary(counts), nil
}

func buildSummary(counts []TypeStatusCount) *models.ResourceSummary {
	sum := &models.ResourceSummary{
		ByType:   map[models.ResourceType]int{},
		ByStatus: make(map[models.ResourceStatus]int, len(models.ResourceStatuses)),
	}
	for _, st := range models.ResourceStatuses {
		sum.ByStatus[st] = 0
	}
	for _, c := range counts {
		sum.Total += c.Count
		sum.ByType[c.Type] += c.Count
		sum.ByStatus[c.Status] += c.Count
	}
	return sum
}
