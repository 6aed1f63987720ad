package events

import (
	"context"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
)

// Store is the event persistence used by Service.
type Store interface {
	List(ctx context.Context, f models.EventFilter, ids []int64) ([]models.Event, error)
	EventIDsByPark(ctx context.Context, parkID int64) ([]int64, error)
	ParksByEvents(ctx context.Context, eventIDs []int64) (map[int64][]models.ParkSummary, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, e *models.Event, parkIDs []int64) error
	Update(ctx context.Context, e *models.Event, parkIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type resourceLister interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.Resource, error)
}

type registrationLister interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error)
}

type staffLister interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.StaffMember, error)
}

type evaluationLister interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.Evaluation, error)
}

// Details are the child collections merged into an event detail.
type Details struct {
	Resources     resourceLister
	Registrations registrationLister
	Staff         staffLister
	Evaluations   evaluationLister
}

// Service implements event operations.
type Service struct {
	store   Store
	details Details
}

// NewService creates an event service.
func NewService(store Store, details Details) *Service {
	return &Service{store: store, details: details}
}

// List returns events matching f, each with its parks.
func (s *Service) List(ctx context.Context, f models.EventFilter) ([]models.Event, error) {
	var ids []int64
	if f.ParkID != nil {
		var err error
		ids, err = s.store.EventIDsByPark(ctx, *f.ParkID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []models.Event{}, nil
		}
	}
	list, err := s.store.List(ctx, f, ids)
	if err != nil {
		return nil, err
	}
	if err := s.attachParks(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByPark returns the events held in a park.
func (s *Service) ListByPark(ctx context.Context, parkID int64) ([]models.Event, error) {
	return s.List(ctx, models.EventFilter{ParkID: &parkID})
}

func (s *Service) attachParks(ctx context.Context, list []models.Event) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	parks, err := s.store.ParksByEvents(ctx, ids)
	if err != nil {
		return err
	}
	for i := range list {
		list[i].Parks = parks[list[i].ID]
		if list[i].Parks == nil {
			list[i].Parks = []models.ParkSummary{}
		}
	}
	return nil
}

// Get returns an event merged with its parks and every child collection.
func (s *Service) Get(ctx context.Context, id int64) (*models.EventDetail, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &models.EventDetail{Event: *e}

	parks, err := s.store.ParksByEvents(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	d.Parks = nonNil(parks[id])

	if s.details.Resources != nil {
		if d.Resources, err = s.details.Resources.ListByEvent(ctx, id); err != nil {
			return nil, err
		}
	}
	if s.details.Registrations != nil {
		if d.Registrations, err = s.details.Registrations.ListByEvent(ctx, id); err != nil {
			return nil, err
		}
	}
	if s.details.Staff != nil {
		if d.Staff, err = s.details.Staff.ListByEvent(ctx, id); err != nil {
			return nil, err
		}
	}
	if s.details.Evaluations != nil {
		if d.Evaluations, err = s.details.Evaluations.ListByEvent(ctx, id); err != nil {
			return nil, err
		}
	}
	d.Resources = nonNil(d.Resources)
	d.Registrations = nonNil(d.Registrations)
	d.Staff = nonNil(d.Staff)
	d.Evaluations = nonNil(d.Evaluations)
	return d, nil
}

// Create validates req and stores a new event with its parks. An empty park list fails
// validation on parkIds. The returned event has no parks.
func (s *Service) Create(ctx context.Context, req *EventRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	e := req.ToEvent()
	if err := s.store.Create(ctx, &e, req.ParkIDs); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update validates req, rewrites event id and replaces its park set.
func (s *Service) Update(ctx context.Context, id int64, req *EventRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	e := req.ToEvent()
	e.ID = id
	if err := s.store.Update(ctx, &e, req.ParkIDs); err != nil {
		return nil, err
	}
	list := []models.Event{e}
	if err := s.attachParks(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Delete removes an event and everything attached to it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
