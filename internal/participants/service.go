package participants

import (
	"context"

	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
)

// Store is the registration persistence used by Service.
type Store interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error)
	Register(ctx context.Context, reg *models.Registration, admit AdmitFunc) error
	UpdateStatus(ctx context.Context, eventID, id int64, status models.RegistrationStatus, notes *string) (*models.Registration, error)
	Delete(ctx context.Context, eventID, id int64) error
	Capacity(ctx context.Context, eventID int64) (*int, error)
	StatusTotals(ctx context.Context, eventID int64) ([]StatusTotal, error)
}

// EventChecker reports whether an event exists.
type EventChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Notifier is told about every accepted registration.
type Notifier interface {
	RegistrationCreated(ctx context.Context, reg *models.Registration) error
}

// Service implements participant registration.
type Service struct {
	store    Store
	events   EventChecker
	notifier Notifier
	objects  ObjectStore
	logger   *zap.Logger
}

// NewService creates a participant service. notifier may be nil.
func NewService(store Store, events EventChecker, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, events: events, notifier: notifier, logger: logger}
}

// WithExports enables CSV exports to objects.
func (s *Service) WithExports(objects ObjectStore) *Service {
	s.objects = objects
	return s
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

// List returns the registrations of an existing event, oldest first.
func (s *Service) List(ctx context.Context, eventID int64) ([]models.Registration, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListByEvent(ctx, eventID)
}

// Register admits a registration when the event has room for its attendees.
func (s *Service) Register(ctx context.Context, eventID int64, req *RegisterRequest) (*models.Registration, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	reg := req.ToRegistration(eventID)
	err := s.store.Register(ctx, reg, func(capacity *int, current int) error {
		return checkCapacity(capacity, current, reg.AttendeeCount)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.RegistrationCreated(ctx, reg); err != nil {
			s.logger.Warn("registration notification not queued",
				zap.Int64("event_id", eventID),
				zap.Int64("registration_id", reg.ID),
				zap.Error(err),
			)
		}
	}
	return reg, nil
}

// checkCapacity counts every existing registration, whatever its status.
func checkCapacity(capacity *int, current, requested int) error {
	if capacity == nil {
		return nil
	}
	available := *capacity - current
	if available < 0 {
		available = 0
	}
	if requested > available {
		return apperr.CapacityExceeded(available, requested)
	}
	return nil
}

// UpdateStatus changes the status (and optionally the notes) of a registration.
func (s *Service) UpdateStatus(ctx context.Context, eventID, id int64, req *StatusRequest) (*models.Registration, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	return s.store.UpdateStatus(ctx, eventID, id, req.Status, req.Notes)
}

// Remove deletes a registration.
func (s *Service) Remove(ctx context.Context, eventID, id int64) error {
	return s.store.Delete(ctx, eventID, id)
}

// Summary aggregates the registrations of an event against its capacity.
func (s *Service) Summary(ctx context.Context, eventID int64) (*models.RegistrationSummary, error) {
	capacity, err := s.store.Capacity(ctx, eventID)
	if err != nil {
		return nil, err
	}
	totals, err := s.store.StatusTotals(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return buildSummary(capacity, totals), nil
}

func buildSummary(capacity *int, totals []StatusTotal) *models.RegistrationSummary {
	sum := &models.RegistrationSummary{
		ByStatus: make(map[models.RegistrationStatus]int, len(models.RegistrationStatuses)),
		Capacity: capacity,
	}
	for _, st := range models.RegistrationStatuses {
		sum.ByStatus[st] = 0
	}
	for _, t := range totals {
		sum.ByStatus[t.Status] += t.Registrations
		sum.TotalRegistrations += t.Registrations
		sum.TotalAttendees += t.Attendees
	}
	if capacity != nil {
		available := *capacity - sum.TotalAttendees
		sum.Available = &available
	}
	return sum
}
