package staff

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
)

// DefaultVolunteerRole is the role given to volunteers assigned without one.
const DefaultVolunteerRole = "voluntario"

var errPositiveID = errors.New("must be a positive identifier")

func positiveID(value interface{}) error {
	id, _ := value.(int64)
	if id <= 0 {
		return errPositiveID
	}
	return nil
}

// AssignVolunteerRequest is the body for POST /events/:id/volunteers.
type AssignVolunteerRequest struct {
	VolunteerID int64  `json:"volunteerId"`
	Role        string `json:"role"`
	Notes       string `json:"notes"`
}

func (req *AssignVolunteerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.VolunteerID, validation.By(positiveID)),
		validation.Field(&req.Role, validation.Length(0, 100)),
	)
}

// AssignStaffRequest is the body for POST /events/:id/staff.
type AssignStaffRequest struct {
	UserID    int64   `json:"userId"`
	FullName  string  `json:"fullName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Role      string  `json:"role"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Notes     string  `json:"notes"`
}

func (req *AssignStaffRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.By(positiveID)),
		validation.Field(&req.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Role, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.StartTime, validation.Date("15:04")),
		validation.Field(&req.EndTime, validation.Date("15:04")),
	)
}

// UpdateRequest is the body for PUT /events/:id/volunteers/:assignmentId. Absent fields are kept.
type UpdateRequest struct {
	Role   *string             `json:"role"`
	Status *models.StaffStatus `json:"status"`
	Notes  *string             `json:"notes"`
}

func (req *UpdateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.NilOrNotEmpty),
		validation.Field(&req.Status, validation.In(models.Values(models.StaffStatuses)...)),
	)
}

// Store is the staff persistence used by Service.
type Store interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.StaffMember, error)
	ListVolunteersByEvent(ctx context.Context, eventID int64) ([]models.StaffMember, error)
	GetVolunteer(ctx context.Context, id int64) (*models.VolunteerRecord, error)
	IsAssigned(ctx context.Context, eventID int64, a models.Assignee) (bool, error)
	Create(ctx context.Context, m *models.StaffMember) error
	Update(ctx context.Context, eventID, id int64, p models.StaffPatch) (*models.StaffMember, error)
	Delete(ctx context.Context, eventID, id int64) error
	ActiveVolunteers(ctx context.Context) ([]models.VolunteerOption, error)
}

// EventChecker reports whether an event exists.
type EventChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service implements staff and volunteer assignment.
type Service struct {
	store  Store
	events EventChecker
}

// NewService creates a staff service.
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

// ListVolunteers returns the volunteer assignments of an event.
func (s *Service) ListVolunteers(ctx context.Context, eventID int64) ([]models.StaffMember, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListVolunteersByEvent(ctx, eventID)
}

// ListStaff returns every assignment of an event, staff and volunteers alike.
func (s *Service) ListStaff(ctx context.Context, eventID int64) ([]models.StaffMember, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListByEvent(ctx, eventID)
}

// AssignVolunteer assigns a registered volunteer to an event, copying their contact details.
func (s *Service) AssignVolunteer(ctx context.Context, eventID int64, req *AssignVolunteerRequest) (*models.StaffMember, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	v, err := s.store.GetVolunteer(ctx, req.VolunteerID)
	if err != nil {
		return nil, err
	}
	assignee := models.Volunteer(v.ID)
	taken, err := s.store.IsAssigned(ctx, eventID, assignee)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrVolunteerAssigned
	}

	m := &models.StaffMember{
		EventID:  eventID,
		Assignee: assignee,
		FullName: v.FullName,
		Email:    v.Email,
		Phone:    v.Phone,
		Role:     req.Role,
		Status:   models.StaffStatusAssigned,
		Notes:    req.Notes,
	}
	if m.Role == "" {
		m.Role = DefaultVolunteerRole
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AssignStaff assigns internal personnel to an event.
func (s *Service) AssignStaff(ctx context.Context, eventID int64, req *AssignStaffRequest) (*models.StaffMember, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	assignee := models.InternalStaff(req.UserID)
	taken, err := s.store.IsAssigned(ctx, eventID, assignee)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrStaffAssigned
	}

	m := &models.StaffMember{
		EventID:   eventID,
		Assignee:  assignee,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    models.StaffStatusAssigned,
		Notes:     req.Notes,
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateAssignment changes the provided fields of an assignment.
func (s *Service) UpdateAssignment(ctx context.Context, eventID, id int64, req *UpdateRequest) (*models.StaffMember, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	return s.store.Update(ctx, eventID, id, models.StaffPatch{Role: req.Role, Status: req.Status, Notes: req.Notes})
}

// RemoveAssignment deletes an assignment.
func (s *Service) RemoveAssignment(ctx context.Context, eventID, id int64) error {
	return s.store.Delete(ctx, eventID, id)
}

// AvailableVolunteers lists active volunteers by name.
func (s *Service) AvailableVolunteers(ctx context.Context) ([]models.VolunteerOption, error) {
	return s.store.ActiveVolunteers(ctx)
}
