package models

import (
	"encoding/json"
	"errors"
	"time"
)

// AssigneeKind tells internal personnel from volunteers.
type AssigneeKind string

const (
	AssigneeStaff     AssigneeKind = "staff"
	AssigneeVolunteer AssigneeKind = "volunteer"
)

var ErrInvalidAssignee = errors.New("assignee must reference exactly one of user or volunteer")

// Assignee is either internal staff (user id) or a volunteer (volunteer id), never both.
type Assignee struct {
	kind AssigneeKind
	id   int64
}

// InternalStaff builds an assignee for a platform user.
func InternalStaff(userID int64) Assignee { return Assignee{kind: AssigneeStaff, id: userID} }

// Volunteer builds an assignee for a volunteer record.
func Volunteer(volunteerID int64) Assignee { return Assignee{kind: AssigneeVolunteer, id: volunteerID} }

// AssigneeFromColumns rebuilds an assignee from the nullable storage columns.
func AssigneeFromColumns(userID, volunteerID *int64) (Assignee, error) {
	switch {
	case userID != nil && volunteerID == nil:
		return InternalStaff(*userID), nil
	case volunteerID != nil && userID == nil:
		return Volunteer(*volunteerID), nil
	default:
		return Assignee{}, ErrInvalidAssignee
	}
}

func (a Assignee) Kind() AssigneeKind { return a.kind }

// Columns returns the (user_id, volunteer_id) pair to persist.
func (a Assignee) Columns() (userID, volunteerID *int64) {
	id := a.id
	if a.kind == AssigneeVolunteer {
		return nil, &id
	}
	return &id, nil
}

// UserID returns the user id for internal staff.
func (a Assignee) UserID() (int64, bool) { return a.id, a.kind == AssigneeStaff }

// VolunteerID returns the volunteer id for volunteers.
func (a Assignee) VolunteerID() (int64, bool) { return a.id, a.kind == AssigneeVolunteer }

func (a Assignee) MarshalJSON() ([]byte, error) {
	userID, volunteerID := a.Columns()
	return json.Marshal(struct {
		Kind        AssigneeKind `json:"kind"`
		UserID      *int64       `json:"userId"`
		VolunteerID *int64       `json:"volunteerId"`
	}{a.kind, userID, volunteerID})
}

// StaffMember is a person assigned a role for an event.
type StaffMember struct {
	ID        int64       `json:"id"`
	EventID   int64       `json:"eventId"`
	Assignee  Assignee    `json:"assignee"`
	FullName  string      `json:"fullName"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      string      `json:"role"`
	StartTime *string     `json:"startTime"`
	EndTime   *string     `json:"endTime"`
	Status    StaffStatus `json:"status"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// StaffPatch holds the optional fields of a partial assignment update.
type StaffPatch struct {
	Role   *string
	Status *StaffStatus
	Notes  *string
}

// VolunteerRecord is a row of the volunteers registry.
type VolunteerRecord struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
}

// VolunteerOption is the id/name pair offered when picking volunteers.
type VolunteerOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Volunteer states. Only active volunteers are offered for assignment.
const (
	VolunteerStatusActive   = "active"
	VolunteerStatusInactive = "inactive"
)
