package participants

import (
	"bytes"
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/parkops/events-backend/internal/models"
)

var (
	errAttendeeCount = errors.New("must be at least 1")
	errNotObject     = errors.New("must be a JSON object")
)

// RegisterRequest is the body for POST /events/:id/participants.
type RegisterRequest struct {
	FullName      string                    `json:"fullName"`
	Email         string                    `json:"email"`
	Phone         string                    `json:"phone"`
	AttendeeCount *int                      `json:"attendeeCount"`
	Notes         string                    `json:"notes"`
	Status        models.RegistrationStatus `json:"status"`
	CustomFields  json.RawMessage           `json:"customFields"`
}

// Validate checks the registration payload.
func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.AttendeeCount, validation.By(atLeastOne)),
		validation.Field(&req.Status, validation.In(models.Values(models.RegistrationStatuses)...)),
		validation.Field(&req.CustomFields, validation.By(jsonObject)),
	)
}

// ToRegistration applies defaults: one attendee, status registered.
func (req *RegisterRequest) ToRegistration(eventID int64) *models.Registration {
	reg := &models.Registration{
		EventID:       eventID,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		AttendeeCount: 1,
		Status:        req.Status,
		Notes:         req.Notes,
	}
	if req.AttendeeCount != nil {
		reg.AttendeeCount = *req.AttendeeCount
	}
	if reg.Status == "" {
		reg.Status = models.RegistrationStatusRegistered
	}
	if len(req.CustomFields) > 0 && !bytes.Equal(bytes.TrimSpace(req.CustomFields), []byte("null")) {
		reg.CustomFields = req.CustomFields
	}
	return reg
}

// StatusRequest is the body for PUT /events/:id/participants/:participantId/status.
type StatusRequest struct {
	Status models.RegistrationStatus `json:"status"`
	Notes  *string                   `json:"notes"`
}

// Validate requires a known status.
func (req *StatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(models.Values(models.RegistrationStatuses)...)),
	)
}

func atLeastOne(value interface{}) error {
	n, _ := value.(*int)
	if n != nil && *n < 1 {
		return errAttendeeCount
	}
	return nil
}

func jsonObject(value interface{}) error {
	raw, _ := value.(json.RawMessage)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var obj map[string]interface{}
	if raw[0] != '{' || json.Unmarshal(raw, &obj) != nil {
		return errNotObject
	}
	return nil
}
