package events

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/parkops/events-backend/internal/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	errNoParks        = errors.New("at least one park is required")
	errInvalidParkID  = errors.New("park ids must be positive integers")
	errEndBeforeStart = errors.New("must not be before startDate")
	errMultiline      = errors.New("must be a single line")
)

// EventRequest is the body for POST /events and PUT /events/:id.
type EventRequest struct {
	Title             string                  `json:"title"`
	Description       string                  `json:"description"`
	EventType         models.EventType        `json:"eventType"`
	TargetAudience    models.TargetAudience   `json:"targetAudience"`
	Status            models.EventStatus      `json:"status"`
	StartDate         string                  `json:"startDate"`
	EndDate           *string                 `json:"endDate"`
	StartTime         *string                 `json:"startTime"`
	EndTime           *string                 `json:"endTime"`
	IsRecurring       bool                    `json:"isRecurring"`
	RecurrencePattern *string                 `json:"recurrencePattern"`
	Capacity          *int                    `json:"capacity"`
	RegistrationType  models.RegistrationType `json:"registrationType"`
	OrganizerName     string                  `json:"organizerName"`
	OrganizerEmail    string                  `json:"organizerEmail"`
	OrganizerPhone    string                  `json:"organizerPhone"`
	Latitude          *float64                `json:"latitude"`
	Longitude         *float64                `json:"longitude"`
	ParkIDs           []int64                 `json:"parkIds"`
}

// Validate checks the payload and reports every violated field at once.
func (req *EventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200), validation.By(singleLine)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.EventType, validation.Required, validation.In(models.Values(models.EventTypes)...)),
		validation.Field(&req.TargetAudience, validation.In(models.Values(models.TargetAudiences)...)),
		validation.Field(&req.Status, validation.In(models.Values(models.EventStatuses)...)),
		validation.Field(&req.StartDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.EndDate, validation.Date(dateLayout), validation.By(req.endNotBeforeStart)),
		validation.Field(&req.StartTime, validation.Date(timeLayout)),
		validation.Field(&req.EndTime, validation.Date(timeLayout)),
		validation.Field(&req.Capacity, validation.Min(0)),
		validation.Field(&req.RegistrationType, validation.In(models.Values(models.RegistrationTypes)...)),
		validation.Field(&req.OrganizerEmail, is.Email),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.ParkIDs, validation.Required.Error(errNoParks.Error()), validation.By(positiveIDs)),
	)
}

func (req *EventRequest) endNotBeforeStart(value interface{}) error {
	end, _ := value.(*string)
	if end == nil || *end == "" || req.StartDate == "" {
		return nil
	}
	// Both are validated YYYY-MM-DD strings, so lexical order is date order.
	if *end < req.StartDate {
		return errEndBeforeStart
	}
	return nil
}

func singleLine(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "\r\n") {
		return errMultiline
	}
	return nil
}

func positiveIDs(value interface{}) error {
	ids, _ := value.([]int64)
	for _, id := range ids {
		if id <= 0 {
			return errInvalidParkID
		}
	}
	return nil
}

// ToEvent maps the request onto an event, applying defaults for omitted enums.
func (req *EventRequest) ToEvent() models.Event {
	e := models.Event{
		Title:             req.Title,
		Description:       req.Description,
		EventType:         req.EventType,
		TargetAudience:    req.TargetAudience,
		Status:            req.Status,
		StartDate:         req.StartDate,
		EndDate:           emptyToNil(req.EndDate),
		StartTime:         emptyToNil(req.StartTime),
		EndTime:           emptyToNil(req.EndTime),
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: emptyToNil(req.RecurrencePattern),
		Capacity:          req.Capacity,
		RegistrationType:  req.RegistrationType,
		OrganizerName:     req.OrganizerName,
		OrganizerEmail:    req.OrganizerEmail,
		OrganizerPhone:    req.OrganizerPhone,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
	}
	if e.TargetAudience == "" {
		e.TargetAudience = models.AudienceAll
	}
	if e.Status == "" {
		e.Status = models.EventStatusDraft
	}
	if e.RegistrationType == "" {
		e.RegistrationType = models.RegistrationFree
	}
	return e
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
