package models

import "time"

// Event is a scheduled activity held in one or more parks.
// Dates are YYYY-MM-DD strings and times HH:MM strings, as stored.
type Event struct {
	ID                int64            `json:"id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	EventType         EventType        `json:"eventType"`
	TargetAudience    TargetAudience   `json:"targetAudience"`
	Status            EventStatus      `json:"status"`
	StartDate         string           `json:"startDate"`
	EndDate           *string          `json:"endDate"`
	StartTime         *string          `json:"startTime"`
	EndTime           *string          `json:"endTime"`
	IsRecurring       bool             `json:"isRecurring"`
	RecurrencePattern *string          `json:"recurrencePattern"`
	Capacity          *int             `json:"capacity"`
	RegistrationType  RegistrationType `json:"registrationType"`
	OrganizerName     string           `json:"organizerName"`
	OrganizerEmail    string           `json:"organizerEmail"`
	OrganizerPhone    string           `json:"organizerPhone"`
	Latitude          *float64         `json:"latitude"`
	Longitude         *float64         `json:"longitude"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`

	Parks []ParkSummary `json:"parks,omitempty"`
}

// EventDetail is an event merged with every dependent collection.
type EventDetail struct {
	Event
	Parks         []ParkSummary  `json:"parks"`
	Resources     []Resource     `json:"resources"`
	Registrations []Registration `json:"registrations"`
	Staff         []StaffMember  `json:"staff"`
	Evaluations   []Evaluation   `json:"evaluations"`
}

// EventFilter narrows ListEvents.
type EventFilter struct {
	Status   EventStatus
	Type     EventType
	ParkID   *int64
	Search   string
	Upcoming bool
}

// ParkSummary is the park projection attached to events.
type ParkSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
