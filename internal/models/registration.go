package models

import (
	"encoding/json"
	"time"
)

// Registration is an attendee (or party) signed up for an event.
type Registration struct {
	ID               int64              `json:"id"`
	EventID          int64              `json:"eventId"`
	FullName         string             `json:"fullName"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	AttendeeCount    int                `json:"attendeeCount"`
	Status           RegistrationStatus `json:"status"`
	Notes            string             `json:"notes"`
	CustomFields     json.RawMessage    `json:"customFields,omitempty"`
	RegistrationDate time.Time          `json:"registrationDate"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// RegistrationSummary aggregates registrations of one event.
type RegistrationSummary struct {
	TotalRegistrations int                        `json:"totalRegistrations"`
	TotalAttendees     int                        `json:"totalAttendees"`
	ByStatus           map[RegistrationStatus]int `json:"byStatus"`
	Capacity           *int                       `json:"capacity"`
	Available          *int                       `json:"available"`
}
