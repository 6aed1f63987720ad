package models

import "time"

// Notification kinds.
const (
	NotificationRegistrationConfirmation = "registration_confirmation"
)

// Notification delivery states.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification records a message sent (or attempted) for an event registration.
type Notification struct {
	ID             int64      `json:"id"`
	EventID        int64      `json:"eventId"`
	RegistrationID *int64     `json:"registrationId,omitempty"`
	Kind           string     `json:"kind"`
	Recipient      string     `json:"recipient"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
