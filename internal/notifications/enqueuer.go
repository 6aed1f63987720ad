package notifications

import (
	"context"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/queue"
)

// JobQueue accepts notification jobs.
type JobQueue interface {
	EnqueueNotification(ctx context.Context, payload queue.NotificationPayload) error
}

// Enqueuer turns accepted registrations into confirmation jobs.
type Enqueuer struct {
	queue JobQueue
}

// NewEnqueuer creates an Enqueuer on top of q.
func NewEnqueuer(q JobQueue) *Enqueuer {
	return &Enqueuer{queue: q}
}

// RegistrationCreated enqueues a confirmation for reg. Registrations without an email are skipped.
func (e *Enqueuer) RegistrationCreated(ctx context.Context, reg *models.Registration) error {
	if reg.Email == "" {
		return nil
	}
	return e.queue.EnqueueNotification(ctx, queue.NotificationPayload{
		EventID:        reg.EventID,
		RegistrationID: reg.ID,
		RecipientName:  reg.FullName,
		RecipientEmail: reg.Email,
		AttendeeCount:  reg.AttendeeCount,
	})
}
