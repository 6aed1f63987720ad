package notifications

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/database"
)

// Repository handles event_notifications persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notifications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByEvent returns notification log rows for an event, newest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]models.Notification, error) {
	const q = `SELECT id, event_id, registration_id, kind, recipient, subject, status, sent_at, error_message, created_at
		FROM event_notifications
		WHERE event_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	list := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		var subject, errMsg *string
		if err := rows.Scan(&n.ID, &n.EventID, &n.RegistrationID, &n.Kind, &n.Recipient, &subject, &n.Status,
			&n.SentAt, &errMsg, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if subject != nil {
			n.Subject = *subject
		}
		if errMsg != nil {
			n.ErrorMessage = *errMsg
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Create inserts a pending notification row.
func (r *Repository) Create(ctx context.Context, n *models.Notification) error {
	const q = `INSERT INTO event_notifications (event_id, registration_id, kind, recipient, subject, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	if n.Status == "" {
		n.Status = models.NotificationPending
	}
	err := r.pool.QueryRow(ctx, q, n.EventID, n.RegistrationID, n.Kind, n.Recipient, n.Subject, n.Status).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err, "event_notifications_event_id_fkey") {
			return apperr.NotFound("event")
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// MarkSent flags a notification as delivered.
func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	const q = `UPDATE event_notifications SET status = $1, sent_at = NOW(), error_message = NULL WHERE id = $2`
	if _, err := r.pool.Exec(ctx, q, models.NotificationSent, id); err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	return nil
}

// MarkFailed records a delivery failure.
func (r *Repository) MarkFailed(ctx context.Context, id int64, reason string) error {
	const q = `UPDATE event_notifications SET status = $1, error_message = $2 WHERE id = $3`
	if _, err := r.pool.Exec(ctx, q, models.NotificationFailed, reason, id); err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}
	return nil
}

// EventTitle returns the title of an event.
func (r *Repository) EventTitle(ctx context.Context, eventID int64) (string, error) {
	var title string
	err := r.pool.QueryRow(ctx, `SELECT title FROM events WHERE id = $1`, eventID).Scan(&title)
	if err != nil {
		if database.IsNoRows(err) {
			return "", apperr.NotFound("event")
		}
		return "", fmt.Errorf("event title: %w", err)
	}
	return title, nil
}
