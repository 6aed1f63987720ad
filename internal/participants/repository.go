package participants

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/database"
)

const registrationColumns = `id, event_id, full_name, email, phone, attendee_count, status, notes, custom_fields, registration_date, updated_at`

// AdmitFunc decides whether requested places fit, given the event capacity (nil = unlimited)
// and the attendees already registered.
type AdmitFunc func(capacity *int, current int) error

// StatusTotal is the registration and attendee count for one status.
type StatusTotal struct {
	Status        models.RegistrationStatus
	Registrations int
	Attendees     int
}

// Repository handles event_registrations persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a participants repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanRegistration(row pgx.Row, reg *models.Registration) error {
	return row.Scan(&reg.ID, &reg.EventID, &reg.FullName, &reg.Email, &reg.Phone, &reg.AttendeeCount,
		&reg.Status, &reg.Notes, &reg.CustomFields, &reg.RegistrationDate, &reg.UpdatedAt)
}

// ListByEvent returns the registrations of an event in registration order.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error) {
	q := `SELECT ` + registrationColumns + ` FROM event_registrations
		WHERE event_id = $1 ORDER BY registration_date ASC, id ASC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	list := []models.Registration{}
	for rows.Next() {
		var reg models.Registration
		if err := scanRegistration(rows, &reg); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

// Register inserts reg if admit accepts it. The event row stays locked from the capacity read
// until commit, so concurrent registrations for the same event are serialized.
func (r *Repository) Register(ctx context.Context, reg *models.Registration, admit AdmitFunc) error {
	const (
		lockEvent = `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`
		sumTaken  = `SELECT COALESCE(SUM(attendee_count), 0) FROM event_registrations WHERE event_id = $1`
		insert    = `INSERT INTO event_registrations (event_id, full_name, email, phone, attendee_count, status, notes, custom_fields)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, registration_date, updated_at`
	)
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var capacity *int
		if err := tx.QueryRow(ctx, lockEvent, reg.EventID).Scan(&capacity); err != nil {
			if database.IsNoRows(err) {
				return apperr.NotFound("event")
			}
			return fmt.Errorf("lock event: %w", err)
		}
		var current int
		if err := tx.QueryRow(ctx, sumTaken, reg.EventID).Scan(&current); err != nil {
			return fmt.Errorf("sum attendees: %w", err)
		}
		if err := admit(capacity, current); err != nil {
			return err
		}
		err := tx.QueryRow(ctx, insert, reg.EventID, reg.FullName, reg.Email, reg.Phone, reg.AttendeeCount,
			string(reg.Status), reg.Notes, reg.CustomFields).
			Scan(&reg.ID, &reg.RegistrationDate, &reg.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert registration: %w", err)
		}
		return nil
	})
}

// UpdateStatus sets the status of a registration of eventID. Notes are kept when nil.
func (r *Repository) UpdateStatus(ctx context.Context, eventID, id int64, status models.RegistrationStatus, notes *string) (*models.Registration, error) {
	q := `UPDATE event_registrations SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3 AND event_id = $4
		RETURNING ` + registrationColumns
	var reg models.Registration
	if err := scanRegistration(r.pool.QueryRow(ctx, q, string(status), notes, id, eventID), &reg); err != nil {
		if database.IsNoRows(err) {
			return nil, apperr.NotFound("participant")
		}
		return nil, fmt.Errorf("update registration status: %w", err)
	}
	return &reg, nil
}

// Delete removes a registration of eventID.
func (r *Repository) Delete(ctx context.Context, eventID, id int64) error {
	const q = `DELETE FROM event_registrations WHERE id = $1 AND event_id = $2`
	tag, err := r.pool.Exec(ctx, q, id, eventID)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("participant")
	}
	return nil
}

// Capacity returns the capacity of an event; nil means unlimited.
func (r *Repository) Capacity(ctx context.Context, eventID int64) (*int, error) {
	const q = `SELECT capacity FROM events WHERE id = $1`
	var capacity *int
	if err := r.pool.QueryRow(ctx, q, eventID).Scan(&capacity); err != nil {
		if database.IsNoRows(err) {
			return nil, apperr.NotFound("event")
		}
		return nil, fmt.Errorf("event capacity: %w", err)
	}
	return capacity, nil
}

// StatusTotals groups the registrations of an event by status.
func (r *Repository) StatusTotals(ctx context.Context, eventID int64) ([]StatusTotal, error) {
	const q = `SELECT status, COUNT(*), COALESCE(SUM(attendee_count), 0)
		FROM event_registrations WHERE event_id = $1 GROUP BY status`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("registration totals: %w", err)
	}
	defer rows.Close()

	var out []StatusTotal
	for rows.Next() {
		var st StatusTotal
		if err := rows.Scan(&st.Status, &st.Registrations, &st.Attendees); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
