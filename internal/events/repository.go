package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/database"
)

const eventColumns = `id, title, description, event_type, target_audience, status,
	to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	is_recurring, recurrence_pattern, capacity, registration_type,
	organizer_name, organizer_email, organizer_phone, latitude, longitude, created_at, updated_at`

// Repository handles event and event/park persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an event repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanEvent(row pgx.Row, e *models.Event) error {
	return row.Scan(&e.ID, &e.Title, &e.Description, &e.EventType, &e.TargetAudience, &e.Status,
		&e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime,
		&e.IsRecurring, &e.RecurrencePattern, &e.Capacity, &e.RegistrationType,
		&e.OrganizerName, &e.OrganizerEmail, &e.OrganizerPhone, &e.Latitude, &e.Longitude, &e.CreatedAt, &e.UpdatedAt)
}

// List returns events matching the filter, newest start date first. When ids is non-nil only
// those events are considered.
func (r *Repository) List(ctx context.Context, f models.EventFilter, ids []int64) ([]models.Event, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if ids != nil {
		conds = append(conds, "id = ANY("+arg(ids)+")")
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(string(f.Status)))
	}
	if f.Type != "" {
		conds = append(conds, "event_type = "+arg(string(f.Type)))
	}
	if f.Search != "" {
		p := arg(containsPattern(f.Search))
		conds = append(conds, "(title ILIKE "+p+` ESCAPE '\' OR description ILIKE `+p+` ESCAPE '\')`)
	}
	if f.Upcoming {
		conds = append(conds, "start_date >= CURRENT_DATE")
	}

	q := `SELECT ` + eventColumns + ` FROM events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	rows, err := r.pool.Query(ctx, q+" ORDER BY start_date DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	list := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// EventIDsByPark returns the ids of events held in a park.
func (r *Repository) EventIDsByPark(ctx context.Context, parkID int64) ([]int64, error) {
	const q = `SELECT event_id FROM event_parks WHERE park_id = $1`
	rows, err := r.pool.Query(ctx, q, parkID)
	if err != nil {
		return nil, fmt.Errorf("event ids by park: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ParksByEvents returns the parks of each listed event, keyed by event id.
func (r *Repository) ParksByEvents(ctx context.Context, eventIDs []int64) (map[int64][]models.ParkSummary, error) {
	const q = `SELECT ep.event_id, p.id, p.name, p.address
		FROM event_parks ep JOIN parks p ON p.id = ep.park_id
		WHERE ep.event_id = ANY($1)
		ORDER BY p.name`
	out := make(map[int64][]models.ParkSummary, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, q, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("parks by events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID int64
			p       models.ParkSummary
		)
		if err := rows.Scan(&eventID, &p.ID, &p.Name, &p.Address); err != nil {
			return nil, err
		}
		out[eventID] = append(out[eventID], p)
	}
	return out, rows.Err()
}

// GetByID returns an event without its dependent collections.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	var e models.Event
	if err := scanEvent(r.pool.QueryRow(ctx, q, id), &e); err != nil {
		if database.IsNoRows(err) {
			return nil, apperr.NotFound("event")
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Exists reports whether an event row exists.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`
	var ok bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("event exists: %w", err)
	}
	return ok, nil
}

// Create inserts the event and its park associations in one transaction.
func (r *Repository) Create(ctx context.Context, e *models.Event, parkIDs []int64) error {
	const q = `INSERT INTO events (title, description, event_type, target_audience, status,
			start_date, end_date, start_time, end_time, is_recurring, recurrence_pattern, capacity,
			registration_type, organizer_name, organizer_email, organizer_phone, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6::text::date, $7::text::date, $8::text::time, $9::text::time,
			$10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at`
	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, q, eventArgs(e)...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		return addParks(ctx, tx, e.ID, parkIDs)
	})
	return mapParkErr(err)
}

// Update rewrites the event fields and reconciles its park set to exactly parkIDs.
func (r *Repository) Update(ctx context.Context, e *models.Event, parkIDs []int64) error {
	const q = `UPDATE events SET title = $1, description = $2, event_type = $3, target_audience = $4,
			status = $5, start_date = $6::text::date, end_date = $7::text::date,
			start_time = $8::text::time, end_time = $9::text::time, is_recurring = $10,
			recurrence_pattern = $11, capacity = $12, registration_type = $13, organizer_name = $14,
			organizer_email = $15, organizer_phone = $16, latitude = $17, longitude = $18,
			updated_at = NOW()
		WHERE id = $19
		RETURNING created_at, updated_at`
	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		args := append(eventArgs(e), e.ID)
		if err := tx.QueryRow(ctx, q, args...).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
			if database.IsNoRows(err) {
				return apperr.NotFound("event")
			}
			return fmt.Errorf("update event: %w", err)
		}

		current, err := currentParks(ctx, tx, e.ID)
		if err != nil {
			return err
		}
		add, remove := diffParks(current, parkIDs)
		if len(remove) > 0 {
			const del = `DELETE FROM event_parks WHERE event_id = $1 AND park_id = ANY($2)`
			if _, err := tx.Exec(ctx, del, e.ID, remove); err != nil {
				return fmt.Errorf("remove event parks: %w", err)
			}
		}
		return addParks(ctx, tx, e.ID, add)
	})
	return mapParkErr(err)
}

// Delete removes an event; dependent rows cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM events WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("event")
	}
	return nil
}

func eventArgs(e *models.Event) []interface{} {
	return []interface{}{
		e.Title, e.Description, string(e.EventType), string(e.TargetAudience), string(e.Status),
		e.StartDate, e.EndDate, e.StartTime, e.EndTime, e.IsRecurring, e.RecurrencePattern, e.Capacity,
		string(e.RegistrationType), e.OrganizerName, e.OrganizerEmail, e.OrganizerPhone, e.Latitude, e.Longitude,
	}
}

func currentParks(ctx context.Context, tx pgx.Tx, eventID int64) ([]int64, error) {
	const q = `SELECT park_id FROM event_parks WHERE event_id = $1 FOR UPDATE`
	rows, err := tx.Query(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event parks: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func addParks(ctx context.Context, tx pgx.Tx, eventID int64, parkIDs []int64) error {
	const q = `INSERT INTO event_parks (event_id, park_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if len(parkIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, parkID := range parkIDs {
		batch.Queue(q, eventID, parkID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert event parks: %w", err)
	}
	return nil
}

func mapParkErr(err error) error {
	if database.IsForeignKeyViolation(err, "event_parks_park_id_fkey") {
		return apperr.Invalid("parkIds", "unknown park")
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere in the text.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// diffParks returns the ids to insert and delete so that current becomes desired.
func diffParks(current, desired []int64) (add, remove []int64) {
	have := make(map[int64]bool, len(current))
	for _, id := range current {
		have[id] = true
	}
	want := make(map[int64]bool, len(desired))
	for _, id := range desired {
		if want[id] {
			continue
		}
		want[id] = true
		if !have[id] {
			add = append(add, id)
		}
	}
	for _, id := range current {
		if !want[id] {
			remove = append(remove, id)
		}
	}
	return add, remove
}
