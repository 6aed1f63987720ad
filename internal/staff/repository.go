package staff

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/database"
)

const staffColumns = `id, event_id, user_id, volunteer_id, full_name, email, phone, role,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), status, notes, created_at, updated_at`

var (
	// ErrVolunteerAssigned is returned when a volunteer is assigned to the same event twice.
	ErrVolunteerAssigned = apperr.Conflict("volunteer already assigned to this event")
	// ErrStaffAssigned is returned when a user is assigned to the same event twice.
	ErrStaffAssigned = apperr.Conflict("staff member already assigned to this event")
)

// Repository handles event_staff persistence and reads the volunteers registry.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a staff repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanStaff(row pgx.Row, m *models.StaffMember) error {
	var userID, volunteerID *int64
	err := row.Scan(&m.ID, &m.EventID, &userID, &volunteerID, &m.FullName, &m.Email, &m.Phone, &m.Role,
		&m.StartTime, &m.EndTime, &m.Status, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return err
	}
	m.Assignee, err = models.AssigneeFromColumns(userID, volunteerID)
	return err
}

func (r *Repository) list(ctx context.Context, q string, args ...interface{}) ([]models.StaffMember, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	list := []models.StaffMember{}
	for rows.Next() {
		var m models.StaffMember
		if err := scanStaff(rows, &m); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByEvent returns every assignment of an event, newest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]models.StaffMember, error) {
	q := `SELECT ` + staffColumns + ` FROM event_staff WHERE event_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, eventID)
}

// ListVolunteersByEvent returns the volunteer assignments of an event, newest first.
func (r *Repository) ListVolunteersByEvent(ctx context.Context, eventID int64) ([]models.StaffMember, error) {
	q := `SELECT ` + staffColumns + ` FROM event_staff
		WHERE event_id = $1 AND volunteer_id IS NOT NULL ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, eventID)
}

// GetVolunteer returns a volunteer from the registry.
func (r *Repository) GetVolunteer(ctx context.Context, id int64) (*models.VolunteerRecord, error) {
	const q = `SELECT id, full_name, email, phone, status FROM volunteers WHERE id = $1`
	var v models.VolunteerRecord
	if err := r.pool.QueryRow(ctx, q, id).Scan(&v.ID, &v.FullName, &v.Email, &v.Phone, &v.Status); err != nil {
		if database.IsNoRows(err) {
			return nil, apperr.NotFound("volunteer")
		}
		return nil, fmt.Errorf("get volunteer: %w", err)
	}
	return &v, nil
}

// IsAssigned reports whether the assignee already holds an assignment for the event.
func (r *Repository) IsAssigned(ctx context.Context, eventID int64, a models.Assignee) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM event_staff
		WHERE event_id = $1 AND (user_id = $2 OR volunteer_id = $3))`
	userID, volunteerID := a.Columns()
	var ok bool
	if err := r.pool.QueryRow(ctx, q, eventID, userID, volunteerID).Scan(&ok); err != nil {
		return false, fmt.Errorf("staff assigned: %w", err)
	}
	return ok, nil
}

// Create inserts an assignment.
func (r *Repository) Create(ctx context.Context, m *models.StaffMember) error {
	const q = `INSERT INTO event_staff (event_id, user_id, volunteer_id, full_name, email, phone, role,
			start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::time, $9::text::time, $10, $11)
		RETURNING id, created_at, updated_at`
	userID, volunteerID := m.Assignee.Columns()
	err := r.pool.QueryRow(ctx, q, m.EventID, userID, volunteerID, m.FullName, m.Email, m.Phone, m.Role,
		m.StartTime, m.EndTime, string(m.Status), m.Notes).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err, "uq_event_staff_volunteer"):
		return ErrVolunteerAssigned
	case database.IsUniqueViolation(err, "uq_event_staff_user"):
		return ErrStaffAssigned
	case database.IsForeignKeyViolation(err, "event_staff_event_id_fkey"):
		return apperr.NotFound("event")
	case database.IsForeignKeyViolation(err, "event_staff_volunteer_id_fkey"):
		return apperr.NotFound("volunteer")
	default:
		return fmt.Errorf("insert staff: %w", err)
	}
}

// Update applies the non-nil fields of p to an assignment of the event.
func (r *Repository) Update(ctx context.Context, eventID, id int64, p models.StaffPatch) (*models.StaffMember, error) {
	q := `UPDATE event_staff SET
			role = COALESCE($1, role),
			status = COALESCE($2, status),
			notes = COALESCE($3, notes),
			updated_at = NOW()
		WHERE id = $4 AND event_id = $5
		RETURNING ` + staffColumns
	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}
	var m models.StaffMember
	if err := scanStaff(r.pool.QueryRow(ctx, q, p.Role, status, p.Notes, id, eventID), &m); err != nil {
		if database.IsNoRows(err) {
			return nil, apperr.NotFound("assignment")
		}
		return nil, fmt.Errorf("update staff: %w", err)
	}
	return &m, nil
}

// Delete removes an assignment of the event.
func (r *Repository) Delete(ctx context.Context, eventID, id int64) error {
	const q = `DELETE FROM event_staff WHERE id = $1 AND event_id = $2`
	tag, err := r.pool.Exec(ctx, q, id, eventID)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("assignment")
	}
	return nil
}

// ActiveVolunteers returns id and name of every active volunteer, by name.
func (r *Repository) ActiveVolunteers(ctx context.Context) ([]models.VolunteerOption, error) {
	const q = `SELECT id, full_name FROM volunteers WHERE status = $1 ORDER BY full_name, id`
	rows, err := r.pool.Query(ctx, q, models.VolunteerStatusActive)
	if err != nil {
		return nil, fmt.Errorf("active volunteers: %w", err)
	}
	defer rows.Close()

	list := []models.VolunteerOption{}
	for rows.Next() {
		var v models.VolunteerOption
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
