package resources

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/database"
)

const resourceColumns = `id, event_id, resource_type, resource_id, resource_name, quantity, notes, status, created_at, updated_at`

// ErrAlreadyAssigned is returned when an external resource is linked to the same event twice.
var ErrAlreadyAssigned = apperr.Conflict("resource already assigned to this event")

// TypeStatusCount is the number of resources of one type in one status.
type TypeStatusCount struct {
	Type   models.ResourceType
	Status models.ResourceStatus
	Count  int
}

// Repository handles event_resources persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a resources repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanResource(row pgx.Row, res *models.Resource) error {
	return row.Scan(&res.ID, &res.EventID, &res.ResourceType, &res.ResourceID, &res.ResourceName,
		&res.Quantity, &res.Notes, &res.Status, &res.CreatedAt, &res.UpdatedAt)
}

// ListByEvent returns the resources of an event ordered by type and name.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]models.Resource, error) {
	q := `SELECT ` + resourceColumns + ` FROM event_resources
		WHERE event_id = $1 ORDER BY resource_type, resource_name, id`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	list := []models.Resource{}
	for rows.Next() {
		var res models.Resource
		if err := scanResource(rows, &res); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// Get returns one resource of an event.
func (r *Repository) Get(ctx context.Context, eventID, id int64) (*models.Resource, error) {
	q := `SELECT ` + resourceColumns + ` FROM event_resources WHERE id = $1 AND event_id = $2`
	var res models.Resource
	if err := scanResource(r.pool.QueryRow(ctx, q, id, eventID), &res); err != nil {
		if database.IsNoRows(err) {
			return nil, apperr.NotFound("resource")
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return &res, nil
}

// IsAssigned reports whether the external resource is already linked to the event.
func (r *Repository) IsAssigned(ctx context.Context, eventID int64, typ models.ResourceType, resourceID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM event_resources
		WHERE event_id = $1 AND resource_type = $2 AND resource_id = $3)`
	var ok bool
	if err := r.pool.QueryRow(ctx, q, eventID, string(typ), resourceID).Scan(&ok); err != nil {
		return false, fmt.Errorf("resource assigned: %w", err)
	}
	return ok, nil
}

// Create inserts a resource allocation.
func (r *Repository) Create(ctx context.Context, res *models.Resource) error {
	const q = `INSERT INTO event_resources (event_id, resource_type, resource_id, resource_name, quantity, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, res.EventID, string(res.ResourceType), res.ResourceID, res.ResourceName,
		res.Quantity, res.Notes, string(res.Status)).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "uq_event_resources_ref") {
			return ErrAlreadyAssigned
		}
		if database.IsForeignKeyViolation(err, "") {
			return apperr.NotFound("event")
		}
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of p.
func (r *Repository) Update(ctx context.Context, eventID, id int64, p models.ResourcePatch) (*models.Resource, error) {
	q := `UPDATE event_resources SET
			resource_name = COALESCE($1, resource_name),
			quantity = COALESCE($2, quantity),
			notes = COALESCE($3, notes),
			status = COALESCE($4, status),
			updated_at = NOW()
		WHERE id = $5 AND event_id = $6
		RETURNING ` + resourceColumns
	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}
	var res models.Resource
	err := scanResource(r.pool.QueryRow(ctx, q, p.ResourceName, p.Quantity, p.Notes, status, id, eventID), &res)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, apperr.NotFound("resource")
		}
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return &res, nil
}

// Delete removes a resource allocation.
func (r *Repository) Delete(ctx context.Context, eventID, id int64) error {
	const q = `DELETE FROM event_resources WHERE id = $1 AND event_id = $2`
	tag, err := r.pool.Exec(ctx, q, id, eventID)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("resource")
	}
	return nil
}

// Counts groups the resources of an event by type and status.
func (r *Repository) Counts(ctx context.Context, eventID int64) ([]TypeStatusCount, error) {
	const q = `SELECT resource_type, status, COUNT(*) FROM event_resources
		WHERE event_id = $1 GROUP BY resource_type, status`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("resource counts: %w", err)
	}
	defer rows.Close()

	var out []TypeStatusCount
	for rows.Next() {
		var c TypeStatusCount
		if err := rows.Scan(&c.Type, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
