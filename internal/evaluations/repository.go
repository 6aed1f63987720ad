package evaluations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/database"
)

const evaluationColumns = `id, event_id, respondent_type, rating, feedback, survey_answers, created_at, updated_at`

// Repository handles event_evaluations persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an evaluations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanEvaluation(row pgx.Row, ev *models.Evaluation) error {
	return row.Scan(&ev.ID, &ev.EventID, &ev.RespondentType, &ev.Rating, &ev.Feedback, &ev.SurveyAnswers,
		&ev.CreatedAt, &ev.UpdatedAt)
}

// ListByEvent returns the evaluations of an event, newest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]models.Evaluation, error) {
	q := `SELECT ` + evaluationColumns + ` FROM event_evaluations
		WHERE event_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	list := []models.Evaluation{}
	for rows.Next() {
		var ev models.Evaluation
		if err := scanEvaluation(rows, &ev); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// Create inserts an evaluation.
func (r *Repository) Create(ctx context.Context, ev *models.Evaluation) error {
	const q = `INSERT INTO event_evaluations (event_id, respondent_type, rating, feedback, survey_answers)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, ev.EventID, string(ev.RespondentType), ev.Rating, ev.Feedback, ev.SurveyAnswers).
		Scan(&ev.ID, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err, "") {
			return apperr.NotFound("event")
		}
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of p to an evaluation of the event.
func (r *Repository) Update(ctx context.Context, eventID, id int64, p models.EvaluationPatch) (*models.Evaluation, error) {
	q := `UPDATE event_evaluations SET
			respondent_type = COALESCE($1, respondent_type),
			rating = COALESCE($2, rating),
			feedback = COALESCE($3, feedback),
			survey_answers = COALESCE($4, survey_answers),
			updated_at = NOW()
		WHERE id = $5 AND event_id = $6
		RETURNING ` + evaluationColumns
	var respondent *string
	if p.RespondentType != nil {
		s := string(*p.RespondentType)
		respondent = &s
	}
	var ev models.Evaluation
	err := scanEvaluation(r.pool.QueryRow(ctx, q, respondent, p.Rating, p.Feedback, p.SurveyAnswers, id, eventID), &ev)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, apperr.NotFound("evaluation")
		}
		return nil, fmt.Errorf("update evaluation: %w", err)
	}
	return &ev, nil
}

// Delete removes an evaluation of the event.
func (r *Repository) Delete(ctx context.Context, eventID, id int64) error {
	const q = `DELETE FROM event_evaluations WHERE id = $1 AND event_id = $2`
	tag, err := r.pool.Exec(ctx, q, id, eventID)
	if err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("evaluation")
	}
	return nil
}
