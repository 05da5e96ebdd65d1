package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campushq/fyp-coordination-api/internal/models"
)

const evaluationColumns = `id, group_id, student_id, roll_number, evaluator_type, mid_completed, mid_presentation, mid_srs_report, mid_poster, mid_progress_sheet, mid_total, mid_evaluated_at, final_completed, final_report, final_presentation, final_total, final_evaluated_at, created_by, created_at, updated_at`

// EvaluationRepository provides persistence for evaluation records.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository creates a new evaluation repository.
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// UpsertPhase writes one phase of an evaluation record keyed by
// (group, student, evaluator type). The statement is a single atomic upsert
// touching only the submitted phase's columns, so concurrent submissions for
// the two phases of the same record cannot lose each other's updates.
func (r *EvaluationRepository) UpsertPhase(ctx context.Context, eval *models.Evaluation, phase models.EvaluationPhase) error {
	if eval.ID == "" {
		eval.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	eval.UpdatedAt = now
	if eval.CreatedAt.IsZero() {
		eval.CreatedAt = now
	}

	var query string
	if phase == models.PhaseMidYear {
		query = `INSERT INTO evaluations (id, group_id, student_id, roll_number, evaluator_type, mid_completed, mid_presentation, mid_srs_report, mid_poster, mid_progress_sheet, mid_total, mid_evaluated_at, created_by, created_at, updated_at)
VALUES (:id, :group_id, :student_id, :roll_number, :evaluator_type, :mid_completed, :mid_presentation, :mid_srs_report, :mid_poster, :mid_progress_sheet, :mid_total, :mid_evaluated_at, :created_by, :created_at, :updated_at)
ON CONFLICT (group_id, student_id, evaluator_type) DO UPDATE SET
	mid_completed = EXCLUDED.mid_completed,
	mid_presentation = EXCLUDED.mid_presentation,
	mid_srs_report = EXCLUDED.mid_srs_report,
	mid_poster = EXCLUDED.mid_poster,
	mid_progress_sheet = EXCLUDED.mid_progress_sheet,
	mid_total = EXCLUDED.mid_total,
	mid_evaluated_at = EXCLUDED.mid_evaluated_at,
	created_by = EXCLUDED.created_by,
	updated_at = EXCLUDED.updated_at`
	} else {
		query = `INSERT INTO evaluations (id, group_id, student_id, roll_number, evaluator_type, final_completed, final_report, final_presentation, final_total, final_evaluated_at, created_by, created_at, updated_at)
VALUES (:id, :group_id, :student_id, :roll_number, :evaluator_type, :final_completed, :final_report, :final_presentation, :final_total, :final_evaluated_at, :created_by, :created_at, :updated_at)
ON CONFLICT (group_id, student_id, evaluator_type) DO UPDATE SET
	final_completed = EXCLUDED.final_completed,
	final_report = EXCLUDED.final_report,
	final_presentation = EXCLUDED.final_presentation,
	final_total = EXCLUDED.final_total,
	final_evaluated_at = EXCLUDED.final_evaluated_at,
	created_by = EXCLUDED.created_by,
	updated_at = EXCLUDED.updated_at`
	}

	if _, err := r.db.NamedExecContext(ctx, query, eval); err != nil {
		return fmt.Errorf("upsert %s evaluation: %w", phase, err)
	}
	return nil
}

// FindByScope loads the record for a (group, student, evaluator type) triple.
func (r *EvaluationRepository) FindByScope(ctx context.Context, groupID, studentID string, evaluatorType models.EvaluatorType) (*models.Evaluation, error) {
	query := fmt.Sprintf(`SELECT %s FROM evaluations WHERE group_id = $1 AND student_id = $2 AND evaluator_type = $3`, evaluationColumns)
	var eval models.Evaluation
	if err := r.db.GetContext(ctx, &eval, query, groupID, studentID, evaluatorType); err != nil {
		return nil, err
	}
	return &eval, nil
}

// ListByGroup returns all evaluation records for a group.
func (r *EvaluationRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Evaluation, error) {
	query := fmt.Sprintf(`SELECT %s FROM evaluations WHERE group_id = $1 ORDER BY roll_number ASC, evaluator_type ASC`, evaluationColumns)
	var evals []models.Evaluation
	if err := r.db.SelectContext(ctx, &evals, query, groupID); err != nil {
		return nil, fmt.Errorf("list evaluations by group: %w", err)
	}
	return evals, nil
}

// ListByGroups returns evaluation records for a set of groups.
func (r *EvaluationRepository) ListByGroups(ctx context.Context, groupIDs []string) ([]models.Evaluation, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM evaluations WHERE group_id = ANY($1) ORDER BY group_id ASC, roll_number ASC`, evaluationColumns)
	var evals []models.Evaluation
	if err := r.db.SelectContext(ctx, &evals, query, pq.Array(groupIDs)); err != nil {
		return nil, fmt.Errorf("list evaluations by groups: %w", err)
	}
	return evals, nil
}

// ListByGroupAndType returns a group's records for one evaluator type.
func (r *EvaluationRepository) ListByGroupAndType(ctx context.Context, groupID string, evaluatorType models.EvaluatorType) ([]models.Evaluation, error) {
	query := fmt.Sprintf(`SELECT %s FROM evaluations WHERE group_id = $1 AND evaluator_type = $2 ORDER BY roll_number ASC`, evaluationColumns)
	var evals []models.Evaluation
	if err := r.db.SelectContext(ctx, &evals, query, groupID, evaluatorType); err != nil {
		return nil, fmt.Errorf("list evaluations by group and type: %w", err)
	}
	return evals, nil
}

// ListByStudent returns every evaluator's record for a student.
func (r *EvaluationRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Evaluation, error) {
	query := fmt.Sprintf(`SELECT %s FROM evaluations WHERE student_id = $1 ORDER BY evaluator_type ASC`, evaluationColumns)
	var evals []models.Evaluation
	if err := r.db.SelectContext(ctx, &evals, query, studentID); err != nil {
		return nil, fmt.Errorf("list evaluations by student: %w", err)
	}
	return evals, nil
}

// ListCompletedByCreator returns a creator's records in a group that have at
// least one completed phase, most recently updated first.
func (r *EvaluationRepository) ListCompletedByCreator(ctx context.Context, groupID, createdBy string) ([]models.Evaluation, error) {
	query := fmt.Sprintf(`SELECT %s FROM evaluations WHERE group_id = $1 AND created_by = $2 AND (mid_completed OR final_completed) ORDER BY updated_at DESC`, evaluationColumns)
	var evals []models.Evaluation
	if err := r.db.SelectContext(ctx, &evals, query, groupID, createdBy); err != nil {
		return nil, fmt.Errorf("list evaluations by creator: %w", err)
	}
	return evals, nil
}
