package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campushq/fyp-coordination-api/internal/models"
)

const studentColumns = `id, user_id, roll_number, name, email, group_id, created_at`

// StudentRepository resolves roster entries from the directory.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID loads a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByUserID loads the student record linked to a user account.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE user_id = $1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, userID); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListByIDs resolves a set of student ids.
func (r *StudentRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = ANY($1) ORDER BY roll_number ASC`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list students by ids: %w", err)
	}
	return students, nil
}

// ListByRollNumbers resolves roster roll numbers to student records. Callers
// are responsible for noticing missing entries.
func (r *StudentRepository) ListByRollNumbers(ctx context.Context, rollNumbers []string) ([]models.Student, error) {
	if len(rollNumbers) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM students WHERE roll_number = ANY($1) ORDER BY roll_number ASC`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, pq.Array(rollNumbers)); err != nil {
		return nil, fmt.Errorf("list students by roll numbers: %w", err)
	}
	return students, nil
}

// FindByRollNumber loads a student by roll number.
func (r *StudentRepository) FindByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE roll_number = $1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, rollNumber); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByRollNumberInGroup loads a student by roll number scoped to a group.
// Returns sql.ErrNoRows when the roll number does not belong to the group.
func (r *StudentRepository) FindByRollNumberInGroup(ctx context.Context, rollNumber, groupID string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE roll_number = $1 AND group_id = $2`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, rollNumber, groupID); err != nil {
		return nil, err
	}
	return &student, nil
}
