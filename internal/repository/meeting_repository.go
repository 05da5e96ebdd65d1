package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campushq/fyp-coordination-api/internal/models"
)

// ErrMeetingOverlap signals that an insert was rejected by the storage-level
// venue exclusion constraint. It is the authoritative conflict signal: the
// advisory FindOverlapping pre-check can race, the constraint cannot.
var ErrMeetingOverlap = errors.New("meeting overlaps an existing booking")

const meetingColumns = `id, group_id, project_title, venue, start_time, end_time, student_ids, supervisor_id, co_advisor_id, status, created_by_kind, created_by_id, created_at, updated_at`

// MeetingRepository provides persistence for meetings.
type MeetingRepository struct {
	db *sqlx.DB
}

// NewMeetingRepository creates a new meeting repository.
func NewMeetingRepository(db *sqlx.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// FindByID loads a meeting by id.
func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*models.Meeting, error) {
	query := fmt.Sprintf(`SELECT %s FROM meetings WHERE id = $1`, meetingColumns)
	var meeting models.Meeting
	if err := r.db.GetContext(ctx, &meeting, query, id); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindOverlapping returns scheduled meetings at the venue whose [start, end)
// interval overlaps the candidate one. Overlap is half-open: an existing
// booking [s, e) conflicts with [start, end) iff start < e AND end > s, so
// back-to-back bookings never collide. excludeID, when non-empty, omits one
// meeting from the check for edit-in-place callers.
func (r *MeetingRepository) FindOverlapping(ctx context.Context, venue string, start, end time.Time, excludeID string) ([]models.Meeting, error) {
	query := fmt.Sprintf(`SELECT %s FROM meetings WHERE venue = $1 AND status = 'Scheduled' AND start_time < $3 AND end_time > $2 AND ($4 = '' OR id <> $4) ORDER BY start_time ASC`, meetingColumns)
	var meetings []models.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, venue, start, end, excludeID); err != nil {
		return nil, fmt.Errorf("find overlapping meetings: %w", err)
	}
	return meetings, nil
}

// ListScheduledAll returns every scheduled meeting ordered by start time.
func (r *MeetingRepository) ListScheduledAll(ctx context.Context) ([]models.Meeting, error) {
	query := fmt.Sprintf(`SELECT %s FROM meetings WHERE status = 'Scheduled' ORDER BY start_time ASC`, meetingColumns)
	var meetings []models.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query); err != nil {
		return nil, fmt.Errorf("list scheduled meetings: %w", err)
	}
	return meetings, nil
}

// ListScheduledForTeacher returns scheduled meetings where the teacher is the
// supervisor or the co-advisor.
func (r *MeetingRepository) ListScheduledForTeacher(ctx context.Context, teacherID string) ([]models.Meeting, error) {
	query := fmt.Sprintf(`SELECT %s FROM meetings WHERE status = 'Scheduled' AND (supervisor_id = $1 OR co_advisor_id = $1) ORDER BY start_time ASC`, meetingColumns)
	var meetings []models.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, teacherID); err != nil {
		return nil, fmt.Errorf("list meetings for teacher: %w", err)
	}
	return meetings, nil
}

// ListScheduledForStudent returns scheduled meetings the student participates
// in.
func (r *MeetingRepository) ListScheduledForStudent(ctx context.Context, studentID string) ([]models.Meeting, error) {
	query := fmt.Sprintf(`SELECT %s FROM meetings WHERE status = 'Scheduled' AND $1 = ANY(student_ids) ORDER BY start_time ASC`, meetingColumns)
	var meetings []models.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, studentID); err != nil {
		return nil, fmt.Errorf("list meetings for student: %w", err)
	}
	return meetings, nil
}

// Create stores a new meeting. An exclusion-constraint violation on
// (venue, time range) is mapped to ErrMeetingOverlap.
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	if meeting.ID == "" {
		meeting.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = now
	}
	meeting.UpdatedAt = now

	const query = `INSERT INTO meetings (id, group_id, project_title, venue, start_time, end_time, student_ids, supervisor_id, co_advisor_id, status, created_by_kind, created_by_id, created_at, updated_at) VALUES (:id, :group_id, :project_title, :venue, :start_time, :end_time, :student_ids, :supervisor_id, :co_advisor_id, :status, :created_by_kind, :created_by_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, meeting); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23P01" {
			return ErrMeetingOverlap
		}
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}
