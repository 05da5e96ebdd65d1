package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/campushq/fyp-coordination-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func meetingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "group_id", "project_title", "venue", "start_time", "end_time", "student_ids", "supervisor_id", "co_advisor_id", "status", "created_by_kind", "created_by_id", "created_at", "updated_at"})
}

func TestMeetingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMeetingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO meetings")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	meeting := &models.Meeting{
		GroupID:      "G-01",
		ProjectTitle: "Campus Navigation",
		Venue:        "AT-01",
		StartTime:    time.Now().UTC(),
		EndTime:      time.Now().UTC().Add(time.Hour),
		StudentIDs:   []string{"s1", "s2"},
		SupervisorID: "t-sup",
		Status:       models.MeetingScheduled,
	}
	meeting.SetCreatedBy(models.UserActor("u-fyp"))

	require.NoError(t, repo.Create(context.Background(), meeting))
	require.NotEmpty(t, meeting.ID)
	require.False(t, meeting.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepositoryCreateMapsExclusionViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMeetingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO meetings")).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "meetings_venue_no_overlap"})

	meeting := &models.Meeting{
		GroupID:      "G-01",
		Venue:        "AT-01",
		StartTime:    time.Now().UTC(),
		EndTime:      time.Now().UTC().Add(time.Hour),
		SupervisorID: "t-sup",
		Status:       models.MeetingScheduled,
	}
	meeting.SetCreatedBy(models.SystemActor())

	err := repo.Create(context.Background(), meeting)
	require.ErrorIs(t, err, ErrMeetingOverlap)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepositoryFindOverlapping(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMeetingRepository(db)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	rows := meetingRows().AddRow(
		"mtg-1", "G-77", "Old Project", "AT-01", start, end,
		pq.StringArray{"s9"}, "t-sup", nil, "Scheduled", "user", "u-1", start, start,
	)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, group_id, project_title, venue, start_time, end_time")).
		WithArgs("AT-01", start.Add(30*time.Minute), end.Add(30*time.Minute), "").
		WillReturnRows(rows)

	meetings, err := repo.FindOverlapping(context.Background(), "AT-01", start.Add(30*time.Minute), end.Add(30*time.Minute), "")
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	require.Equal(t, "G-77", meetings[0].GroupID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepositoryListScheduledForStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMeetingRepository(db)
	now := time.Now().UTC()
	rows := meetingRows().AddRow(
		"mtg-1", "G-01", "Campus Navigation", "Lab-5", now, now.Add(time.Hour),
		pq.StringArray{"s1", "s2"}, "t-sup", "t-co", "Scheduled", "user", "u-fyp", now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("ANY(student_ids)")).
		WithArgs("s1").
		WillReturnRows(rows)

	meetings, err := repo.ListScheduledForStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	require.Equal(t, models.ActorUser, meetings[0].CreatedBy().Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}
