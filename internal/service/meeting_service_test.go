package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushq/fyp-coordination-api/internal/models"
	"github.com/campushq/fyp-coordination-api/internal/repository"
	appErrors "github.com/campushq/fyp-coordination-api/pkg/errors"
)

type mockMeetingRepo struct {
	meetings     []models.Meeting
	failOverlap  bool
	createdCount int
}

func (m *mockMeetingRepo) FindOverlapping(ctx context.Context, venue string, start, end time.Time, excludeID string) ([]models.Meeting, error) {
	var out []models.Meeting
	for _, mt := range m.meetings {
		if mt.Venue != venue || mt.Status != models.MeetingScheduled {
			continue
		}
		if excludeID != "" && mt.ID == excludeID {
			continue
		}
		if start.Before(mt.EndTime) && end.After(mt.StartTime) {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (m *mockMeetingRepo) ListScheduledAll(ctx context.Context) ([]models.Meeting, error) {
	return m.meetings, nil
}

func (m *mockMeetingRepo) ListScheduledForTeacher(ctx context.Context, teacherID string) ([]models.Meeting, error) {
	var out []models.Meeting
	for _, mt := range m.meetings {
		if mt.SupervisorID == teacherID || (mt.CoAdvisorID != nil && *mt.CoAdvisorID == teacherID) {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (m *mockMeetingRepo) ListScheduledForStudent(ctx context.Context, studentID string) ([]models.Meeting, error) {
	var out []models.Meeting
	for _, mt := range m.meetings {
		for _, id := range mt.StudentIDs {
			if id == studentID {
				out = append(out, mt)
				break
			}
		}
	}
	return out, nil
}

func (m *mockMeetingRepo) Create(ctx context.Context, meeting *models.Meeting) error {
	if m.failOverlap {
		return repository.ErrMeetingOverlap
	}
	if meeting.ID == "" {
		meeting.ID = "mtg-created"
	}
	m.createdCount++
	m.meetings = append(m.meetings, *meeting)
	return nil
}

type mockProposalReader struct {
	proposals map[string]*models.Proposal
}

func (m *mockProposalReader) FindApprovedByGroup(ctx context.Context, groupID string) (*models.Proposal, error) {
	if p, ok := m.proposals[groupID]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockProposalReader) ListApproved(ctx context.Context) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range m.proposals {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProposalReader) ListApprovedBySupervisor(ctx context.Context, supervisorID string) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range m.proposals {
		if p.SupervisorID != nil && *p.SupervisorID == supervisorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type mockStudentReader struct {
	students []models.Student
}

func (m *mockStudentReader) ListByIDs(ctx context.Context, ids []string) ([]models.Student, error) {
	var out []models.Student
	for _, st := range m.students {
		for _, id := range ids {
			if st.ID == id {
				out = append(out, st)
				break
			}
		}
	}
	return out, nil
}

func (m *mockStudentReader) ListByRollNumbers(ctx context.Context, rollNumbers []string) ([]models.Student, error) {
	var out []models.Student
	for _, st := range m.students {
		for _, roll := range rollNumbers {
			if st.RollNumber == roll {
				out = append(out, st)
				break
			}
		}
	}
	return out, nil
}

func (m *mockStudentReader) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	for i := range m.students {
		if m.students[i].UserID != nil && *m.students[i].UserID == userID {
			return &m.students[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentReader) FindByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	for i := range m.students {
		if m.students[i].RollNumber == rollNumber {
			return &m.students[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentReader) FindByRollNumberInGroup(ctx context.Context, rollNumber, groupID string) (*models.Student, error) {
	for i := range m.students {
		st := &m.students[i]
		if st.RollNumber == rollNumber && st.GroupID != nil && *st.GroupID == groupID {
			return st, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockTeacherReader struct {
	teachers map[string]models.Teacher
}

func (m *mockTeacherReader) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherReader) ListByIDs(ctx context.Context, ids []string) ([]models.Teacher, error) {
	var out []models.Teacher
	for _, id := range ids {
		if t, ok := m.teachers[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type mockNotifier struct {
	notified []string
}

func (m *mockNotifier) MeetingScheduled(meeting *models.Meeting) {
	m.notified = append(m.notified, meeting.ID)
}

func strPtr(s string) *string { return &s }

func testVenues() []string {
	return []string{"AT-01", "BT-15", "BT-14", "Lab-5", "Conference-Room-A"}
}

func testDirectory() (*mockProposalReader, *mockStudentReader, *mockTeacherReader) {
	proposals := &mockProposalReader{proposals: map[string]*models.Proposal{
		"G-01": {
			ID:                "prop-1",
			GroupID:           "G-01",
			ProjectTitle:      "Campus Navigation",
			FYPStatus:         models.ProposalStatusApproved,
			SupervisorID:      strPtr("t-sup"),
			CoAdvisorID:       strPtr("t-co"),
			MemberRollNumbers: []string{"19F-0255", "19F-0301"},
		},
	}}
	students := &mockStudentReader{students: []models.Student{
		{ID: "s1", UserID: strPtr("u-s1"), RollNumber: "19F-0255", Name: "Ayesha Khan", Email: "ayesha@uni.edu", GroupID: strPtr("G-01")},
		{ID: "s2", UserID: strPtr("u-s2"), RollNumber: "19F-0301", Name: "Bilal Ahmed", Email: "bilal@uni.edu", GroupID: strPtr("G-01")},
	}}
	teachers := &mockTeacherReader{teachers: map[string]models.Teacher{
		"t-sup": {ID: "t-sup", Name: "Dr. Nadia", Email: "nadia@uni.edu"},
		"t-co":  {ID: "t-co", Name: "Dr. Omar", Email: "omar@uni.edu"},
	}}
	return proposals, students, teachers
}

func newMeetingService(repo *mockMeetingRepo, notifier *mockNotifier) *MeetingService {
	proposals, students, teachers := testDirectory()
	var n meetingNotifier
	if notifier != nil {
		n = notifier
	}
	return NewMeetingService(repo, proposals, students, teachers, n, nil, testVenues(), time.Minute, validator.New(), zap.NewNop())
}

func fypTeamClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-fyp", Role: models.RoleFYPTeam}
}

func supervisorClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "t-sup", Role: models.RoleTeacher}
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, code, appErr.Code)
}

func TestScheduleValidationOrder(t *testing.T) {
	svc := newMeetingService(&mockMeetingRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Schedule(ctx, fypTeamClaims(), ScheduleMeetingRequest{Venue: "AT-01"})
	assertErrCode(t, err, appErrors.ErrMissingFields.Code)

	_, err = svc.Schedule(ctx, fypTeamClaims(), ScheduleMeetingRequest{GroupID: "G-01", Venue: "AT-01", StartTime: "next tuesday", EndTime: "2026-03-02T11:00:00Z"})
	assertErrCode(t, err, appErrors.ErrInvalidDateFormat.Code)

	_, err = svc.Schedule(ctx, fypTeamClaims(), ScheduleMeetingRequest{GroupID: "G-01", Venue: "AT-01", StartTime: "2026-03-02T11:00:00Z", EndTime: "2026-03-02T11:00:00Z"})
	assertErrCode(t, err, appErrors.ErrInvalidInterval.Code)

	_, err = svc.Schedule(ctx, fypTeamClaims(), ScheduleMeetingRequest{GroupID: "G-01", Venue: "Basement", StartTime: "2026-03-02T10:00:00Z", EndTime: "2026-03-02T11:00:00Z"})
	assertErrCode(t, err, appErrors.ErrUnknownVenue.Code)

	_, err = svc.Schedule(ctx, fypTeamClaims(), ScheduleMeetingRequest{GroupID: "G-99", Venue: "AT-01", StartTime: "2026-03-02T10:00:00Z", EndTime: "2026-03-02T11:00:00Z"})
	assertErrCode(t, err, appErrors.ErrGroupNotEligible.Code)
}

func TestScheduleRejectsUnassignedTeacher(t *testing.T) {
	svc := newMeetingService(&mockMeetingRepo{}, nil)

	claims := &models.JWTClaims{UserID: "t-other", Role: models.RoleTeacher}
	_, err := svc.Schedule(context.Background(), claims, ScheduleMeetingRequest{
		GroupID: "G-01", Venue: "AT-01",
		StartTime: "2026-03-02T10:00:00Z", EndTime: "2026-03-02T11:00:00Z",
	})
	assertErrCode(t, err, appErrors.ErrForbidden.Code)
}

func TestScheduleDetectsOverlap(t *testing.T) {
	repo := &mockMeetingRepo{meetings: []models.Meeting{{
		ID:           "mtg-1",
		GroupID:      "G-77",
		Venue:        "AT-01",
		StartTime:    mustTime(t, "2026-03-02T10:00:00Z"),
		EndTime:      mustTime(t, "2026-03-02T11:00:00Z"),
		SupervisorID: "t-sup",
		Status:       models.MeetingScheduled,
	}}}
	svc := newMeetingService(repo, nil)

	_, err := svc.Schedule(context.Background(), fypTeamClaims(), ScheduleMeetingRequest{
		GroupID: "G-01", Venue: "AT-01",
		StartTime: "2026-03-02T10:30:00Z", EndTime: "2026-03-02T11:30:00Z",
	})
	assertErrCode(t, err, appErrors.ErrVenueConflict.Code)
	assert.Contains(t, err.Error(), "G-77")
	assert.Equal(t, 0, repo.createdCount)
}

func TestScheduleAllowsBackToBack(t *testing.T) {
	repo := &mockMeetingRepo{meetings: []models.Meeting{{
		ID:           "mtg-1",
		GroupID:      "G-77",
		Venue:        "AT-01",
		StartTime:    mustTime(t, "2026-03-02T10:00:00Z"),
		EndTime:      mustTime(t, "2026-03-02T11:00:00Z"),
		SupervisorID: "t-sup",
		Status:       models.MeetingScheduled,
	}}}
	svc := newMeetingService(repo, nil)

	detail, err := svc.Schedule(context.Background(), fypTeamClaims(), ScheduleMeetingRequest{
		GroupID: "G-01", Venue: "AT-01",
		StartTime: "2026-03-02T11:00:00Z", EndTime: "2026-03-02T12:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createdCount)
	assert.Equal(t, "G-01", detail.GroupID)

	// Same interval at a different venue is also fine.
	_, err = svc.Schedule(context.Background(), fypTeamClaims(), ScheduleMeetingRequest{
		GroupID: "G-01", Venue: "BT-15",
		StartTime: "2026-03-02T10:00:00Z", EndTime: "2026-03-02T11:00:00Z",
	})
	require.NoError(t, err)
}

func TestScheduleCoAdvisorAsymmetry(t *testing.T) {
	repo := &mockMeetingRepo{}
	svc := newMeetingService(repo, nil)
	ctx := context.Background()

	fypDetail, err := svc.Schedule(ctx, fypTeamClaims(), ScheduleMeetingRequest{
		GroupID: "G-01", Venue: "AT-01",
		StartTime: "2026-03-02T10:00:00Z", EndTime: "2026-03-02T11:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, fypDetail.Participants.CoAdvisor)
	assert.Equal(t, "t-co", fypDetail.Participants.CoAdvisor.ID)

	supDetail, err := svc.Schedule(ctx, supervisorClaims(), ScheduleMeetingRequest{
		GroupID: "G-01", Venue: "AT-01",
		StartTime: "2026-03-02T11:00:00Z", EndTime: "2026-03-02T12:00:00Z",
	})
	require.NoError(t, err)
	assert.Nil(t, supDetail.Participants.CoAdvisor)
	assert.Equal(t, models.ActorUser, supDetail.CreatedBy.Kind)
	assert.Equal(t, "t-sup", supDetail.CreatedBy.ID)
}

func TestScheduleSnapshotsRoster(t *testing.T) {
	repo := &mockMeetingRepo{}
	notifier := &mockNotifier{}
	svc := newMeetingService(repo, notifier)

	detail, err := svc.Schedule(context.Background(), fypTeamClaims(), ScheduleMeetingRequest{
		GroupID: "G-01", Venue: "Lab-5",
		StartTime: "2026-03-02T09:00:00Z", EndTime: "2026-03-02T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "Campus Navigation", detail.ProjectTitle)
	require.Len(t, detail.Participants.Students, 2)
	assert.Equal(t, "19F-0255", detail.Participants.Students[0].RollNumber)
	assert.Equal(t, "Dr. Nadia", detail.Participants.Supervisor.Name)
	assert.Len(t, notifier.notified, 1)
}

func TestScheduleMapsConstraintViolation(t *testing.T) {
	repo := &mockMeetingRepo{failOverlap: true}
	svc := newMeetingService(repo, nil)

	_, err := svc.Schedule(context.Background(), fypTeamClaims(), ScheduleMeetingRequest{
		GroupID: "G-01", Venue: "AT-01",
		StartTime: "2026-03-02T10:00:00Z", EndTime: "2026-03-02T11:00:00Z",
	})
	assertErrCode(t, err, appErrors.ErrVenueConflict.Code)
}

func TestCheckAvailability(t *testing.T) {
	repo := &mockMeetingRepo{meetings: []models.Meeting{{
		ID:           "mtg-1",
		GroupID:      "G-77",
		Venue:        "AT-01",
		StartTime:    mustTime(t, "2026-03-02T10:00:00Z"),
		EndTime:      mustTime(t, "2026-03-02T11:00:00Z"),
		SupervisorID: "t-sup",
		Status:       models.MeetingScheduled,
	}}}
	svc := newMeetingService(repo, nil)
	ctx := context.Background()

	taken, err := svc.CheckAvailability(ctx, CheckAvailabilityRequest{Venue: "AT-01", StartTime: "2026-03-02T10:30:00Z", EndTime: "2026-03-02T11:30:00Z"})
	require.NoError(t, err)
	assert.False(t, taken.Available)
	require.Len(t, taken.Conflicts, 1)
	assert.Equal(t, "G-77", taken.Conflicts[0].GroupID)

	free, err := svc.CheckAvailability(ctx, CheckAvailabilityRequest{Venue: "AT-01", StartTime: "2026-03-02T11:00:00Z", EndTime: "2026-03-02T12:00:00Z"})
	require.NoError(t, err)
	assert.True(t, free.Available)
	assert.Empty(t, free.Conflicts)

	// A reschedule probe may exclude its own booking.
	excluded, err := svc.CheckAvailability(ctx, CheckAvailabilityRequest{Venue: "AT-01", StartTime: "2026-03-02T10:00:00Z", EndTime: "2026-03-02T11:00:00Z", ExcludeMeetingID: "mtg-1"})
	require.NoError(t, err)
	assert.True(t, excluded.Available)

	_, err = svc.CheckAvailability(ctx, CheckAvailabilityRequest{Venue: "Rooftop", StartTime: "2026-03-02T10:00:00Z", EndTime: "2026-03-02T11:00:00Z"})
	assertErrCode(t, err, appErrors.ErrUnknownVenue.Code)
}

func TestListScheduledScopes(t *testing.T) {
	repo := &mockMeetingRepo{meetings: []models.Meeting{
		{ID: "mtg-1", GroupID: "G-01", Venue: "AT-01", SupervisorID: "t-sup", StudentIDs: []string{"s1", "s2"}, Status: models.MeetingScheduled},
		{ID: "mtg-2", GroupID: "G-02", Venue: "BT-15", SupervisorID: "t-other", StudentIDs: []string{"s9"}, Status: models.MeetingScheduled},
	}}
	svc := newMeetingService(repo, nil)
	ctx := context.Background()

	all, err := svc.ListScheduled(ctx, fypTeamClaims())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListScheduled(ctx, supervisorClaims())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mtg-1", mine[0].ID)

	studentClaims := &models.JWTClaims{UserID: "u-s1", Role: models.RoleStudent, RollNumber: "19F-0255", GroupID: "G-01"}
	own, err := svc.ListScheduled(ctx, studentClaims)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "mtg-1", own[0].ID)
}

func TestEligibleGroupsResolvesRoster(t *testing.T) {
	svc := newMeetingService(&mockMeetingRepo{}, nil)

	groups, err := svc.EligibleGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "G-01", groups[0].GroupID)
	assert.Equal(t, "Dr. Nadia", groups[0].Supervisor.Name)
	require.NotNil(t, groups[0].CoAdvisor)
	assert.Len(t, groups[0].Members, 2)
}

func TestSupervisorGroups(t *testing.T) {
	svc := newMeetingService(&mockMeetingRepo{}, nil)

	groups, err := svc.SupervisorGroups(context.Background(), supervisorClaims())
	require.NoError(t, err)
	require.Len(t, groups, 1)

	none, err := svc.SupervisorGroups(context.Background(), &models.JWTClaims{UserID: "t-nobody", Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func mustTime(t *testing.T, raw string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, raw)
	require.NoError(t, err)
	return ts
}
