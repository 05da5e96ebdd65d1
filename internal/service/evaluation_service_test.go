package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushq/fyp-coordination-api/internal/models"
	appErrors "github.com/campushq/fyp-coordination-api/pkg/errors"
	"github.com/campushq/fyp-coordination-api/pkg/export"
)

type mockEvaluationRepo struct {
	records map[string]*models.Evaluation
}

func evalKey(groupID, studentID string, evaluatorType models.EvaluatorType) string {
	return groupID + "|" + studentID + "|" + string(evaluatorType)
}

func (m *mockEvaluationRepo) UpsertPhase(ctx context.Context, eval *models.Evaluation, phase models.EvaluationPhase) error {
	if m.records == nil {
		m.records = make(map[string]*models.Evaluation)
	}
	key := evalKey(eval.GroupID, eval.StudentID, eval.EvaluatorType)
	existing, ok := m.records[key]
	if !ok {
		stored := *eval
		m.records[key] = &stored
		return nil
	}
	if phase == models.PhaseMidYear {
		existing.MidCompleted = eval.MidCompleted
		existing.MidPresentation = eval.MidPresentation
		existing.MidSRSReport = eval.MidSRSReport
		existing.MidPoster = eval.MidPoster
		existing.MidProgressSheet = eval.MidProgressSheet
		existing.MidTotal = eval.MidTotal
		existing.MidEvaluatedAt = eval.MidEvaluatedAt
	} else {
		existing.FinalCompleted = eval.FinalCompleted
		existing.FinalReport = eval.FinalReport
		existing.FinalPresentation = eval.FinalPresentation
		existing.FinalTotal = eval.FinalTotal
		existing.FinalEvaluatedAt = eval.FinalEvaluatedAt
	}
	existing.CreatedBy = eval.CreatedBy
	existing.UpdatedAt = eval.UpdatedAt
	return nil
}

func (m *mockEvaluationRepo) FindByScope(ctx context.Context, groupID, studentID string, evaluatorType models.EvaluatorType) (*models.Evaluation, error) {
	if e, ok := m.records[evalKey(groupID, studentID, evaluatorType)]; ok {
		stored := *e
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEvaluationRepo) ListByGroup(ctx context.Context, groupID string) ([]models.Evaluation, error) {
	var out []models.Evaluation
	for _, e := range m.records {
		if e.GroupID == groupID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEvaluationRepo) ListByGroups(ctx context.Context, groupIDs []string) ([]models.Evaluation, error) {
	var out []models.Evaluation
	for _, e := range m.records {
		for _, id := range groupIDs {
			if e.GroupID == id {
				out = append(out, *e)
				break
			}
		}
	}
	return out, nil
}

func (m *mockEvaluationRepo) ListByGroupAndType(ctx context.Context, groupID string, evaluatorType models.EvaluatorType) ([]models.Evaluation, error) {
	var out []models.Evaluation
	for _, e := range m.records {
		if e.GroupID == groupID && e.EvaluatorType == evaluatorType {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEvaluationRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Evaluation, error) {
	var out []models.Evaluation
	for _, e := range m.records {
		if e.StudentID == studentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEvaluationRepo) ListCompletedByCreator(ctx context.Context, groupID, createdBy string) ([]models.Evaluation, error) {
	var out []models.Evaluation
	for _, e := range m.records {
		if e.GroupID == groupID && e.CreatedBy == createdBy && (e.MidCompleted || e.FinalCompleted) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func newEvaluationService(repo *mockEvaluationRepo) *EvaluationService {
	proposals, students, teachers := testDirectory()
	return NewEvaluationService(repo, proposals, students, teachers, export.NewPDFExporter(), validator.New(), zap.NewNop())
}

func midYearRequest(roll string) SaveEvaluationRequest {
	return SaveEvaluationRequest{
		GroupID:    "G-01",
		RollNumber: roll,
		Phase:      "MidYear",
		Marks:      EvaluationMarks{Presentation: 25, SRSReport: 8, Poster: 4, ProgressSheet: 5},
	}
}

func TestSaveFYPTeamEvaluationComputesTotal(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)

	detail, err := svc.SaveFYPTeamEvaluation(context.Background(), fypTeamClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)
	assert.Equal(t, models.EvaluatorFYPTeam, detail.EvaluatorType)
	assert.True(t, detail.MidYear.Completed)
	assert.Equal(t, 42.0, detail.MidYear.Marks.Total)
	assert.False(t, detail.FinalYear.Completed)
	assert.Equal(t, "Ayesha Khan", detail.StudentName)
	require.NotNil(t, detail.MidYear.EvaluatedAt)
}

func TestSaveEvaluationOverwritesPhase(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()

	_, err := svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)

	resubmit := midYearRequest("19F-0255")
	resubmit.Marks = EvaluationMarks{Presentation: 20, SRSReport: 6, Poster: 3, ProgressSheet: 4}
	detail, err := svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), resubmit)
	require.NoError(t, err)

	// Resubmission replaces the phase, it never accumulates.
	assert.Equal(t, 33.0, detail.MidYear.Marks.Total)
	assert.Len(t, repo.records, 1)
}

func TestSaveEvaluationKeepsOtherPhase(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()

	_, err := svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)

	final := SaveEvaluationRequest{
		GroupID:    "G-01",
		RollNumber: "19F-0255",
		Phase:      "FinalYear",
		Marks:      EvaluationMarks{Report: 18, FinalPresentation: 27},
	}
	detail, err := svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), final)
	require.NoError(t, err)
	assert.True(t, detail.MidYear.Completed)
	assert.Equal(t, 42.0, detail.MidYear.Marks.Total)
	assert.True(t, detail.FinalYear.Completed)
	assert.Equal(t, 45.0, detail.FinalYear.Marks.Total)
}

func TestSaveEvaluationValidation(t *testing.T) {
	svc := newEvaluationService(&mockEvaluationRepo{})
	ctx := context.Background()

	_, err := svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), SaveEvaluationRequest{GroupID: "G-01"})
	assertErrCode(t, err, appErrors.ErrMissingFields.Code)

	capped := midYearRequest("19F-0255")
	capped.Marks.Presentation = 31
	_, err = svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), capped)
	assertErrCode(t, err, appErrors.ErrValidation.Code)

	negative := midYearRequest("19F-0255")
	negative.Marks.Poster = -1
	_, err = svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), negative)
	assertErrCode(t, err, appErrors.ErrValidation.Code)

	outsider := midYearRequest("21F-9999")
	_, err = svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), outsider)
	assertErrCode(t, err, appErrors.ErrStudentNotInGroup.Code)
}

func TestSaveSupervisorEvaluationAuthz(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()

	_, err := svc.SaveSupervisorEvaluation(ctx, &models.JWTClaims{UserID: "t-other", Role: models.RoleTeacher}, midYearRequest("19F-0255"))
	assertErrCode(t, err, appErrors.ErrForbidden.Code)

	unknown := midYearRequest("19F-0255")
	unknown.GroupID = "G-99"
	_, err = svc.SaveSupervisorEvaluation(ctx, supervisorClaims(), unknown)
	assertErrCode(t, err, appErrors.ErrGroupNotEligible.Code)

	detail, err := svc.SaveSupervisorEvaluation(ctx, supervisorClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)
	assert.Equal(t, models.EvaluatorSupervisor, detail.EvaluatorType)
}

func TestCombinedMarksRequiresBothEvaluators(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()
	studentClaims := &models.JWTClaims{UserID: "u-s1", Role: models.RoleStudent, RollNumber: "19F-0255", GroupID: "G-01"}

	_, err := svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)

	combined, err := svc.CombinedMarks(ctx, studentClaims)
	require.NoError(t, err)
	assert.Equal(t, models.CombinedPending, combined.MidYear.Status)
	assert.Nil(t, combined.MidYear.Marks)

	supReq := midYearRequest("19F-0255")
	supReq.Marks = EvaluationMarks{Presentation: 22, SRSReport: 7, Poster: 5, ProgressSheet: 4}
	_, err = svc.SaveSupervisorEvaluation(ctx, supervisorClaims(), supReq)
	require.NoError(t, err)

	combined, err = svc.CombinedMarks(ctx, studentClaims)
	require.NoError(t, err)
	assert.Equal(t, models.CombinedComplete, combined.MidYear.Status)
	require.NotNil(t, combined.MidYear.Marks)
	assert.Equal(t, 47.0, combined.MidYear.Marks.Presentation)
	assert.Equal(t, 80.0, combined.MidYear.Marks.Total)
	assert.Equal(t, models.CombinedPending, combined.FinalYear.Status)
	assert.Equal(t, "G-01", combined.GroupID)
}

func TestGroupEvaluationsRollup(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()

	_, err := svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)

	summary, err := svc.GroupEvaluations(ctx, "G-01")
	require.NoError(t, err)
	assert.Equal(t, "Campus Navigation", summary.ProjectTitle)
	assert.Equal(t, "Dr. Nadia", summary.Supervisor)
	assert.Len(t, summary.Evaluations, 1)

	status := summary.Status.ByFYPTeam.MidYear
	assert.False(t, status.Completed)
	assert.Equal(t, 1, status.EvaluatedCount)
	assert.Equal(t, 2, status.TotalMembers)
	assert.Equal(t, 0, summary.Status.BySupervisor.MidYear.EvaluatedCount)

	_, err = svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), midYearRequest("19F-0301"))
	require.NoError(t, err)

	summary, err = svc.GroupEvaluations(ctx, "G-01")
	require.NoError(t, err)
	assert.True(t, summary.Status.ByFYPTeam.MidYear.Completed)

	_, err = svc.GroupEvaluations(ctx, "G-99")
	assertErrCode(t, err, appErrors.ErrNotFound.Code)
}

func TestSupervisorGroupStatusesHideMarks(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()

	_, err := svc.SaveSupervisorEvaluation(ctx, supervisorClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)

	rollups, err := svc.SupervisorGroupStatuses(ctx, supervisorClaims())
	require.NoError(t, err)
	require.Len(t, rollups, 1)
	assert.Equal(t, 1, rollups[0].Status.BySupervisor.MidYear.EvaluatedCount)
	assert.Equal(t, []string{"19F-0255", "19F-0301"}, rollups[0].GroupMembers)
}

func TestStudentEvaluations(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()

	_, err := svc.StudentEvaluations(ctx, "19F-0255")
	assertErrCode(t, err, appErrors.ErrNotFound.Code)

	_, err = svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)

	details, err := svc.StudentEvaluations(ctx, "19F-0255")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "19F-0255", details[0].RollNumber)

	_, err = svc.StudentEvaluations(ctx, "00X-0000")
	assertErrCode(t, err, appErrors.ErrNotFound.Code)
}

func TestMyEvaluationsFlattensPhases(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()

	_, err := svc.SaveSupervisorEvaluation(ctx, supervisorClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)
	_, err = svc.SaveSupervisorEvaluation(ctx, supervisorClaims(), SaveEvaluationRequest{
		GroupID:    "G-01",
		RollNumber: "19F-0255",
		Phase:      "FinalYear",
		Marks:      EvaluationMarks{Report: 15, FinalPresentation: 20},
	})
	require.NoError(t, err)

	entries, err := svc.MyEvaluations(ctx, supervisorClaims())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	phases := []models.EvaluationPhase{entries[0].Phase, entries[1].Phase}
	assert.Contains(t, phases, models.PhaseMidYear)
	assert.Contains(t, phases, models.PhaseFinalYear)
	assert.Equal(t, "G-01", entries[0].GroupID)
}

func TestExportGroupSheet(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationService(repo)
	ctx := context.Background()

	_, err := svc.SaveFYPTeamEvaluation(ctx, fypTeamClaims(), midYearRequest("19F-0255"))
	require.NoError(t, err)

	pdf, err := svc.ExportGroupSheet(ctx, "G-01")
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
