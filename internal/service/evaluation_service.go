package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/fyp-coordination-api/internal/models"
	appErrors "github.com/campushq/fyp-coordination-api/pkg/errors"
	"github.com/campushq/fyp-coordination-api/pkg/export"
)

type evaluationRepo interface {
	UpsertPhase(ctx context.Context, eval *models.Evaluation, phase models.EvaluationPhase) error
	FindByScope(ctx context.Context, groupID, studentID string, evaluatorType models.EvaluatorType) (*models.Evaluation, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Evaluation, error)
	ListByGroups(ctx context.Context, groupIDs []string) ([]models.Evaluation, error)
	ListByGroupAndType(ctx context.Context, groupID string, evaluatorType models.EvaluatorType) ([]models.Evaluation, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Evaluation, error)
	ListCompletedByCreator(ctx context.Context, groupID, createdBy string) ([]models.Evaluation, error)
}

type rosterReader interface {
	FindByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	FindByRollNumberInGroup(ctx context.Context, rollNumber, groupID string) (*models.Student, error)
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Student, error)
}

type sheetExporter interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// EvaluationMarks carries the component marks of one phase submission. Only
// the fields of the submitted phase are read; totals sent by callers are
// ignored and recomputed.
type EvaluationMarks struct {
	Presentation      float64 `json:"presentation"`
	SRSReport         float64 `json:"srs_report"`
	Poster            float64 `json:"poster"`
	ProgressSheet     float64 `json:"progress_sheet"`
	Report            float64 `json:"report"`
	FinalPresentation float64 `json:"final_presentation"`
}

// SaveEvaluationRequest is a per-student, per-phase evaluation submission.
type SaveEvaluationRequest struct {
	GroupID    string          `json:"group_id" validate:"required"`
	RollNumber string          `json:"roll_number" validate:"required"`
	Phase      string          `json:"evaluation_type" validate:"required,oneof=MidYear FinalYear"`
	Marks      EvaluationMarks `json:"marks"`
}

// EvaluationService manages the dual-evaluator scorecards and their rollups.
type EvaluationService struct {
	evaluations evaluationRepo
	proposals   proposalReader
	students    rosterReader
	teachers    teacherReader
	exporter    sheetExporter
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEvaluationService constructs EvaluationService. exporter may be nil when
// PDF export is not wired.
func NewEvaluationService(evaluations evaluationRepo, proposals proposalReader, students rosterReader, teachers teacherReader, exporter sheetExporter, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{
		evaluations: evaluations,
		proposals:   proposals,
		students:    students,
		teachers:    teachers,
		exporter:    exporter,
		validator:   validate,
		logger:      logger,
	}
}

// SaveFYPTeamEvaluation records one phase of the FYP team's scorecard for a
// student. The evaluator type is forced server-side; it is never read from
// the payload.
func (s *EvaluationService) SaveFYPTeamEvaluation(ctx context.Context, claims *models.JWTClaims, req SaveEvaluationRequest) (*models.EvaluationDetail, error) {
	return s.save(ctx, claims, req, models.EvaluatorFYPTeam)
}

// SaveSupervisorEvaluation records one phase of the supervisor's scorecard.
// The caller must be the assigned supervisor of the group's approved
// proposal.
func (s *EvaluationService) SaveSupervisorEvaluation(ctx context.Context, claims *models.JWTClaims, req SaveEvaluationRequest) (*models.EvaluationDetail, error) {
	if req.GroupID == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingFields, "group_id, roll_number and evaluation_type are required")
	}
	proposal, err := s.proposals.FindApprovedByGroup(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrGroupNotEligible, fmt.Sprintf("group %s has no approved proposal with an assigned supervisor", req.GroupID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group proposal")
	}
	if proposal.SupervisorID == nil || *proposal.SupervisorID != claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the group's assigned supervisor can record this evaluation")
	}
	return s.save(ctx, claims, req, models.EvaluatorSupervisor)
}

func (s *EvaluationService) save(ctx context.Context, claims *models.JWTClaims, req SaveEvaluationRequest, evaluatorType models.EvaluatorType) (*models.EvaluationDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrMissingFields, "group_id, roll_number and evaluation_type are required")
	}
	phase := models.EvaluationPhase(req.Phase)

	if err := validateMarks(phase, req.Marks); err != nil {
		return nil, err
	}

	student, err := s.students.FindByRollNumberInGroup(ctx, req.RollNumber, req.GroupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrStudentNotInGroup, fmt.Sprintf("student %s does not belong to group %s", req.RollNumber, req.GroupID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}

	now := time.Now().UTC()
	eval := &models.Evaluation{
		GroupID:       req.GroupID,
		StudentID:     student.ID,
		RollNumber:    student.RollNumber,
		EvaluatorType: evaluatorType,
		CreatedBy:     claims.UserID,
	}
	if phase == models.PhaseMidYear {
		eval.MidCompleted = true
		eval.MidPresentation = req.Marks.Presentation
		eval.MidSRSReport = req.Marks.SRSReport
		eval.MidPoster = req.Marks.Poster
		eval.MidProgressSheet = req.Marks.ProgressSheet
		eval.MidTotal = req.Marks.Presentation + req.Marks.SRSReport + req.Marks.Poster + req.Marks.ProgressSheet
		eval.MidEvaluatedAt = &now
	} else {
		eval.FinalCompleted = true
		eval.FinalReport = req.Marks.Report
		eval.FinalPresentation = req.Marks.FinalPresentation
		eval.FinalTotal = req.Marks.Report + req.Marks.FinalPresentation
		eval.FinalEvaluatedAt = &now
	}

	if err := s.evaluations.UpsertPhase(ctx, eval, phase); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save evaluation")
	}

	stored, err := s.evaluations.FindByScope(ctx, req.GroupID, student.ID, evaluatorType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load saved evaluation")
	}

	s.logger.Sugar().Infow("evaluation saved",
		"group_id", req.GroupID,
		"roll_number", student.RollNumber,
		"evaluator_type", evaluatorType,
		"phase", phase,
	)
	detail := detailOf(stored, student.Name)
	return &detail, nil
}

// CombinedMarks computes the student-facing official marks: the component
// wise sum of the supervisor and FYP-team records per phase, surfaced only
// once both evaluators have completed that phase.
func (s *EvaluationService) CombinedMarks(ctx context.Context, claims *models.JWTClaims) (*models.CombinedMarks, error) {
	student, err := s.students.FindByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no student record for this account")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student record")
	}

	evals, err := s.evaluations.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
	}

	groupID := ""
	if student.GroupID != nil {
		groupID = *student.GroupID
	}
	combined := &models.CombinedMarks{
		StudentID:  student.ID,
		RollNumber: student.RollNumber,
		GroupID:    groupID,
		MidYear:    models.CombinedMidYear{Status: models.CombinedPending},
		FinalYear:  models.CombinedFinalYear{Status: models.CombinedPending},
	}

	var midDone, finalDone []models.Evaluation
	for _, e := range evals {
		if e.MidCompleted {
			midDone = append(midDone, e)
		}
		if e.FinalCompleted {
			finalDone = append(finalDone, e)
		}
	}

	if bothEvaluators(midDone) {
		marks := models.MidYearMarks{}
		for _, e := range midDone {
			marks.Presentation += e.MidPresentation
			marks.SRSReport += e.MidSRSReport
			marks.Poster += e.MidPoster
			marks.ProgressSheet += e.MidProgressSheet
			marks.Total += e.MidTotal
		}
		combined.MidYear = models.CombinedMidYear{Status: models.CombinedComplete, Marks: &marks}
	}
	if bothEvaluators(finalDone) {
		marks := models.FinalYearMarks{}
		for _, e := range finalDone {
			marks.Report += e.FinalReport
			marks.FinalPresentation += e.FinalPresentation
			marks.Total += e.FinalTotal
		}
		combined.FinalYear = models.CombinedFinalYear{Status: models.CombinedComplete, Marks: &marks}
	}
	return combined, nil
}

// GroupSummaries returns every eligible group with its evaluation records and
// completion rollup. This backs the FYP-team evaluation dashboard.
func (s *EvaluationService) GroupSummaries(ctx context.Context) ([]models.GroupEvaluationSummary, error) {
	proposals, err := s.proposals.ListApproved(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list eligible groups")
	}
	return s.summarize(ctx, proposals, true)
}

// GroupEvaluations returns one group's evaluation records and rollup.
func (s *EvaluationService) GroupEvaluations(ctx context.Context, groupID string) (*models.GroupEvaluationSummary, error) {
	proposal, err := s.proposals.FindApprovedByGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("group %s not found or not eligible", groupID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group proposal")
	}
	summaries, err := s.summarize(ctx, []models.Proposal{*proposal}, true)
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

// SupervisorGroupStatuses returns marks-free completion rollups for the
// groups the calling teacher supervises.
func (s *EvaluationService) SupervisorGroupStatuses(ctx context.Context, claims *models.JWTClaims) ([]models.GroupStatusRollup, error) {
	proposals, err := s.proposals.ListApprovedBySupervisor(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list supervised groups")
	}
	summaries, err := s.summarize(ctx, proposals, false)
	if err != nil {
		return nil, err
	}

	rollups := make([]models.GroupStatusRollup, 0, len(summaries))
	for _, sum := range summaries {
		rollups = append(rollups, models.GroupStatusRollup{
			GroupID:      sum.GroupID,
			ProjectTitle: sum.ProjectTitle,
			Supervisor:   sum.Supervisor,
			CoAdvisor:    sum.CoAdvisor,
			GroupMembers: sum.GroupMembers,
			Status:       sum.Status,
		})
	}
	return rollups, nil
}

// StudentEvaluations returns both evaluators' records for a student by roll
// number.
func (s *EvaluationService) StudentEvaluations(ctx context.Context, rollNumber string) ([]models.EvaluationDetail, error) {
	student, err := s.students.FindByRollNumber(ctx, rollNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", rollNumber))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}

	evals, err := s.evaluations.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
	}
	if len(evals) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no evaluation records for student %s", rollNumber))
	}

	details := make([]models.EvaluationDetail, 0, len(evals))
	for i := range evals {
		details = append(details, detailOf(&evals[i], student.Name))
	}
	return details, nil
}

// SupervisorRecordsForGroup returns the supervisor-track records of a group.
func (s *EvaluationService) SupervisorRecordsForGroup(ctx context.Context, groupID string) ([]models.EvaluationDetail, error) {
	evals, err := s.evaluations.ListByGroupAndType(ctx, groupID, models.EvaluatorSupervisor)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
	}
	return s.detailsWithNames(ctx, evals)
}

// MyEvaluations lists the completed phases the calling supervisor has
// recorded across their supervised groups, flattened per phase and ordered
// most recent first within each group.
func (s *EvaluationService) MyEvaluations(ctx context.Context, claims *models.JWTClaims) ([]models.SupervisorPhaseEntry, error) {
	proposals, err := s.proposals.ListApprovedBySupervisor(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list supervised groups")
	}

	var entries []models.SupervisorPhaseEntry
	for _, p := range proposals {
		evals, err := s.evaluations.ListCompletedByCreator(ctx, p.GroupID, claims.UserID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
		}
		names, err := s.studentNames(ctx, evals)
		if err != nil {
			return nil, err
		}
		for i := range evals {
			e := &evals[i]
			name := names[e.StudentID]
			if e.MidCompleted {
				entries = append(entries, models.SupervisorPhaseEntry{
					GroupID:     e.GroupID,
					StudentID:   e.StudentID,
					RollNumber:  e.RollNumber,
					StudentName: name,
					Phase:       models.PhaseMidYear,
					Marks:       e.MidYear().Marks,
					EvaluatedAt: e.MidEvaluatedAt,
					LastUpdated: e.UpdatedAt,
				})
			}
			if e.FinalCompleted {
				entries = append(entries, models.SupervisorPhaseEntry{
					GroupID:     e.GroupID,
					StudentID:   e.StudentID,
					RollNumber:  e.RollNumber,
					StudentName: name,
					Phase:       models.PhaseFinalYear,
					Marks:       e.FinalYear().Marks,
					EvaluatedAt: e.FinalEvaluatedAt,
					LastUpdated: e.UpdatedAt,
				})
			}
		}
	}
	return entries, nil
}

// ExportGroupSheet renders a group's evaluation records as a PDF mark sheet.
func (s *EvaluationService) ExportGroupSheet(ctx context.Context, groupID string) ([]byte, error) {
	if s.exporter == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export is not configured")
	}
	summary, err := s.GroupEvaluations(ctx, groupID)
	if err != nil {
		return nil, err
	}

	headers := []string{"Roll No", "Student", "Evaluator", "Mid Presentation", "SRS Report", "Poster", "Progress Sheet", "Mid Total", "Final Report", "Final Presentation", "Final Total"}
	rows := make([]map[string]string, 0, len(summary.Evaluations))
	for _, d := range summary.Evaluations {
		rows = append(rows, map[string]string{
			"Roll No":            d.RollNumber,
			"Student":            d.StudentName,
			"Evaluator":          string(d.EvaluatorType),
			"Mid Presentation":   formatMark(d.MidYear.Marks.Presentation, d.MidYear.Completed),
			"SRS Report":         formatMark(d.MidYear.Marks.SRSReport, d.MidYear.Completed),
			"Poster":             formatMark(d.MidYear.Marks.Poster, d.MidYear.Completed),
			"Progress Sheet":     formatMark(d.MidYear.Marks.ProgressSheet, d.MidYear.Completed),
			"Mid Total":          formatMark(d.MidYear.Marks.Total, d.MidYear.Completed),
			"Final Report":       formatMark(d.FinalYear.Marks.Report, d.FinalYear.Completed),
			"Final Presentation": formatMark(d.FinalYear.Marks.FinalPresentation, d.FinalYear.Completed),
			"Final Total":        formatMark(d.FinalYear.Marks.Total, d.FinalYear.Completed),
		})
	}

	title := fmt.Sprintf("Evaluation Sheet - %s (%s)", summary.ProjectTitle, summary.GroupID)
	pdf, err := s.exporter.Render(export.Dataset{Headers: headers, Rows: rows}, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render evaluation sheet")
	}
	return pdf, nil
}

func (s *EvaluationService) summarize(ctx context.Context, proposals []models.Proposal, includeDetails bool) ([]models.GroupEvaluationSummary, error) {
	groupIDs := make([]string, 0, len(proposals))
	teacherSet := make(map[string]struct{})
	for _, p := range proposals {
		groupIDs = append(groupIDs, p.GroupID)
		if p.SupervisorID != nil {
			teacherSet[*p.SupervisorID] = struct{}{}
		}
		if p.CoAdvisorID != nil {
			teacherSet[*p.CoAdvisorID] = struct{}{}
		}
	}

	evals, err := s.evaluations.ListByGroups(ctx, groupIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
	}
	evalsByGroup := make(map[string][]models.Evaluation)
	for _, e := range evals {
		evalsByGroup[e.GroupID] = append(evalsByGroup[e.GroupID], e)
	}

	names, err := s.studentNames(ctx, evals)
	if err != nil {
		return nil, err
	}

	teachers, err := s.teachers.ListByIDs(ctx, keysOf(teacherSet))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve teachers")
	}
	teacherNames := make(map[string]string, len(teachers))
	for _, t := range teachers {
		teacherNames[t.ID] = t.Name
	}

	summaries := make([]models.GroupEvaluationSummary, 0, len(proposals))
	for _, p := range proposals {
		groupEvals := evalsByGroup[p.GroupID]
		summary := models.GroupEvaluationSummary{
			GroupID:      p.GroupID,
			ProjectTitle: p.ProjectTitle,
			GroupMembers: append([]string(nil), p.MemberRollNumbers...),
			Status:       rollupStatus(groupEvals, len(p.MemberRollNumbers)),
		}
		if p.SupervisorID != nil {
			summary.Supervisor = teacherNames[*p.SupervisorID]
		}
		if p.CoAdvisorID != nil {
			if name, ok := teacherNames[*p.CoAdvisorID]; ok {
				summary.CoAdvisor = &name
			}
		}
		if includeDetails {
			summary.Evaluations = make([]models.EvaluationDetail, 0, len(groupEvals))
			for i := range groupEvals {
				summary.Evaluations = append(summary.Evaluations, detailOf(&groupEvals[i], names[groupEvals[i].StudentID]))
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *EvaluationService) detailsWithNames(ctx context.Context, evals []models.Evaluation) ([]models.EvaluationDetail, error) {
	names, err := s.studentNames(ctx, evals)
	if err != nil {
		return nil, err
	}
	details := make([]models.EvaluationDetail, 0, len(evals))
	for i := range evals {
		details = append(details, detailOf(&evals[i], names[evals[i].StudentID]))
	}
	return details, nil
}

func (s *EvaluationService) studentNames(ctx context.Context, evals []models.Evaluation) (map[string]string, error) {
	idSet := make(map[string]struct{}, len(evals))
	for _, e := range evals {
		idSet[e.StudentID] = struct{}{}
	}
	students, err := s.students.ListByIDs(ctx, keysOf(idSet))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve students")
	}
	names := make(map[string]string, len(students))
	for _, st := range students {
		names[st.ID] = st.Name
	}
	return names, nil
}

// rollupStatus counts distinct evaluated students per evaluator type and
// phase. A phase is complete for an evaluator once every roster member has a
// completed record from that evaluator.
func rollupStatus(evals []models.Evaluation, totalMembers int) models.GroupEvaluationStatus {
	count := func(evaluatorType models.EvaluatorType, phase models.EvaluationPhase) models.PhaseStatus {
		seen := make(map[string]struct{})
		for i := range evals {
			e := &evals[i]
			if e.EvaluatorType != evaluatorType || !e.PhaseCompleted(phase) {
				continue
			}
			seen[e.StudentID] = struct{}{}
		}
		return models.PhaseStatus{
			Completed:      totalMembers > 0 && len(seen) >= totalMembers,
			EvaluatedCount: len(seen),
			TotalMembers:   totalMembers,
		}
	}
	return models.GroupEvaluationStatus{
		BySupervisor: models.EvaluatorStatus{
			MidYear:   count(models.EvaluatorSupervisor, models.PhaseMidYear),
			FinalYear: count(models.EvaluatorSupervisor, models.PhaseFinalYear),
		},
		ByFYPTeam: models.EvaluatorStatus{
			MidYear:   count(models.EvaluatorFYPTeam, models.PhaseMidYear),
			FinalYear: count(models.EvaluatorFYPTeam, models.PhaseFinalYear),
		},
	}
}

// validateMarks checks the submitted phase's component caps. Components of
// the other phase are ignored.
func validateMarks(phase models.EvaluationPhase, marks EvaluationMarks) error {
	type bound struct {
		name  string
		value float64
		max   float64
	}
	var bounds []bound
	if phase == models.PhaseMidYear {
		bounds = []bound{
			{"presentation", marks.Presentation, models.MaxMidPresentation},
			{"srs_report", marks.SRSReport, models.MaxMidSRSReport},
			{"poster", marks.Poster, models.MaxMidPoster},
			{"progress_sheet", marks.ProgressSheet, models.MaxMidProgressSheet},
		}
	} else {
		bounds = []bound{
			{"report", marks.Report, models.MaxFinalReport},
			{"final_presentation", marks.FinalPresentation, models.MaxFinalPresentation},
		}
	}
	for _, b := range bounds {
		if b.value < 0 || b.value > b.max {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be between 0 and %g", b.name, b.max))
		}
	}
	return nil
}

func detailOf(e *models.Evaluation, studentName string) models.EvaluationDetail {
	return models.EvaluationDetail{
		StudentID:     e.StudentID,
		RollNumber:    e.RollNumber,
		StudentName:   studentName,
		EvaluatorType: e.EvaluatorType,
		MidYear:       e.MidYear(),
		FinalYear:     e.FinalYear(),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func formatMark(value float64, completed bool) string {
	if !completed {
		return "-"
	}
	return fmt.Sprintf("%g", value)
}

// bothEvaluators reports whether the completed set contains both the
// supervisor and the FYP-team record.
func bothEvaluators(evals []models.Evaluation) bool {
	var supervisor, fypTeam bool
	for _, e := range evals {
		switch e.EvaluatorType {
		case models.EvaluatorSupervisor:
			supervisor = true
		case models.EvaluatorFYPTeam:
			fypTeam = true
		}
	}
	return supervisor && fypTeam
}
