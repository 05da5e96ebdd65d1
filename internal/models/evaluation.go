package models

import "time"

// EvaluatorType distinguishes the two independent evaluator tracks. Each
// (group, student, evaluator type) triple owns at most one evaluation record.
type EvaluatorType string

const (
	EvaluatorSupervisor EvaluatorType = "Supervisor"
	EvaluatorFYPTeam    EvaluatorType = "FYPTeam"
)

// EvaluationPhase selects which half of the record a submission targets.
type EvaluationPhase string

const (
	PhaseMidYear   EvaluationPhase = "MidYear"
	PhaseFinalYear EvaluationPhase = "FinalYear"
)

// Mark caps per component.
const (
	MaxMidPresentation   = 30.0
	MaxMidSRSReport      = 10.0
	MaxMidPoster         = 5.0
	MaxMidProgressSheet  = 5.0
	MaxFinalReport       = 20.0
	MaxFinalPresentation = 30.0
)

// Evaluation is one evaluator's scorecard for one student, holding both
// phases. Totals are always recomputed sums of the phase components; values
// supplied by callers are ignored.
type Evaluation struct {
	ID            string        `db:"id" json:"id"`
	GroupID       string        `db:"group_id" json:"group_id"`
	StudentID     string        `db:"student_id" json:"student_id"`
	RollNumber    string        `db:"roll_number" json:"roll_number"`
	EvaluatorType EvaluatorType `db:"evaluator_type" json:"evaluator_type"`

	MidCompleted     bool       `db:"mid_completed" json:"-"`
	MidPresentation  float64    `db:"mid_presentation" json:"-"`
	MidSRSReport     float64    `db:"mid_srs_report" json:"-"`
	MidPoster        float64    `db:"mid_poster" json:"-"`
	MidProgressSheet float64    `db:"mid_progress_sheet" json:"-"`
	MidTotal         float64    `db:"mid_total" json:"-"`
	MidEvaluatedAt   *time.Time `db:"mid_evaluated_at" json:"-"`

	FinalCompleted    bool       `db:"final_completed" json:"-"`
	FinalReport       float64    `db:"final_report" json:"-"`
	FinalPresentation float64    `db:"final_presentation" json:"-"`
	FinalTotal        float64    `db:"final_total" json:"-"`
	FinalEvaluatedAt  *time.Time `db:"final_evaluated_at" json:"-"`

	CreatedBy string    `db:"created_by" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MidYearMarks are the mid-year phase components.
type MidYearMarks struct {
	Presentation  float64 `json:"presentation"`
	SRSReport     float64 `json:"srs_report"`
	Poster        float64 `json:"poster"`
	ProgressSheet float64 `json:"progress_sheet"`
	Total         float64 `json:"total"`
}

// FinalYearMarks are the final-year phase components.
type FinalYearMarks struct {
	Report            float64 `json:"report"`
	FinalPresentation float64 `json:"final_presentation"`
	Total             float64 `json:"total"`
}

// MidYearEvaluation is the API view of the mid-year half of a record.
type MidYearEvaluation struct {
	Completed   bool         `json:"completed"`
	Marks       MidYearMarks `json:"marks"`
	EvaluatedAt *time.Time   `json:"evaluated_at,omitempty"`
}

// FinalYearEvaluation is the API view of the final-year half of a record.
type FinalYearEvaluation struct {
	Completed   bool           `json:"completed"`
	Marks       FinalYearMarks `json:"marks"`
	EvaluatedAt *time.Time     `json:"evaluated_at,omitempty"`
}

// MidYear projects the mid-year phase view.
func (e *Evaluation) MidYear() MidYearEvaluation {
	return MidYearEvaluation{
		Completed: e.MidCompleted,
		Marks: MidYearMarks{
			Presentation:  e.MidPresentation,
			SRSReport:     e.MidSRSReport,
			Poster:        e.MidPoster,
			ProgressSheet: e.MidProgressSheet,
			Total:         e.MidTotal,
		},
		EvaluatedAt: e.MidEvaluatedAt,
	}
}

// FinalYear projects the final-year phase view.
func (e *Evaluation) FinalYear() FinalYearEvaluation {
	return FinalYearEvaluation{
		Completed: e.FinalCompleted,
		Marks: FinalYearMarks{
			Report:            e.FinalReport,
			FinalPresentation: e.FinalPresentation,
			Total:             e.FinalTotal,
		},
		EvaluatedAt: e.FinalEvaluatedAt,
	}
}

// PhaseCompleted reports whether the given phase is completed on this record.
func (e *Evaluation) PhaseCompleted(phase EvaluationPhase) bool {
	if phase == PhaseMidYear {
		return e.MidCompleted
	}
	return e.FinalCompleted
}

// EvaluationDetail is an evaluation record with the student projection and
// both phase views expanded.
type EvaluationDetail struct {
	StudentID     string              `json:"student_id"`
	RollNumber    string              `json:"roll_number"`
	StudentName   string              `json:"student_name"`
	EvaluatorType EvaluatorType       `json:"evaluator_type"`
	MidYear       MidYearEvaluation   `json:"mid_year_evaluation"`
	FinalYear     FinalYearEvaluation `json:"final_year_evaluation"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PhaseStatus is a completion rollup for one evaluator type and phase.
// Marks are deliberately not exposed here.
type PhaseStatus struct {
	Completed      bool `json:"completed"`
	EvaluatedCount int  `json:"evaluated_count"`
	TotalMembers   int  `json:"total_members"`
}

// EvaluatorStatus groups phase rollups for one evaluator type.
type EvaluatorStatus struct {
	MidYear   PhaseStatus `json:"mid_year"`
	FinalYear PhaseStatus `json:"final_year"`
}

// GroupEvaluationStatus is the per-group dashboard rollup.
type GroupEvaluationStatus struct {
	BySupervisor EvaluatorStatus `json:"by_supervisor"`
	ByFYPTeam    EvaluatorStatus `json:"by_fyp_team"`
}

// GroupEvaluationSummary pairs a directory group with its records and rollup.
type GroupEvaluationSummary struct {
	GroupID      string                `json:"group_id"`
	ProjectTitle string                `json:"project_title"`
	Supervisor   string                `json:"supervisor"`
	CoAdvisor    *string               `json:"co_advisor,omitempty"`
	GroupMembers []string              `json:"group_members"`
	Evaluations  []EvaluationDetail    `json:"evaluations"`
	Status       GroupEvaluationStatus `json:"evaluation_status"`
}

// GroupStatusRollup is the marks-free dashboard view of a group: completion
// counts per evaluator type and phase only.
type GroupStatusRollup struct {
	GroupID      string                `json:"group_id"`
	ProjectTitle string                `json:"project_title"`
	Supervisor   string                `json:"supervisor"`
	CoAdvisor    *string               `json:"co_advisor,omitempty"`
	GroupMembers []string              `json:"group_members"`
	Status       GroupEvaluationStatus `json:"evaluation_status"`
}

// CombinedPhaseStatus values for the student-facing official mark.
const (
	CombinedComplete = "complete"
	CombinedPending  = "pending"
)

// CombinedMidYear is the mid-year official mark: the component-wise sum of
// both evaluator records, present only when both are completed.
type CombinedMidYear struct {
	Status string        `json:"status"`
	Marks  *MidYearMarks `json:"marks,omitempty"`
}

// CombinedFinalYear is the final-year official mark.
type CombinedFinalYear struct {
	Status string          `json:"status"`
	Marks  *FinalYearMarks `json:"marks,omitempty"`
}

// CombinedMarks is the student-facing official grade view. Marks from the two
// evaluator tracks stack into one total; no partial sums are exposed while a
// phase is pending.
type CombinedMarks struct {
	StudentID  string            `json:"student_id"`
	RollNumber string            `json:"roll_number"`
	GroupID    string            `json:"group_id"`
	MidYear    CombinedMidYear   `json:"mid_year"`
	FinalYear  CombinedFinalYear `json:"final_year"`
}

// SupervisorPhaseEntry is one completed phase flattened for the supervisor's
// own-evaluations listing.
type SupervisorPhaseEntry struct {
	GroupID     string          `json:"group_id"`
	StudentID   string          `json:"student_id"`
	RollNumber  string          `json:"roll_number"`
	StudentName string          `json:"student_name"`
	Phase       EvaluationPhase `json:"evaluation_type"`
	Marks       interface{}     `json:"marks"`
	EvaluatedAt *time.Time      `json:"evaluated_at,omitempty"`
	LastUpdated time.Time       `json:"last_updated"`
}
