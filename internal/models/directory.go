package models

import (
	"time"

	"github.com/lib/pq"
)

// ProposalStatusApproved marks proposals eligible for scheduling and
// evaluation.
const ProposalStatusApproved = "Approved"

// Proposal is a row from the group/proposal directory. The coordination core
// treats this data as read-only: proposal intake and review live in another
// service.
type Proposal struct {
	ID                string         `db:"id" json:"id"`
	GroupID           string         `db:"group_id" json:"group_id"`
	ProjectTitle      string         `db:"project_title" json:"project_title"`
	FYPStatus         string         `db:"fyp_status" json:"fyp_status"`
	SupervisorID      *string        `db:"supervisor_id" json:"supervisor_id,omitempty"`
	CoAdvisorID       *string        `db:"co_advisor_id" json:"co_advisor_id,omitempty"`
	MemberRollNumbers pq.StringArray `db:"member_roll_numbers" json:"member_roll_numbers"`
	SubmittedAt       time.Time      `db:"submitted_at" json:"submitted_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// Student is a roster entry resolved from the directory.
type Student struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"-"`
	RollNumber string    `db:"roll_number" json:"roll_number"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	GroupID    *string   `db:"group_id" json:"group_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
}

// Teacher is a supervisor/co-advisor entry resolved from the directory.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// StudentRef is the display projection of a student used in meeting and
// evaluation payloads.
type StudentRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
}

// TeacherRef is the display projection of a teacher.
type TeacherRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EligibleGroup is an approved, supervised proposal with its roster resolved
// to concrete students.
type EligibleGroup struct {
	GroupID      string       `json:"group_id"`
	ProjectTitle string       `json:"project_title"`
	Supervisor   TeacherRef   `json:"supervisor"`
	CoAdvisor    *TeacherRef  `json:"co_advisor,omitempty"`
	Members      []StudentRef `json:"members"`
}
