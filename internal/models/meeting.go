package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// MeetingStatus enumerates the meeting lifecycle states. Only Scheduled is
// produced by the scheduler; the remaining states are reserved.
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "Scheduled"
	MeetingCompleted MeetingStatus = "Completed"
	MeetingCancelled MeetingStatus = "Cancelled"
)

// Meeting is a conflict-checked venue booking for a project group. The
// project title and student roster are point-in-time snapshots taken from the
// proposal at creation; they are not re-synced afterwards.
type Meeting struct {
	ID            string         `db:"id" json:"id"`
	GroupID       string         `db:"group_id" json:"group_id"`
	ProjectTitle  string         `db:"project_title" json:"project_title"`
	Venue         string         `db:"venue" json:"venue"`
	StartTime     time.Time      `db:"start_time" json:"start_time"`
	EndTime       time.Time      `db:"end_time" json:"end_time"`
	StudentIDs    pq.StringArray `db:"student_ids" json:"-"`
	SupervisorID  string         `db:"supervisor_id" json:"-"`
	CoAdvisorID   *string        `db:"co_advisor_id" json:"-"`
	Status        MeetingStatus  `db:"status" json:"status"`
	CreatedByKind ActorKind      `db:"created_by_kind" json:"-"`
	CreatedByID   *string        `db:"created_by_id" json:"-"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// CreatedBy reassembles the tagged creator identity.
func (m *Meeting) CreatedBy() Actor {
	if m.CreatedByKind == ActorSystem {
		return SystemActor()
	}
	id := ""
	if m.CreatedByID != nil {
		id = *m.CreatedByID
	}
	return Actor{Kind: ActorUser, ID: id}
}

// SetCreatedBy stores the tagged creator identity.
func (m *Meeting) SetCreatedBy(actor Actor) {
	m.CreatedByKind = actor.Kind
	if actor.Kind == ActorUser {
		id := actor.ID
		m.CreatedByID = &id
	} else {
		m.CreatedByID = nil
	}
}

// MeetingParticipants expands participant ids to display projections.
type MeetingParticipants struct {
	Students   []StudentRef `json:"students"`
	Supervisor TeacherRef   `json:"supervisor"`
	CoAdvisor  *TeacherRef  `json:"co_advisor,omitempty"`
}

// MeetingDetail is the API shape of a meeting with expanded participants.
type MeetingDetail struct {
	Meeting
	Participants MeetingParticipants `json:"participants"`
	CreatedBy    Actor               `json:"created_by"`
}

// VenueConflict describes an existing booking that blocks a candidate
// interval.
type VenueConflict struct {
	MeetingID string    `json:"meeting_id"`
	GroupID   string    `json:"group_id"`
	Venue     string    `json:"venue"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// TimeRange renders the blocked interval for error payloads.
func (c VenueConflict) TimeRange() string {
	return fmt.Sprintf("%s to %s", c.StartTime.UTC().Format(time.RFC3339), c.EndTime.UTC().Format(time.RFC3339))
}

// VenueAvailability is the response of the standalone availability check.
type VenueAvailability struct {
	Available bool            `json:"available"`
	Conflicts []VenueConflict `json:"conflicting_meetings,omitempty"`
}
