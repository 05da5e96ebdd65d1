package models

import (
	"time"

	"github.com/lib/pq"
)

// NotificationStatus tracks the outcome of a dispatch attempt.
type NotificationStatus string

const (
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	NotificationSkipped NotificationStatus = "skipped"
)

// Notification is the persisted record of a meeting notice. Delivery is
// best-effort; the record is kept for auditing regardless of outcome.
type Notification struct {
	ID         string             `db:"id" json:"id"`
	MeetingID  string             `db:"meeting_id" json:"meeting_id"`
	Recipients pq.StringArray     `db:"recipients" json:"recipients"`
	Subject    string             `db:"subject" json:"subject"`
	Body       string             `db:"body" json:"body"`
	Status     NotificationStatus `db:"status" json:"status"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}
