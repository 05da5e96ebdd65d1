package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushq/fyp-coordination-api/internal/models"
	"github.com/campushq/fyp-coordination-api/pkg/jobs"
)

type notificationRepo interface {
	Create(ctx context.Context, notification *models.Notification) error
}

const jobTypeMeetingScheduled = "meeting.scheduled"

// NotificationService dispatches meeting notices off the request path.
// Dispatch is strictly fire-and-forget: enqueue and delivery failures are
// logged and dropped, and never affect the booking that triggered them.
type NotificationService struct {
	queue         *jobs.Queue
	notifications notificationRepo
	students      studentReader
	teachers      teacherReader
	logger        *zap.Logger
}

// NewNotificationService constructs the dispatcher and its worker queue.
// Start must be called before meetings are scheduled.
func NewNotificationService(notifications notificationRepo, students studentReader, teachers teacherReader, logger *zap.Logger, cfg jobs.QueueConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Logger = logger
	s := &NotificationService{
		notifications: notifications,
		students:      students,
		teachers:      teachers,
		logger:        logger,
	}
	s.queue = jobs.NewQueue("notifications", s.handle, cfg)
	return s
}

// Start begins background dispatch.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// MeetingScheduled enqueues a notice for a freshly booked meeting. Never
// returns an error: a full or stopped queue is logged and the notice is
// dropped.
func (s *NotificationService) MeetingScheduled(meeting *models.Meeting) {
	snapshot := *meeting
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeMeetingScheduled,
		Payload: &snapshot,
	})
	if err != nil {
		s.logger.Sugar().Errorw("meeting notice dropped", "meeting_id", meeting.ID, "error", err)
	}
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	meeting, ok := job.Payload.(*models.Meeting)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	recipients, err := s.resolveRecipients(ctx, meeting)
	if err != nil {
		s.record(ctx, meeting, nil, models.NotificationFailed)
		return fmt.Errorf("resolve recipients for meeting %s: %w", meeting.ID, err)
	}
	if len(recipients) == 0 {
		s.record(ctx, meeting, nil, models.NotificationSkipped)
		return nil
	}

	s.record(ctx, meeting, recipients, models.NotificationSent)
	s.logger.Sugar().Infow("meeting notice dispatched",
		"meeting_id", meeting.ID,
		"group_id", meeting.GroupID,
		"recipients", len(recipients),
	)
	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, meeting *models.Meeting) ([]string, error) {
	students, err := s.students.ListByIDs(ctx, meeting.StudentIDs)
	if err != nil {
		return nil, err
	}

	teacherIDs := []string{meeting.SupervisorID}
	if meeting.CoAdvisorID != nil {
		teacherIDs = append(teacherIDs, *meeting.CoAdvisorID)
	}
	teachers, err := s.teachers.ListByIDs(ctx, teacherIDs)
	if err != nil {
		return nil, err
	}

	var recipients []string
	for _, st := range students {
		if st.Email != "" {
			recipients = append(recipients, st.Email)
		}
	}
	for _, t := range teachers {
		if t.Email != "" {
			recipients = append(recipients, t.Email)
		}
	}
	return recipients, nil
}

func (s *NotificationService) record(ctx context.Context, meeting *models.Meeting, recipients []string, status models.NotificationStatus) {
	if recipients == nil {
		recipients = []string{}
	}
	notification := &models.Notification{
		MeetingID:  meeting.ID,
		Recipients: recipients,
		Subject:    fmt.Sprintf("Meeting scheduled: %s", meeting.ProjectTitle),
		Body:       meetingNoticeBody(meeting),
		Status:     status,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Sugar().Errorw("failed to record notification", "meeting_id", meeting.ID, "error", err)
	}
}

func meetingNoticeBody(meeting *models.Meeting) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A meeting has been scheduled for group %s.\n", meeting.GroupID)
	fmt.Fprintf(&b, "Project: %s\n", meeting.ProjectTitle)
	fmt.Fprintf(&b, "Venue: %s\n", meeting.Venue)
	fmt.Fprintf(&b, "Time: %s to %s\n",
		meeting.StartTime.UTC().Format(time.RFC1123),
		meeting.EndTime.UTC().Format(time.RFC1123))
	return b.String()
}
