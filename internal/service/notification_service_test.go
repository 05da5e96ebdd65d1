package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushq/fyp-coordination-api/internal/models"
	"github.com/campushq/fyp-coordination-api/pkg/jobs"
)

type mockNotificationRepo struct {
	created []models.Notification
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	m.created = append(m.created, *notification)
	return nil
}

func TestNotificationHandleResolvesAllRecipients(t *testing.T) {
	_, students, teachers := testDirectory()
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, students, teachers, zap.NewNop(), jobs.QueueConfig{})

	co := "t-co"
	meeting := &models.Meeting{
		ID:           "mtg-1",
		GroupID:      "G-01",
		ProjectTitle: "Campus Navigation",
		Venue:        "AT-01",
		StudentIDs:   []string{"s1", "s2"},
		SupervisorID: "t-sup",
		CoAdvisorID:  &co,
	}

	err := svc.handle(context.Background(), jobs.Job{ID: "job-1", Type: jobTypeMeetingScheduled, Payload: meeting})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	record := repo.created[0]
	assert.Equal(t, models.NotificationSent, record.Status)
	assert.Equal(t, "mtg-1", record.MeetingID)
	assert.ElementsMatch(t, []string{"ayesha@uni.edu", "bilal@uni.edu", "nadia@uni.edu", "omar@uni.edu"}, []string(record.Recipients))
	assert.Contains(t, record.Body, "AT-01")
}

func TestNotificationHandleSkipsWithoutRecipients(t *testing.T) {
	_, _, teachers := testDirectory()
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, &mockStudentReader{}, teachers, zap.NewNop(), jobs.QueueConfig{})

	meeting := &models.Meeting{ID: "mtg-2", GroupID: "G-01", SupervisorID: "t-unknown"}
	err := svc.handle(context.Background(), jobs.Job{ID: "job-2", Type: jobTypeMeetingScheduled, Payload: meeting})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.NotificationSkipped, repo.created[0].Status)
}

func TestNotificationEnqueueBeforeStartIsDropped(t *testing.T) {
	_, students, teachers := testDirectory()
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, students, teachers, zap.NewNop(), jobs.QueueConfig{})

	// A queue that was never started must swallow the notice silently.
	svc.MeetingScheduled(&models.Meeting{ID: "mtg-3", GroupID: "G-01"})
	assert.Empty(t, repo.created)
}
