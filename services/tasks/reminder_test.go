package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"clinicvoice/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enqueued struct {
	task *asynq.Task
	opts []asynq.Option
}

type fakeQueue struct {
	items []enqueued
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.items = append(q.items, enqueued{task: task, opts: opts})
	return &asynq.TaskInfo{}, nil
}

func payloadOf(t *testing.T, task *asynq.Task) models.SMSPayload {
	t.Helper()
	var p models.SMSPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	return p
}

func processAt(opts []asynq.Option) (time.Time, bool) {
	for _, opt := range opts {
		if opt.Type() == asynq.ProcessAtOpt {
			return opt.Value().(time.Time), true
		}
	}
	return time.Time{}, false
}

var alice = models.Appointment{PatientName: "Alice", Date: "2025-12-31", Time: "14:30", MobileNo: "+1234567890"}

func TestNotifyBookedQueuesConfirmationAndReminder(t *testing.T) {
	q := &fakeQueue{}
	s := newBookingScheduler(q, time.UTC, 2*time.Hour)
	s.now = func() time.Time { return time.Date(2025, 12, 30, 10, 0, 0, 0, time.UTC) }

	require.NoError(t, s.NotifyBooked(context.Background(), alice))
	require.Len(t, q.items, 2)

	confirmation := payloadOf(t, q.items[0].task)
	assert.Equal(t, TypeSMSSend, q.items[0].task.Type())
	assert.Equal(t, KindConfirmation, confirmation.Kind)
	assert.Equal(t, "+1234567890", confirmation.To)
	assert.Contains(t, confirmation.Body, "2025-12-31 at 14:30")
	_, scheduled := processAt(q.items[0].opts)
	assert.False(t, scheduled)

	reminder := payloadOf(t, q.items[1].task)
	assert.Equal(t, KindReminder, reminder.Kind)
	at, scheduled := processAt(q.items[1].opts)
	require.True(t, scheduled)
	assert.True(t, at.Equal(time.Date(2025, 12, 31, 12, 30, 0, 0, time.UTC)))
}

func TestNotifyBookedSkipsPastReminder(t *testing.T) {
	q := &fakeQueue{}
	s := newBookingScheduler(q, time.UTC, 2*time.Hour)
	s.now = func() time.Time { return time.Date(2025, 12, 31, 13, 0, 0, 0, time.UTC) }

	require.NoError(t, s.NotifyBooked(context.Background(), alice))
	require.Len(t, q.items, 1)
	assert.Equal(t, KindConfirmation, payloadOf(t, q.items[0].task).Kind)
}

func TestNotifyBookedQueueFailure(t *testing.T) {
	s := newBookingScheduler(&fakeQueue{err: errors.New("redis down")}, time.UTC, time.Hour)

	err := s.NotifyBooked(context.Background(), alice)
	assert.ErrorContains(t, err, "redis down")
}
