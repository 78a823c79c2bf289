package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicvoice/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeSMSSend = "sms:send"

const (
	KindConfirmation = "confirmation"
	KindReminder     = "reminder"
)

// NewSMSTask wraps an SMS payload in an asynq task.
func NewSMSTask(payload models.SMSPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSMSSend, b), nil
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BookingScheduler queues a confirmation SMS right away and a reminder SMS
// lead before the appointment.
type BookingScheduler struct {
	client   enqueuer
	location *time.Location
	lead     time.Duration
	now      func() time.Time
}

func NewBookingScheduler(client *asynq.Client, location *time.Location, lead time.Duration) *BookingScheduler {
	return newBookingScheduler(client, location, lead)
}

func newBookingScheduler(client enqueuer, location *time.Location, lead time.Duration) *BookingScheduler {
	if location == nil {
		location = time.Local
	}
	return &BookingScheduler{client: client, location: location, lead: lead, now: time.Now}
}

// NotifyBooked schedules the booking's messages. Reminders whose fire time
// has already passed are skipped.
func (s *BookingScheduler) NotifyBooked(ctx context.Context, appt models.Appointment) error {
	confirmation := models.SMSPayload{
		To:   appt.MobileNo,
		Kind: KindConfirmation,
		Body: fmt.Sprintf("Hi %s, your dental appointment is booked for %s at %s.", appt.PatientName, appt.Date, appt.Time),
	}
	if err := s.enqueue(ctx, confirmation); err != nil {
		return err
	}

	at, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.Time, s.location)
	if err != nil {
		return fmt.Errorf("NotifyBooked: parse appointment time: %w", err)
	}
	fireAt := at.Add(-s.lead)
	if !fireAt.After(s.now()) {
		return nil
	}

	reminder := models.SMSPayload{
		To:       appt.MobileNo,
		Kind:     KindReminder,
		FireDate: fireAt.Format(time.RFC3339),
		Body:     fmt.Sprintf("Reminder: %s, your dental appointment is on %s at %s.", appt.PatientName, appt.Date, appt.Time),
	}
	return s.enqueue(ctx, reminder, asynq.ProcessAt(fireAt))
}

func (s *BookingScheduler) enqueue(ctx context.Context, payload models.SMSPayload, opts ...asynq.Option) error {
	task, err := NewSMSTask(payload)
	if err != nil {
		return err
	}
	opts = append(opts, asynq.TaskID(payload.Kind+":"+uuid.New().String()), asynq.MaxRetry(3))
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue %s sms: %w", payload.Kind, err)
	}
	return nil
}
