package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "clinicvoice/database/repository/appointment"
	"clinicvoice/models"

	"go.uber.org/zap"
)

// DefaultConversationService implements ConversationService.
type DefaultConversationService struct {
	registry     *SessionRegistry
	assistant    Assistant
	appointments appointmentRepo.AppointmentRepository
	notifier     BookingNotifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewDefaultConversationService wires the turn processor. notifier may be nil.
func NewDefaultConversationService(
	registry *SessionRegistry,
	assistant Assistant,
	appointments appointmentRepo.AppointmentRepository,
	notifier BookingNotifier,
	logger *zap.Logger,
) *DefaultConversationService {
	return &DefaultConversationService{
		registry:     registry,
		assistant:    assistant,
		appointments: appointments,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// StartCall ensures the call has a session; the prompt's reference time is
// taken here and never again for this call.
func (s *DefaultConversationService) StartCall(ctx context.Context, callSID string) (*models.CallSession, error) {
	if callSID == "" {
		return nil, ErrMissingCallContext
	}
	return s.registry.GetOrCreate(ctx, callSID, s.newSession)
}

func (s *DefaultConversationService) newSession(callSID string) *models.CallSession {
	now := s.now()
	s.logger.Info("call session started", zap.String("callSid", callSID))
	return &models.CallSession{
		CallSID:   callSID,
		Prompt:    BuildPrompt(now),
		StartedAt: now,
	}
}

// ProcessTurn sends the caller's utterance to the assistant and acts on the reply.
func (s *DefaultConversationService) ProcessTurn(ctx context.Context, callSID, callerPhone, utterance string) (models.TurnOutcome, error) {
	failed := models.TurnOutcome{Status: models.TurnError}
	if callSID == "" {
		return failed, ErrMissingCallContext
	}

	session, err := s.registry.Lookup(ctx, callSID)
	if err != nil {
		return failed, err
	}

	if strings.TrimSpace(utterance) == "" {
		utterance = SpeakLouderInstruction
	}

	reply, err := s.assistant.Send(ctx, session, utterance)
	if err != nil {
		s.terminate(ctx, callSID)
		return failed, err
	}

	switch r := reply.(type) {
	case models.ActionReply:
		appt, err := s.book(ctx, r, callerPhone)
		s.terminate(ctx, callSID)
		if err != nil {
			return failed, err
		}
		return models.TurnOutcome{Status: models.TurnBooked, Appointment: &appt}, nil

	case models.TextReply:
		session.Record(utterance, r.Text)
		if err := s.registry.Save(ctx, session); errors.Is(err, ErrNoActiveSession) {
			s.logger.Info("call ended during turn", zap.String("callSid", callSID))
		} else if err != nil {
			// The reply can still be spoken; only this turn's history is lost.
			s.logger.Warn("failed to save call session", zap.String("callSid", callSID), zap.Error(err))
		}
		return models.TurnOutcome{Status: models.TurnContinue, Text: r.Text}, nil

	default:
		s.terminate(ctx, callSID)
		return failed, fmt.Errorf("%w: unexpected reply %T", ErrAITransport, reply)
	}
}

// EndCall drops the call's session, if any.
func (s *DefaultConversationService) EndCall(ctx context.Context, callSID string) error {
	if callSID == "" {
		return ErrMissingCallContext
	}
	return s.registry.Remove(ctx, callSID)
}

func (s *DefaultConversationService) book(ctx context.Context, action models.ActionReply, callerPhone string) (models.Appointment, error) {
	if action.Name != BookAppointmentAction {
		return models.Appointment{}, &ActionError{Action: action.Name, Reason: "not a registered action"}
	}

	args, err := parseBookingArgs(action.Args)
	if err != nil {
		return models.Appointment{}, err
	}

	appt := args.WithMobile(callerPhone)
	if err := s.appointments.Append(ctx, appt); err != nil {
		return models.Appointment{}, fmt.Errorf("store appointment: %w", err)
	}
	s.logger.Info("appointment booked",
		zap.String("patient", appt.PatientName),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))

	if s.notifier != nil {
		if err := s.notifier.NotifyBooked(ctx, appt); err != nil {
			s.logger.Warn("failed to schedule booking notifications", zap.Error(err))
		}
	}
	return appt, nil
}

func (s *DefaultConversationService) terminate(ctx context.Context, callSID string) {
	if err := s.registry.Remove(ctx, callSID); err != nil {
		s.logger.Warn("failed to remove call session", zap.String("callSid", callSID), zap.Error(err))
	}
}

// parseBookingArgs validates the assistant's arguments and normalizes date and time.
func parseBookingArgs(args map[string]any) (models.BookingArgs, error) {
	field := func(name string) (string, error) {
		v, ok := args[name].(string)
		if !ok || strings.TrimSpace(v) == "" {
			return "", &ActionError{Action: BookAppointmentAction, Reason: "missing " + name}
		}
		return strings.TrimSpace(v), nil
	}

	name, err := field("patient_name")
	if err != nil {
		return models.BookingArgs{}, err
	}
	dateStr, err := field("date")
	if err != nil {
		return models.BookingArgs{}, err
	}
	timeStr, err := field("time")
	if err != nil {
		return models.BookingArgs{}, err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return models.BookingArgs{}, &ActionError{Action: BookAppointmentAction, Reason: "invalid date " + dateStr}
	}
	clock, err := parseClock(timeStr)
	if err != nil {
		return models.BookingArgs{}, &ActionError{Action: BookAppointmentAction, Reason: "invalid time " + timeStr}
	}

	return models.BookingArgs{
		PatientName: name,
		Date:        date.Format("2006-01-02"),
		Time:        clock.Format("15:04"),
	}, nil
}

// parseClock accepts HH:MM and HH:MM:SS; seconds are dropped on format.
func parseClock(value string) (time.Time, error) {
	clock, err := time.Parse("15:04", value)
	if err == nil {
		return clock, nil
	}
	return time.Parse("15:04:05", value)
}
