package ai

import (
	"context"

	"clinicvoice/models"
)

// Assistant sends one caller utterance to the AI backend within the call's
// conversation and reports what came back.
type Assistant interface {
	Send(ctx context.Context, session *models.CallSession, utterance string) (models.Reply, error)
}

// BookingNotifier is told about every appointment booked over the phone.
type BookingNotifier interface {
	NotifyBooked(ctx context.Context, appt models.Appointment) error
}

// ConversationService drives a call's conversation from first ring to booking.
type ConversationService interface {
	StartCall(ctx context.Context, callSID string) (*models.CallSession, error)
	ProcessTurn(ctx context.Context, callSID, callerPhone, utterance string) (models.TurnOutcome, error)
	EndCall(ctx context.Context, callSID string) error
}
