package appointmentRepo

import (
	"context"
	"errors"

	"clinicvoice/models"
)

var (
	// ErrStoreCorrupt means the persisted document is not a valid list of appointments.
	ErrStoreCorrupt = errors.New("appointment store corrupt")
	// ErrStoreIO wraps read, write and lock failures of the backing store.
	ErrStoreIO = errors.New("appointment store io failure")
)

// AppointmentRepository persists booked appointments. Records are append-only.
type AppointmentRepository interface {
	Append(ctx context.Context, appt models.Appointment) error
	List(ctx context.Context) ([]models.Appointment, error)
}
