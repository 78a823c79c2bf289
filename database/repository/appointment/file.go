package appointmentRepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"clinicvoice/models"

	"github.com/gofrs/flock"
)

// fileAppointmentRepo keeps every appointment in one pretty-printed JSON array.
type fileAppointmentRepo struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileAppointmentRepo returns a repository backed by the JSON document at path.
// An advisory lock on "<path>.lock" guards the read-modify-write against other processes.
func NewFileAppointmentRepo(path string) AppointmentRepository {
	return &fileAppointmentRepo{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (r *fileAppointmentRepo) Append(ctx context.Context, appt models.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.lock.Lock(); err != nil {
		return fmt.Errorf("%w: lock %s: %w", ErrStoreIO, r.path, err)
	}
	defer r.lock.Unlock()

	if err := r.ensureDocument(); err != nil {
		return err
	}

	appointments, err := r.read()
	if err != nil {
		return err
	}
	appointments = append(appointments, appt)
	return r.write(appointments)
}

func (r *fileAppointmentRepo) List(ctx context.Context) ([]models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.lock.RLock(); err != nil {
		return nil, fmt.Errorf("%w: lock %s: %w", ErrStoreIO, r.path, err)
	}
	defer r.lock.Unlock()

	if _, err := os.Stat(r.path); errors.Is(err, fs.ErrNotExist) {
		return []models.Appointment{}, nil
	}
	return r.read()
}

// ensureDocument initializes a missing document to an empty list.
func (r *fileAppointmentRepo) ensureDocument() error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: stat %s: %w", ErrStoreIO, r.path, err)
	}
	return r.write([]models.Appointment{})
}

func (r *fileAppointmentRepo) read() ([]models.Appointment, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStoreIO, r.path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s is not a JSON list", ErrStoreCorrupt, r.path)
	}

	var appointments []models.Appointment
	if err := json.Unmarshal(trimmed, &appointments); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrStoreCorrupt, r.path, err)
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}

// write replaces the document through a temp file in the same directory.
func (r *fileAppointmentRepo) write(appointments []models.Appointment) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(appointments); err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStoreIO, err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %w", ErrStoreIO, dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrStoreIO, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", ErrStoreIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrStoreIO, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrStoreIO, tmpName, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrStoreIO, r.path, err)
	}
	return nil
}
