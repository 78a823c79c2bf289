package appointmentRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"clinicvoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (AppointmentRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.json")
	return NewFileAppointmentRepo(path), path
}

func readDocument(t *testing.T, path string) []map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc []map[string]string
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestAppendCreatesDocument(t *testing.T) {
	repo, path := newTestRepo(t)

	appt := models.Appointment{
		PatientName: "Alice",
		Date:        "2025-12-31",
		Time:        "14:30",
		MobileNo:    "+1234567890",
	}
	require.NoError(t, repo.Append(context.Background(), appt))

	doc := readDocument(t, path)
	require.Len(t, doc, 1)
	assert.Equal(t, map[string]string{
		"patient_name": "Alice",
		"date":         "2025-12-31",
		"time":         "14:30",
		"mobile_no":    "+1234567890",
	}, doc[0])
}

func TestAppendKeepsOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	var want []models.Appointment
	for i := 0; i < 5; i++ {
		appt := models.Appointment{
			PatientName: fmt.Sprintf("patient-%d", i),
			Date:        "2025-01-0" + fmt.Sprint(i+1),
			Time:        "09:00",
			MobileNo:    "+100000000" + fmt.Sprint(i),
		}
		want = append(want, appt)
		require.NoError(t, repo.Append(ctx, appt))
	}

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDocumentIsPrettyPrinted(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, repo.Append(context.Background(), models.Appointment{PatientName: "Bob"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[\n    {\n        \"patient_name\": \"Bob\",")
}

func TestListMissingDocument(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestAppendCorruptDocument(t *testing.T) {
	for name, content := range map[string]string{
		"object":  `{"patient_name": "x"}`,
		"garbage": `not json`,
		"empty":   ``,
	} {
		t.Run(name, func(t *testing.T) {
			repo, path := newTestRepo(t)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			err := repo.Append(context.Background(), models.Appointment{PatientName: "x"})
			require.ErrorIs(t, err, ErrStoreCorrupt)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, string(data))
		})
	}
}

func TestAppendUnwritableDirectory(t *testing.T) {
	repo := NewFileAppointmentRepo(filepath.Join(t.TempDir(), "missing", "appointments.json"))

	err := repo.Append(context.Background(), models.Appointment{PatientName: "x"})
	require.ErrorIs(t, err, ErrStoreIO)
}

func TestConcurrentAppends(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, models.Appointment{PatientName: fmt.Sprint(i)}))
		}(i)
	}
	wg.Wait()

	assert.Len(t, readDocument(t, path), n)
}
