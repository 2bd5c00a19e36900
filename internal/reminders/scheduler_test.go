package reminders

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiscare/internal/events"
	"jiscare/internal/kv"
	"jiscare/internal/models"
	"jiscare/internal/store"
)

type recordingMailer struct {
	sent []string
	fail map[string]error
}

func (m *recordingMailer) EmailWeeklySchedule(_ context.Context, employeeID string, _ time.Time) error {
	if err := m.fail[employeeID]; err != nil {
		return err
	}
	m.sent = append(m.sent, employeeID)
	return nil
}

func newTestScheduler(t *testing.T, mailer Mailer) (*Scheduler, *store.Store) {
	t.Helper()
	db, err := kv.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	logger := zerolog.New(io.Discard)
	st := store.New(db, events.NewEventBus(), &logger)

	s, err := NewScheduler(DefaultSchedulerConfig(), st, mailer, &logger)
	require.NoError(t, err)
	return s, st
}

func TestSendAll(t *testing.T) {
	mailer := &recordingMailer{fail: map[string]error{"EMP-002": errors.New("bounced")}}
	s, st := newTestScheduler(t, mailer)

	// One employee without an address is skipped.
	require.NoError(t, st.SaveEmployee(models.Employee{ID: "EMP-006", Name: "No Mail"}))

	s.SendAll(context.Background(), time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC))

	// Five seeded employees all carry addresses; one send failed.
	assert.Len(t, mailer.sent, 4)
	assert.NotContains(t, mailer.sent, "EMP-002")
	assert.NotContains(t, mailer.sent, "EMP-006")
}

func TestNewScheduler_BadTimezone(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.Timezone = "Mars/Olympus"
	logger := zerolog.New(io.Discard)
	_, err := NewScheduler(cfg, nil, nil, &logger)
	assert.Error(t, err)
}
