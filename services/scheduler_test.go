package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	to, body string
	err      error
}

func (n *fakeNotifier) Send(to, body string) (string, error) {
	n.to, n.body = to, body
	return "sms", n.err
}

func newTestScheduler(t *testing.T, f *fixture, cfg SchedulerConfig, n Notifier) *Scheduler {
	t.Helper()
	s, err := NewScheduler(cfg, f.backup, f.bills, f.settings, NewAnalytics(ict), n, ict, zap.NewNop())
	require.NoError(t, err)
	s.now = f.billing.now
	return s
}

func TestSchedulerRegistersEnabledJobs(t *testing.T) {
	f := newFixture(t)
	cfg := SchedulerConfig{BackupSchedule: "0 23 * * *", SummarySchedule: "0 21 * * *"}

	require.Equal(t, 0, newTestScheduler(t, f, cfg, nil).Jobs())

	cfg.BackupDir = t.TempDir()
	cfg.OwnerPhone = "+84912345678"
	require.Equal(t, 2, newTestScheduler(t, f, cfg, &fakeNotifier{}).Jobs())

	cfg.BackupSchedule = "whenever"
	_, err := NewScheduler(cfg, f.backup, f.bills, f.settings, NewAnalytics(ict), nil, ict, zap.NewNop())
	require.Error(t, err)
}

func TestSchedulerRunBackup(t *testing.T) {
	f := newFixture(t)
	seedData(t, f)
	dir := t.TempDir()
	s := newTestScheduler(t, f, SchedulerConfig{BackupDir: dir, BackupSchedule: "@daily"}, nil)

	path, err := s.RunBackup()
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(path))
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSchedulerDailySummary(t *testing.T) {
	f := newFixture(t)
	seedData(t, f)
	n := &fakeNotifier{}
	s := newTestScheduler(t, f, SchedulerConfig{OwnerPhone: "+84912345678", SummarySchedule: "@daily"}, n)

	require.NoError(t, s.SendDailySummary())
	require.Equal(t, "+84912345678", n.to)
	require.True(t, strings.HasPrefix(n.body, "Lily Nail: 2 bills today, revenue "), n.body)
	require.True(t, strings.HasSuffix(n.body, "₫"), n.body)

	n.err = errors.New("twilio down")
	require.Error(t, s.SendDailySummary())
}
