package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"nailspa-backend/store"
	"nailspa-backend/utils"
)

type SchedulerConfig struct {
	BackupDir       string
	BackupSchedule  string
	SummarySchedule string
	OwnerPhone      string
}

// Scheduler runs the periodic backup snapshot and the owner's daily summary.
type Scheduler struct {
	cron      *cron.Cron
	cfg       SchedulerConfig
	backup    *BackupService
	bills     *store.BillStore
	settings  *store.SettingsStore
	analytics *Analytics
	notifier  Notifier
	log       *zap.Logger
	now       func() time.Time
}

// NewScheduler registers the jobs enabled by cfg: snapshots need BackupDir,
// summaries need a notifier and OwnerPhone.
func NewScheduler(cfg SchedulerConfig, backup *BackupService, bills *store.BillStore, settings *store.SettingsStore,
	analytics *Analytics, notifier Notifier, loc *time.Location, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		cfg:       cfg,
		backup:    backup,
		bills:     bills,
		settings:  settings,
		analytics: analytics,
		notifier:  notifier,
		log:       log.Named("scheduler"),
		now:       time.Now,
	}

	if cfg.BackupDir != "" {
		if _, err := s.cron.AddFunc(cfg.BackupSchedule, func() { _, _ = s.RunBackup() }); err != nil {
			return nil, fmt.Errorf("backup schedule %q: %w", cfg.BackupSchedule, err)
		}
	}
	if notifier != nil && cfg.OwnerPhone != "" {
		if _, err := s.cron.AddFunc(cfg.SummarySchedule, func() { _ = s.SendDailySummary() }); err != nil {
			return nil, fmt.Errorf("summary schedule %q: %w", cfg.SummarySchedule, err)
		}
	}
	return s, nil
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", s.Jobs()))
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) RunBackup() (string, error) {
	path, err := s.backup.Snapshot(s.cfg.BackupDir)
	if err != nil {
		s.log.Error("backup snapshot failed", zap.Error(err))
		return "", err
	}
	s.log.Info("backup snapshot written", zap.String("path", path))
	return path, nil
}

// SummaryMessage describes today's bills for the owner.
func (s *Scheduler) SummaryMessage() string {
	sum := s.analytics.Summary(s.bills.List(), s.now())
	return fmt.Sprintf("%s: %d bills today, revenue %s",
		s.settings.Get().ShopName, sum.TodayBills, utils.FormatCurrency(sum.Today))
}

func (s *Scheduler) SendDailySummary() error {
	if s.notifier == nil || s.cfg.OwnerPhone == "" {
		return nil
	}
	channel, err := s.notifier.Send(s.cfg.OwnerPhone, s.SummaryMessage())
	if err != nil {
		s.log.Error("daily summary failed", zap.String("channel", channel), zap.Error(err))
		return err
	}
	s.log.Info("daily summary sent", zap.String("channel", channel))
	return nil
}
