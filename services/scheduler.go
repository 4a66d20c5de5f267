package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// BackupScheduler periodically backs up active tournaments.
type BackupScheduler struct {
	sched    gocron.Scheduler
	backups  BackupService
	interval time.Duration
	logger   *slog.Logger
}

func NewBackupScheduler(backups BackupService, interval time.Duration, logger *slog.Logger) (*BackupScheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &BackupScheduler{
		sched:    sched,
		backups:  backups,
		interval: interval,
		logger:   logger,
	}, nil
}

// Start registers the backup job and starts the scheduler. Runs of one job never overlap.
func (b *BackupScheduler) Start(ctx context.Context) error {
	_, err := b.sched.NewJob(
		gocron.DurationJob(b.interval),
		gocron.NewTask(func() {
			b.run(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("tournament-backup"),
	)
	if err != nil {
		return fmt.Errorf("failed to register backup job: %w", err)
	}
	b.sched.Start()
	b.logger.Info("backup scheduler started", slog.Duration("interval", b.interval))
	return nil
}

func (b *BackupScheduler) run(ctx context.Context) {
	n, err := b.backups.BackupActiveTournaments(ctx)
	if err != nil {
		b.logger.Error("scheduled backup failed", slog.Any("error", err))
		return
	}
	b.logger.Info("scheduled backup finished", slog.Int("tournaments", n))
}

func (b *BackupScheduler) Shutdown() error {
	return b.sched.Shutdown()
}
