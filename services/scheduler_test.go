package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingBackups struct {
	calls int
	err   error
}

func (c *countingBackups) BackupTournament(ctx context.Context, tournamentID int) (*BackupResult, error) {
	return nil, errors.New("not used")
}

func (c *countingBackups) BackupActiveTournaments(ctx context.Context) (int, error) {
	c.calls++
	return 2, c.err
}

func TestBackupScheduler_Run(t *testing.T) {
	backups := &countingBackups{}
	s, err := NewBackupScheduler(backups, time.Hour, discardLogger())
	if err != nil {
		t.Fatalf("NewBackupScheduler: %v", err)
	}
	defer s.Shutdown()

	s.run(context.Background())
	backups.err = errors.New("bucket unavailable")
	s.run(context.Background())

	if backups.calls != 2 {
		t.Errorf("Expected 2 backup runs, got %d", backups.calls)
	}
}

func TestBackupScheduler_StartShutdown(t *testing.T) {
	s, err := NewBackupScheduler(&countingBackups{}, time.Hour, discardLogger())
	if err != nil {
		t.Fatalf("NewBackupScheduler: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
