package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
	"github.com/Dosada05/soccer-cup/storage"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"
)

// TournamentSnapshot is the JSON document written by a backup.
type TournamentSnapshot struct {
	Tournament models.Tournament       `json:"tournament"`
	Groups     []models.Group          `json:"groups"`
	Teams      []models.Team           `json:"teams"`
	Matches    []models.Match          `json:"matches"`
	Standings  []models.GroupStandings `json:"standings"`
	ExportedAt time.Time               `json:"exported_at"`
}

type BackupResult struct {
	TournamentID int    `json:"tournament_id"`
	Key          string `json:"key"`
	URL          string `json:"url,omitempty"`
	Size         int    `json:"size"`
}

type BackupService interface {
	BackupTournament(ctx context.Context, tournamentID int) (*BackupResult, error)
	// BackupActiveTournaments backs up every active tournament and returns how many succeeded.
	BackupActiveTournaments(ctx context.Context) (int, error)
}

type backupService struct {
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	playerRepo     repositories.PlayerRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
	now            func() time.Time
}

// NewBackupService accepts a nil uploader; every backup then fails with ErrBackupDisabled.
func NewBackupService(
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) BackupService {
	return &backupService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		uploader:       uploader,
		logger:         logger,
		now:            time.Now,
	}
}

func backupKey(t *models.Tournament, at time.Time) string {
	name := slug.Make(t.Name)
	if name == "" {
		name = "tournament"
	}
	return fmt.Sprintf("backups/%d-%s/%s-%s.json", t.ID, name, at.UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
}

func (s *backupService) snapshot(ctx context.Context, tournamentID int) (*TournamentSnapshot, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	var (
		groups  []models.Group
		teams   []*models.Team
		matches []*models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		groups, loadErr = s.groupRepo.ListByTournament(gctx, nil, tournamentID)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		teams, loadErr = s.teamRepo.ListByTournament(gctx, nil, tournamentID)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		matches, loadErr = s.matchRepo.ListByTournament(gctx, nil, tournamentID, repositories.MatchFilter{})
		return loadErr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load tournament %d for backup: %w", tournamentID, err)
	}

	standings := make([]models.GroupStandings, 0, len(groups))
	for _, group := range groups {
		members := make([]*models.Team, 0)
		for _, t := range teams {
			if t.GroupID != nil && *t.GroupID == group.ID {
				members = append(members, t)
			}
		}
		standings = append(standings, models.GroupStandings{
			Group:     group,
			Standings: brackets.BuildStandings(members, matches),
		})
	}

	rosters, rctx := errgroup.WithContext(ctx)
	for _, team := range teams {
		team := team
		rosters.Go(func() error {
			players, loadErr := s.playerRepo.ListByTeam(rctx, team.ID)
			if loadErr != nil {
				return loadErr
			}
			team.Players = playersToValues(players)
			return nil
		})
	}
	if err := rosters.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load rosters of tournament %d for backup: %w", tournamentID, err)
	}

	return &TournamentSnapshot{
		Tournament: *tournament,
		Groups:     groups,
		Teams:      teamsToValues(teams),
		Matches:    matchesToValues(matches),
		Standings:  standings,
		ExportedAt: s.now().UTC(),
	}, nil
}

func (s *backupService) BackupTournament(ctx context.Context, tournamentID int) (*BackupResult, error) {
	if s.uploader == nil {
		return nil, ErrBackupDisabled
	}
	snap, err := s.snapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot of tournament %d: %w", tournamentID, err)
	}

	key := backupKey(&snap.Tournament, snap.ExportedAt)
	uploaded, err := s.uploader.Upload(ctx, key, storage.ContentTypeJSON, bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "backup upload failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament backed up",
		slog.Int("tournament_id", tournamentID), slog.String("key", uploaded.Key), slog.Int("bytes", len(body)))
	return &BackupResult{
		TournamentID: tournamentID,
		Key:          uploaded.Key,
		URL:          uploaded.Location,
		Size:         len(body),
	}, nil
}

func (s *backupService) BackupActiveTournaments(ctx context.Context) (int, error) {
	if s.uploader == nil {
		return 0, ErrBackupDisabled
	}
	active := models.StatusActive
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{Status: &active})
	if err != nil {
		return 0, fmt.Errorf("failed to list active tournaments: %w", err)
	}

	done := 0
	for _, t := range tournaments {
		if _, err := s.BackupTournament(ctx, t.ID); err != nil {
			s.logger.WarnContext(ctx, "skipping tournament backup", slog.Int("tournament_id", t.ID), slog.Any("error", err))
			continue
		}
		done++
	}
	return done, nil
}
