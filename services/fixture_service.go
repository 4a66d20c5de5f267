package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
)

// ScheduleDefaults fill the zero fields of a requested schedule.
type ScheduleDefaults struct {
	Fields           int
	SlotDuration     time.Duration
	MatchesPerDay    int
	FirstKickoffHour int
}

type GenerationResult struct {
	TournamentID int            `json:"tournament_id"`
	GroupID      int            `json:"group_id"`
	Created      int            `json:"created_count"`
	Matches      []models.Match `json:"matches"`
}

type SkippedGroup struct {
	GroupID int    `json:"group_id"`
	Name    string `json:"name"`
	Reason  string `json:"reason"`
}

type AllGroupsGenerationResult struct {
	TournamentID int                `json:"tournament_id"`
	Generated    []GenerationResult `json:"generated"`
	Skipped      []SkippedGroup     `json:"skipped"`
	TotalCreated int                `json:"total_created"`
}

type FixtureService interface {
	GenerateGroupMatches(ctx context.Context, tournamentID, groupID int, cfg brackets.ScheduleConfig) (*GenerationResult, error)
	GenerateAllGroupMatches(ctx context.Context, tournamentID int, cfg brackets.ScheduleConfig) (*AllGroupsGenerationResult, error)
}

type fixtureService struct {
	txManager      repositories.TxManager
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	generator      brackets.FixtureGenerator
	defaults       ScheduleDefaults
	publisher      EventPublisher
	logger         *slog.Logger
}

func NewFixtureService(
	txManager repositories.TxManager,
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	defaults ScheduleDefaults,
	publisher EventPublisher,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		txManager:      txManager,
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		generator:      brackets.NewRoundRobinGenerator(),
		defaults:       defaults,
		publisher:      publisher,
		logger:         logger,
	}
}

// resolveSchedule fills zero values from defaults. Without an explicit start the
// first kickoff is the tournament's start date at the default hour.
func (s *fixtureService) resolveSchedule(t *models.Tournament, cfg brackets.ScheduleConfig) (brackets.ScheduleConfig, error) {
	if cfg.Fields == 0 {
		cfg.Fields = s.defaults.Fields
	}
	if cfg.SlotDuration == 0 {
		cfg.SlotDuration = s.defaults.SlotDuration
	}
	if cfg.MatchesPerDay == 0 {
		cfg.MatchesPerDay = s.defaults.MatchesPerDay
	}
	if cfg.StartAt.IsZero() {
		d := t.StartDate
		cfg.StartAt = time.Date(d.Year(), d.Month(), d.Day(), s.defaults.FirstKickoffHour, 0, 0, 0, d.Location())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return cfg, nil
}

func (s *fixtureService) GenerateGroupMatches(ctx context.Context, tournamentID, groupID int, cfg brackets.ScheduleConfig) (*GenerationResult, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	group, err := s.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if group.TournamentID != tournamentID {
		return nil, ErrGroupNotInTournament
	}
	schedule, err := s.resolveSchedule(tournament, cfg)
	if err != nil {
		return nil, err
	}

	var result *GenerationResult
	err = s.txManager.WithinTournament(ctx, tournamentID, func(exec repositories.SQLExecutor) error {
		var genErr error
		result, _, genErr = s.generateForGroup(ctx, exec, tournamentID, group, schedule, 0)
		return genErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "group matches generated",
		slog.Int("tournament_id", tournamentID), slog.Int("group_id", groupID), slog.Int("created", result.Created))
	publish(s.publisher, tournamentID, brackets.MessageFixturesCreated, result)
	return result, nil
}

// generateForGroup runs inside the tournament lock. It returns the calendar cursor
// after the group's fixtures.
func (s *fixtureService) generateForGroup(
	ctx context.Context,
	exec repositories.SQLExecutor,
	tournamentID int,
	group *models.Group,
	schedule brackets.ScheduleConfig,
	cursor int,
) (*GenerationResult, int, error) {
	existing, err := s.matchRepo.CountGroupStage(ctx, exec, group.ID)
	if err != nil {
		return nil, cursor, err
	}
	if existing > 0 {
		return nil, cursor, fmt.Errorf("%w (group %s has %d matches)", ErrAlreadyGenerated, group.Name, existing)
	}

	teams, err := s.teamRepo.ListByGroup(ctx, exec, group.ID)
	if err != nil {
		return nil, cursor, fmt.Errorf("failed to load teams of group %d: %w", group.ID, err)
	}
	if len(teams) < 2 {
		return nil, cursor, fmt.Errorf("%w (group %s has %d)", ErrInsufficientTeams, group.Name, len(teams))
	}

	gid := group.ID
	matches, err := s.generator.GenerateFixtures(ctx, brackets.GenerateFixturesParams{
		TournamentID: tournamentID,
		GroupID:      &gid,
		Teams:        teams,
		Schedule:     schedule,
		Cursor:       cursor,
	})
	if err != nil {
		return nil, cursor, mapBracketError(err)
	}

	if err := s.matchRepo.CreateBatch(ctx, exec, matches); err != nil {
		return nil, cursor, mapRepositoryError(err)
	}

	return &GenerationResult{
		TournamentID: tournamentID,
		GroupID:      group.ID,
		Created:      len(matches),
		Matches:      matchesToValues(matches),
	}, cursor + len(matches), nil
}

// GenerateAllGroupMatches generates every group that can be generated, in group
// name order, on one shared calendar. Groups with existing fixtures or fewer than
// two teams are skipped and reported.
func (s *fixtureService) GenerateAllGroupMatches(ctx context.Context, tournamentID int, cfg brackets.ScheduleConfig) (*AllGroupsGenerationResult, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	schedule, err := s.resolveSchedule(tournament, cfg)
	if err != nil {
		return nil, err
	}

	summary := &AllGroupsGenerationResult{
		TournamentID: tournamentID,
		Generated:    []GenerationResult{},
		Skipped:      []SkippedGroup{},
	}
	err = s.txManager.WithinTournament(ctx, tournamentID, func(exec repositories.SQLExecutor) error {
		groups, err := s.groupRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load groups of tournament %d: %w", tournamentID, err)
		}

		cursor := 0
		for i := range groups {
			group := &groups[i]
			res, next, genErr := s.generateForGroup(ctx, exec, tournamentID, group, schedule, cursor)
			switch {
			case genErr == nil:
				summary.Generated = append(summary.Generated, *res)
				summary.TotalCreated += res.Created
				cursor = next
			case errors.Is(genErr, ErrAlreadyGenerated), errors.Is(genErr, ErrInsufficientTeams):
				summary.Skipped = append(summary.Skipped, SkippedGroup{GroupID: group.ID, Name: group.Name, Reason: genErr.Error()})
			default:
				return genErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "all group matches generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("created", summary.TotalCreated),
		slog.Int("skipped_groups", len(summary.Skipped)))
	if summary.TotalCreated > 0 {
		publish(s.publisher, tournamentID, brackets.MessageFixturesCreated, summary)
	}
	return summary, nil
}
