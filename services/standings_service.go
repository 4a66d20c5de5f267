package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
	"golang.org/x/sync/errgroup"
)

// StandingsService derives tables from the match record. Nothing is persisted.
type StandingsService interface {
	ComputeStandings(ctx context.Context, teamID int) (models.Aggregate, error)
	ComputeGroupStandings(ctx context.Context, groupID int) ([]models.TeamStanding, error)
	ComputeTournamentStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error)
	ComputeAllGroupStandings(ctx context.Context, tournamentID int) ([]models.GroupStandings, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	logger         *slog.Logger
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

func (s *standingsService) ComputeStandings(ctx context.Context, teamID int) (models.Aggregate, error) {
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		return models.Aggregate{}, mapRepositoryError(err)
	}
	matches, err := s.matchRepo.ListByTeam(ctx, nil, teamID)
	if err != nil {
		return models.Aggregate{}, fmt.Errorf("failed to load matches of team %d: %w", teamID, err)
	}
	return brackets.ComputeAggregate(teamID, matches), nil
}

func (s *standingsService) ComputeGroupStandings(ctx context.Context, groupID int) ([]models.TeamStanding, error) {
	group, err := s.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	var (
		teams   []*models.Team
		matches []*models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		teams, loadErr = s.teamRepo.ListByGroup(gctx, nil, groupID)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		matches, loadErr = s.matchRepo.ListByTournament(gctx, nil, group.TournamentID, repositories.MatchFilter{})
		return loadErr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load data for group %d standings: %w", groupID, err)
	}

	return brackets.BuildStandings(teams, matches), nil
}

func (s *standingsService) ComputeTournamentStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams of tournament %d: %w", tournamentID, err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, repositories.MatchFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load matches of tournament %d: %w", tournamentID, err)
	}
	return brackets.BuildStandings(teams, matches), nil
}

// ComputeAllGroupStandings returns one ranked table per group, groups in name order.
func (s *standingsService) ComputeAllGroupStandings(ctx context.Context, tournamentID int) ([]models.GroupStandings, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	groups, err := s.groupRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups of tournament %d: %w", tournamentID, err)
	}

	var (
		matches   []*models.Match
		mu        sync.Mutex
		teamsByID = make(map[int][]*models.Team, len(groups))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		matches, loadErr = s.matchRepo.ListByTournament(gctx, nil, tournamentID, repositories.MatchFilter{})
		return loadErr
	})
	for _, group := range groups {
		groupID := group.ID
		g.Go(func() error {
			teams, loadErr := s.teamRepo.ListByGroup(gctx, nil, groupID)
			if loadErr != nil {
				return fmt.Errorf("group %d: %w", groupID, loadErr)
			}
			mu.Lock()
			teamsByID[groupID] = teams
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to load group standings data",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to load group standings of tournament %d: %w", tournamentID, err)
	}

	result := make([]models.GroupStandings, 0, len(groups))
	for _, group := range groups {
		result = append(result, models.GroupStandings{
			Group:     group,
			Standings: brackets.BuildStandings(teamsByID[group.ID], matches),
		})
	}
	return result, nil
}
