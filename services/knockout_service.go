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
	"golang.org/x/sync/errgroup"
)

type KnockoutService interface {
	RecordKnockoutResult(ctx context.Context, matchID, homeScore, awayScore int) (*int, error)
	// AdvanceWinner returns ErrNoAdvancementNeeded for a final; the tournament is then marked done.
	AdvanceWinner(ctx context.Context, matchID int) (*models.Match, error)
	RecordAndAdvance(ctx context.Context, matchID, homeScore, awayScore int) (*AdvanceResult, error)
	GetBracket(ctx context.Context, tournamentID int) (*models.BracketView, error)
	ClearKnockoutMatches(ctx context.Context, tournamentID int) (int64, error)
	QualifyTeams(ctx context.Context, tournamentID int, input QualificationInput) ([]models.Team, error)
	CreateKnockoutMatch(ctx context.Context, tournamentID int, input CreateKnockoutMatchInput) (*models.Match, error)
}

type AdvanceResult struct {
	WinnerID  int           `json:"winner_id"`
	Advanced  bool          `json:"advanced"`
	NextMatch *models.Match `json:"next_match,omitempty"`
}

type QualificationInput struct {
	// TopPerGroup teams of every group qualify unless Groups overrides the count.
	TopPerGroup int         `json:"top_per_group"`
	Groups      map[int]int `json:"groups,omitempty"`
}

type CreateKnockoutMatchInput struct {
	HomeTeamID  *int         `json:"home_team_id"`
	AwayTeamID  *int         `json:"away_team_id"`
	Stage       models.Stage `json:"stage"`
	BracketSlot *int         `json:"bracket_slot,omitempty"`
	MatchTime   time.Time    `json:"match_time"`
	Field       *string      `json:"field,omitempty"`
	Venue       *string      `json:"venue,omitempty"`
}

type knockoutService struct {
	txManager      repositories.TxManager
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	publisher      EventPublisher
	logger         *slog.Logger
	nextRoundDelay time.Duration
	now            func() time.Time
}

func NewKnockoutService(
	txManager repositories.TxManager,
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	nextRoundDelay time.Duration,
	publisher EventPublisher,
	logger *slog.Logger,
) KnockoutService {
	return &knockoutService{
		txManager:      txManager,
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		publisher:      publisher,
		logger:         logger,
		nextRoundDelay: nextRoundDelay,
		now:            time.Now,
	}
}

func (s *knockoutService) RecordKnockoutResult(ctx context.Context, matchID, homeScore, awayScore int) (*int, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrNegativeScore
	}
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	var winner int
	err = s.txManager.WithinTournament(ctx, match.TournamentID, func(exec repositories.SQLExecutor) error {
		var recErr error
		match, winner, recErr = s.record(ctx, exec, matchID, homeScore, awayScore)
		return recErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "knockout result recorded",
		slog.Int("match_id", matchID), slog.Int("home_score", homeScore), slog.Int("away_score", awayScore), slog.Int("winner_id", winner))
	publish(s.publisher, match.TournamentID, brackets.MessageMatchUpdated, MatchUpdatedPayload{Match: match, Winner: &winner})
	return &winner, nil
}

// record re-reads the match under the tournament lock. A draw is rejected before anything is written.
func (s *knockoutService) record(ctx context.Context, exec repositories.SQLExecutor, matchID, homeScore, awayScore int) (*models.Match, int, error) {
	match, err := s.matchRepo.GetByID(ctx, exec, matchID)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}
	if match.Status == models.MatchStatusCancelled {
		return nil, 0, ErrMatchCancelled
	}
	winner, err := brackets.KnockoutWinner(match, homeScore, awayScore)
	if err != nil {
		return nil, 0, mapBracketError(err)
	}
	if err := s.matchRepo.UpdateResult(ctx, exec, matchID, homeScore, awayScore); err != nil {
		return nil, 0, mapRepositoryError(err)
	}
	match.HomeScore, match.AwayScore = &homeScore, &awayScore
	match.Status = models.MatchStatusCompleted
	return match, winner, nil
}

func (s *knockoutService) AdvanceWinner(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	var next *models.Match
	err = s.txManager.WithinTournament(ctx, match.TournamentID, func(exec repositories.SQLExecutor) error {
		var advErr error
		next, _, advErr = s.advance(ctx, exec, matchID)
		return advErr
	})
	if err != nil {
		return nil, err
	}
	if next == nil {
		s.logger.InfoContext(ctx, "final decided, tournament bracket done", slog.Int("tournament_id", match.TournamentID))
		publish(s.publisher, match.TournamentID, brackets.MessageBracketUpdated, nil)
		return nil, ErrNoAdvancementNeeded
	}

	s.logger.InfoContext(ctx, "winner advanced",
		slog.Int("match_id", matchID), slog.Int("next_match_id", next.ID), slog.String("next_stage", string(next.Stage)))
	publish(s.publisher, match.TournamentID, brackets.MessageBracketUpdated, next)
	return next, nil
}

// advance places the winner of matchID into the next round. For a final it marks
// the tournament done and returns a nil match; the caller turns that into
// ErrNoAdvancementNeeded after the transaction commits.
func (s *knockoutService) advance(ctx context.Context, exec repositories.SQLExecutor, matchID int) (*models.Match, int, error) {
	match, err := s.matchRepo.GetByID(ctx, exec, matchID)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}
	winner, err := brackets.Winner(match)
	if err != nil {
		return nil, 0, mapBracketError(err)
	}

	if match.Stage == models.StageFinal {
		if err := s.tournamentRepo.UpdateCurrentStage(ctx, exec, match.TournamentID, models.BracketDone); err != nil {
			return nil, 0, mapRepositoryError(err)
		}
		return nil, winner, nil
	}

	stage := match.Stage
	stageMatches, err := s.matchRepo.ListByTournament(ctx, exec, match.TournamentID, repositories.MatchFilter{Stage: &stage})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load %s matches: %w", stage, err)
	}
	position, err := brackets.PositionInStage(match, stageMatches)
	if err != nil {
		return nil, 0, err
	}
	nextStage, slot, err := brackets.NextSlot(match.Stage, position)
	if err != nil {
		return nil, 0, mapBracketError(err)
	}

	target, err := s.matchRepo.FindBySlot(ctx, exec, match.TournamentID, nextStage, slot)
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		target = brackets.NewNextRoundMatch(match, nextStage, slot, winner, s.now().Add(s.nextRoundDelay))
		if err := s.matchRepo.Create(ctx, exec, target); err != nil {
			return nil, 0, mapRepositoryError(err)
		}
	case err != nil:
		return nil, 0, fmt.Errorf("failed to find %s slot %d: %w", nextStage, slot, err)
	default:
		_, changed, placeErr := brackets.PlaceWinner(target, match.ID, winner)
		if placeErr != nil {
			return nil, 0, mapBracketError(placeErr)
		}
		if changed {
			if err := s.matchRepo.UpdateSides(ctx, exec, target); err != nil {
				return nil, 0, mapRepositoryError(err)
			}
		}
	}

	if err := s.bumpStage(ctx, exec, match.TournamentID, models.BracketStage(nextStage)); err != nil {
		return nil, 0, err
	}
	return target, winner, nil
}

// bumpStage moves current_stage forward only.
func (s *knockoutService) bumpStage(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, stage models.BracketStage) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, exec, tournamentID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !tournament.CurrentStage.Before(stage) {
		return nil
	}
	return mapRepositoryError(s.tournamentRepo.UpdateCurrentStage(ctx, exec, tournamentID, stage))
}

func (s *knockoutService) RecordAndAdvance(ctx context.Context, matchID, homeScore, awayScore int) (*AdvanceResult, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrNegativeScore
	}
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	result := &AdvanceResult{}
	err = s.txManager.WithinTournament(ctx, match.TournamentID, func(exec repositories.SQLExecutor) error {
		recorded, winner, err := s.record(ctx, exec, matchID, homeScore, awayScore)
		if err != nil {
			return err
		}
		match = recorded
		result.WinnerID = winner
		next, _, err := s.advance(ctx, exec, matchID)
		if err != nil {
			return err
		}
		result.NextMatch = next
		result.Advanced = next != nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(s.publisher, match.TournamentID, brackets.MessageMatchUpdated, MatchUpdatedPayload{Match: match, Winner: &result.WinnerID})
	publish(s.publisher, match.TournamentID, brackets.MessageBracketUpdated, result.NextMatch)
	return result, nil
}

func (s *knockoutService) GetBracket(ctx context.Context, tournamentID int) (*models.BracketView, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	var (
		matches []*models.Match
		teams   []*models.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		matches, loadErr = s.matchRepo.ListByTournament(gctx, nil, tournamentID, repositories.MatchFilter{})
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		teams, loadErr = s.teamRepo.ListByTournament(gctx, nil, tournamentID)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load bracket of tournament %d: %w", tournamentID, err)
	}

	view := brackets.Partition(tournamentID, tournament.CurrentStage, matches)
	view.Teams = make(map[int]string, len(teams))
	for _, t := range teams {
		view.Teams[t.ID] = t.Name
	}
	return &view, nil
}

func (s *knockoutService) ClearKnockoutMatches(ctx context.Context, tournamentID int) (int64, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return 0, mapRepositoryError(err)
	}

	var deleted int64
	err := s.txManager.WithinTournament(ctx, tournamentID, func(exec repositories.SQLExecutor) error {
		var delErr error
		if deleted, delErr = s.matchRepo.DeleteKnockout(ctx, exec, tournamentID); delErr != nil {
			return delErr
		}
		return mapRepositoryError(s.tournamentRepo.UpdateCurrentStage(ctx, exec, tournamentID, models.BracketGroupStage))
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "knockout matches cleared", slog.Int("tournament_id", tournamentID), slog.Int64("deleted", deleted))
	publish(s.publisher, tournamentID, brackets.MessageBracketUpdated, nil)
	return deleted, nil
}

// QualifyTeams flags the top teams of each group's current table as qualified
// and clears the flag on every other team of the tournament.
func (s *knockoutService) QualifyTeams(ctx context.Context, tournamentID int, input QualificationInput) ([]models.Team, error) {
	if input.TopPerGroup < 1 {
		return nil, ErrInvalidQualification
	}
	for _, n := range input.Groups {
		if n < 0 {
			return nil, ErrInvalidQualification
		}
	}
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}

	qualified := make([]models.Team, 0)
	err := s.txManager.WithinTournament(ctx, tournamentID, func(exec repositories.SQLExecutor) error {
		groups, err := s.groupRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		matches, err := s.matchRepo.ListByTournament(ctx, exec, tournamentID, repositories.MatchFilter{})
		if err != nil {
			return err
		}

		ids := make([]int, 0)
		for _, group := range groups {
			n := input.TopPerGroup
			if override, ok := input.Groups[group.ID]; ok {
				n = override
			}
			teams, err := s.teamRepo.ListByGroup(ctx, exec, group.ID)
			if err != nil {
				return err
			}
			table := brackets.BuildStandings(teams, matches)
			for i := 0; i < n && i < len(table); i++ {
				team := table[i].Team
				team.QualifiedForKnockout = true
				qualified = append(qualified, team)
				ids = append(ids, team.ID)
			}
		}
		return s.teamRepo.SetQualified(ctx, exec, tournamentID, ids)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "teams qualified for knockout", slog.Int("tournament_id", tournamentID), slog.Int("qualified", len(qualified)))
	publish(s.publisher, tournamentID, brackets.MessageStandingsUpdated, qualified)
	return qualified, nil
}

// CreateKnockoutMatch adds an organiser-seeded knockout match. Without an explicit
// bracket slot the match takes the next slot of its stage.
func (s *knockoutService) CreateKnockoutMatch(ctx context.Context, tournamentID int, input CreateKnockoutMatchInput) (*models.Match, error) {
	if !input.Stage.IsKnockout() {
		return nil, ErrInvalidStage
	}
	if input.BracketSlot != nil && *input.BracketSlot < 1 {
		return nil, fmt.Errorf("%w: bracket slot must be positive", ErrValidationFailed)
	}
	if input.HomeTeamID != nil && input.AwayTeamID != nil && *input.HomeTeamID == *input.AwayTeamID {
		return nil, ErrSameTeams
	}
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	for _, teamID := range []*int{input.HomeTeamID, input.AwayTeamID} {
		if teamID == nil {
			continue
		}
		team, err := s.teamRepo.GetByID(ctx, nil, *teamID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if team.TournamentID != tournamentID {
			return nil, ErrTeamNotInTournament
		}
	}

	match := &models.Match{
		TournamentID: tournamentID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		MatchTime:    input.MatchTime,
		Field:        input.Field,
		Venue:        input.Venue,
		Stage:        input.Stage,
		Status:       models.MatchStatusScheduled,
		BracketSlot:  input.BracketSlot,
	}
	if match.MatchTime.IsZero() {
		match.MatchTime = s.now().Add(s.nextRoundDelay)
	}

	err := s.txManager.WithinTournament(ctx, tournamentID, func(exec repositories.SQLExecutor) error {
		if match.BracketSlot == nil {
			stage := input.Stage
			existing, err := s.matchRepo.ListByTournament(ctx, exec, tournamentID, repositories.MatchFilter{Stage: &stage})
			if err != nil {
				return err
			}
			// Every existing match sits at or below max(count, highest slot).
			last := len(existing)
			for _, m := range existing {
				if m.BracketSlot != nil && *m.BracketSlot > last {
					last = *m.BracketSlot
				}
			}
			slot := last + 1
			match.BracketSlot = &slot
		}
		if err := s.matchRepo.Create(ctx, exec, match); err != nil {
			return mapRepositoryError(err)
		}
		return s.bumpStage(ctx, exec, tournamentID, models.BracketStage(input.Stage))
	})
	if err != nil {
		return nil, err
	}

	publish(s.publisher, tournamentID, brackets.MessageBracketUpdated, match)
	return match, nil
}
