package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListTournamentMatches(ctx context.Context, tournamentID int, filter repositories.MatchFilter) ([]models.Match, error)
	// UpdateMatch переносит матч: время, поле, стадион и стадия.
	UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
	StartMatch(ctx context.Context, id int) (*models.Match, error)
	CancelMatch(ctx context.Context, id int) (*models.Match, error)
	// RecordMatchResult принимает ничью только вне стадий плей-офф.
	RecordMatchResult(ctx context.Context, id, homeScore, awayScore int) (*models.Match, error)
}

// CreateMatchInput описывает матч группового этапа, созданный вручную.
// Матчи плей-офф создаются через KnockoutService.
type CreateMatchInput struct {
	TournamentID int       `json:"tournament_id"`
	HomeTeamID   int       `json:"home_team_id"`
	AwayTeamID   int       `json:"away_team_id"`
	GroupID      *int      `json:"group_id,omitempty"`
	MatchTime    time.Time `json:"match_time"`
	Field        *string   `json:"field,omitempty"`
	Venue        *string   `json:"venue,omitempty"`
}

// UpdateMatchInput - частичное обновление расписания матча; nil оставляет поле как есть.
// Пустая строка в field или venue очищает его. Стадию нельзя менять у сыгранного
// матча и у матча сетки (есть bracket_slot или матч-источник).
type UpdateMatchInput struct {
	MatchTime *time.Time    `json:"match_time,omitempty"`
	Field     *string       `json:"field,omitempty"`
	Venue     *string       `json:"venue,omitempty"`
	Stage     *models.Stage `json:"stage,omitempty"`
}

type matchService struct {
	txManager      repositories.TxManager
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	publisher      EventPublisher
	logger         *slog.Logger
}

func NewMatchService(
	txManager repositories.TxManager,
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	publisher EventPublisher,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		txManager:      txManager,
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrSameTeams
	}
	if input.MatchTime.IsZero() {
		return nil, ErrMatchTimeRequired
	}
	if _, err := s.tournamentRepo.GetByID(ctx, nil, input.TournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	for _, teamID := range []int{input.HomeTeamID, input.AwayTeamID} {
		team, err := s.teamRepo.GetByID(ctx, nil, teamID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if team.TournamentID != input.TournamentID {
			return nil, ErrTeamNotInTournament
		}
	}
	if input.GroupID != nil {
		group, err := s.groupRepo.GetByID(ctx, nil, *input.GroupID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if group.TournamentID != input.TournamentID {
			return nil, ErrGroupNotInTournament
		}
	}

	home, away := input.HomeTeamID, input.AwayTeamID
	match := &models.Match{
		TournamentID: input.TournamentID,
		HomeTeamID:   &home,
		AwayTeamID:   &away,
		GroupID:      input.GroupID,
		MatchTime:    input.MatchTime,
		Field:        input.Field,
		Venue:        input.Venue,
		Stage:        models.StageGroup,
		Status:       models.MatchStatusScheduled,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, mapRepositoryError(err)
	}
	publish(s.publisher, match.TournamentID, brackets.MessageMatchUpdated, MatchUpdatedPayload{Match: match})
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return match, nil
}

func (s *matchService) ListTournamentMatches(ctx context.Context, tournamentID int, filter repositories.MatchFilter) ([]models.Match, error) {
	if filter.Stage != nil && !filter.Stage.IsValid() {
		return nil, ErrInvalidStage
	}
	if filter.Status != nil && !models.IsValidMatchStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown match status %q", ErrValidationFailed, *filter.Status)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of tournament %d: %w", tournamentID, err)
	}
	return matchesToValues(matches), nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	if input.MatchTime == nil && input.Field == nil && input.Venue == nil && input.Stage == nil {
		return nil, ErrNothingToUpdate
	}
	if input.MatchTime != nil && input.MatchTime.IsZero() {
		return nil, ErrMatchTimeRequired
	}
	if input.Stage != nil && !input.Stage.IsValid() {
		return nil, ErrInvalidStage
	}

	stageChanged := false
	match, err := s.transition(ctx, id, func(exec repositories.SQLExecutor, m *models.Match) error {
		if input.Stage != nil && *input.Stage != m.Stage {
			if m.BracketSlot != nil || m.HomeSourceMatchID != nil || m.AwaySourceMatchID != nil ||
				m.Status == models.MatchStatusCompleted {
				return fmt.Errorf("%w: match %d", ErrMatchStageLocked, m.ID)
			}
			m.Stage = *input.Stage
			stageChanged = true
		}
		if input.MatchTime != nil {
			m.MatchTime = *input.MatchTime
		}
		if input.Field != nil {
			m.Field = optionalString(*input.Field)
		}
		if input.Venue != nil {
			m.Venue = optionalString(*input.Venue)
		}
		return mapRepositoryError(s.matchRepo.UpdateSchedule(ctx, exec, m))
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match rescheduled",
		slog.Int("match_id", id), slog.Time("match_time", match.MatchTime), slog.String("stage", string(match.Stage)))
	publish(s.publisher, match.TournamentID, brackets.MessageMatchUpdated, MatchUpdatedPayload{Match: match})
	if stageChanged || match.Stage.IsKnockout() {
		publish(s.publisher, match.TournamentID, brackets.MessageBracketUpdated, nil)
	}
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	publish(s.publisher, match.TournamentID, brackets.MessageStandingsUpdated, nil)
	return nil
}

// transition применяет change к матчу под блокировкой турнира.
func (s *matchService) transition(ctx context.Context, id int, change func(exec repositories.SQLExecutor, m *models.Match) error) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	err = s.txManager.WithinTournament(ctx, match.TournamentID, func(exec repositories.SQLExecutor) error {
		current, err := s.matchRepo.GetByID(ctx, exec, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if err := change(exec, current); err != nil {
			return err
		}
		match = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) StartMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.transition(ctx, id, func(exec repositories.SQLExecutor, m *models.Match) error {
		if m.Status != models.MatchStatusScheduled {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidMatchTransition, m.Status, models.MatchStatusInProgress)
		}
		if m.HomeTeamID == nil || m.AwayTeamID == nil {
			return ErrKnockoutTeamsMissing
		}
		if err := s.matchRepo.UpdateStatus(ctx, exec, m.ID, models.MatchStatusInProgress); err != nil {
			return mapRepositoryError(err)
		}
		m.Status = models.MatchStatusInProgress
		return nil
	})
	if err != nil {
		return nil, err
	}
	publish(s.publisher, match.TournamentID, brackets.MessageMatchUpdated, MatchUpdatedPayload{Match: match})
	return match, nil
}

func (s *matchService) CancelMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.transition(ctx, id, func(exec repositories.SQLExecutor, m *models.Match) error {
		switch m.Status {
		case models.MatchStatusCancelled:
			return nil
		case models.MatchStatusCompleted:
			return fmt.Errorf("%w: %s -> %s", ErrInvalidMatchTransition, m.Status, models.MatchStatusCancelled)
		}
		if err := s.matchRepo.UpdateStatus(ctx, exec, m.ID, models.MatchStatusCancelled); err != nil {
			return mapRepositoryError(err)
		}
		m.Status = models.MatchStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "match cancelled", slog.Int("match_id", id), slog.Int("tournament_id", match.TournamentID))
	publish(s.publisher, match.TournamentID, brackets.MessageMatchUpdated, MatchUpdatedPayload{Match: match})
	return match, nil
}

func (s *matchService) RecordMatchResult(ctx context.Context, id, homeScore, awayScore int) (*models.Match, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrNegativeScore
	}

	var winner *int
	match, err := s.transition(ctx, id, func(exec repositories.SQLExecutor, m *models.Match) error {
		if m.Status == models.MatchStatusCancelled {
			return ErrMatchCancelled
		}
		if m.Stage.IsKnockout() {
			w, err := brackets.KnockoutWinner(m, homeScore, awayScore)
			if err != nil {
				return mapBracketError(err)
			}
			winner = &w
		}
		if err := s.matchRepo.UpdateResult(ctx, exec, m.ID, homeScore, awayScore); err != nil {
			return mapRepositoryError(err)
		}
		m.HomeScore, m.AwayScore = &homeScore, &awayScore
		m.Status = models.MatchStatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match result recorded",
		slog.Int("match_id", id), slog.Int("home_score", homeScore), slog.Int("away_score", awayScore))
	publish(s.publisher, match.TournamentID, brackets.MessageMatchUpdated, MatchUpdatedPayload{Match: match, Winner: winner})
	publish(s.publisher, match.TournamentID, brackets.MessageStandingsUpdated, nil)
	return match, nil
}
