package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
)

const dateOfBirthLayout = "2006-01-02"

type PlayerService interface {
	AddPlayer(ctx context.Context, teamID int, input CreatePlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	ListTeamPlayers(ctx context.Context, teamID int) ([]models.Player, error)
	UpdatePlayerStats(ctx context.Context, id int, stats models.PlayerStats) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

type CreatePlayerInput struct {
	FirstName    string                 `json:"first_name"`
	LastName     string                 `json:"last_name"`
	JerseyNumber *int                   `json:"jersey_number,omitempty"`
	Position     *models.PlayerPosition `json:"position,omitempty"`
	Nationality  *string                `json:"nationality,omitempty"`
	DateOfBirth  *string                `json:"date_of_birth,omitempty" example:"2004-03-17"`
}

type playerService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewPlayerService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (in CreatePlayerInput) toPlayer(teamID int) (*models.Player, error) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, ErrPlayerNameRequired
	}
	if in.JerseyNumber != nil && (*in.JerseyNumber < 1 || *in.JerseyNumber > 99) {
		return nil, ErrInvalidJerseyNumber
	}
	if in.Position != nil && !models.IsValidPlayerPosition(*in.Position) {
		return nil, ErrInvalidPlayerPosition
	}

	player := &models.Player{
		TeamID:       teamID,
		FirstName:    first,
		LastName:     last,
		JerseyNumber: in.JerseyNumber,
		Position:     in.Position,
	}
	if in.Nationality != nil {
		player.Nationality = optionalString(*in.Nationality)
	}
	if in.DateOfBirth != nil && strings.TrimSpace(*in.DateOfBirth) != "" {
		dob, err := time.Parse(dateOfBirthLayout, strings.TrimSpace(*in.DateOfBirth))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateOfBirth, *in.DateOfBirth)
		}
		player.DateOfBirth = &dob
	}
	return player, nil
}

func (s *playerService) AddPlayer(ctx context.Context, teamID int, input CreatePlayerInput) (*models.Player, error) {
	player, err := input.toPlayer(teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "player added",
		slog.Int("team_id", teamID), slog.Int("player_id", player.ID), slog.String("name", player.FullName()))
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return player, nil
}

func (s *playerService) ListTeamPlayers(ctx context.Context, teamID int) ([]models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		return nil, mapRepositoryError(err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", teamID, err)
	}
	return playersToValues(players), nil
}

// UpdatePlayerStats заменяет накопленную статистику целиком.
func (s *playerService) UpdatePlayerStats(ctx context.Context, id int, stats models.PlayerStats) (*models.Player, error) {
	for _, v := range []int{
		stats.GoalsScored, stats.Assists, stats.YellowCards, stats.RedCards, stats.MinutesPlayed, stats.MatchesPlayed,
	} {
		if v < 0 {
			return nil, ErrNegativePlayerStats
		}
	}
	if err := s.playerRepo.UpdateStats(ctx, id, stats); err != nil {
		return nil, mapRepositoryError(err)
	}
	return s.GetPlayer(ctx, id)
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	return mapRepositoryError(s.playerRepo.Delete(ctx, id))
}
