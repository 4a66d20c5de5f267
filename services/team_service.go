package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error)
	// AssignGroup переносит команду в группу groupID; nil убирает её из группы.
	AssignGroup(ctx context.Context, teamID int, groupID *int) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
}

type CreateTeamInput struct {
	TournamentID int     `json:"tournament_id"`
	GroupID      *int    `json:"group_id,omitempty"`
	Name         string  `json:"name"`
	City         *string `json:"city,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty"`
}

// UpdateTeamInput - частичное обновление: nil оставляет поле как есть,
// пустая строка в city или logo_url очищает его.
type UpdateTeamInput struct {
	Name    *string `json:"name,omitempty"`
	City    *string `json:"city,omitempty"`
	LogoURL *string `json:"logo_url,omitempty"`
}

type teamService struct {
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
}

func NewTeamService(
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
) TeamService {
	return &teamService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
	}
}

func (s *teamService) checkGroup(ctx context.Context, tournamentID int, groupID *int) error {
	if groupID == nil {
		return nil
	}
	group, err := s.groupRepo.GetByID(ctx, nil, *groupID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if group.TournamentID != tournamentID {
		return ErrGroupNotInTournament
	}
	return nil
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if _, err := s.tournamentRepo.GetByID(ctx, nil, input.TournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.checkGroup(ctx, input.TournamentID, input.GroupID); err != nil {
		return nil, err
	}

	team := &models.Team{
		TournamentID: input.TournamentID,
		GroupID:      input.GroupID,
		Name:         name,
		City:         input.City,
		LogoURL:      input.LogoURL,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, mapRepositoryError(err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	if input.Name == nil && input.City == nil && input.LogoURL == nil {
		return nil, ErrNothingToUpdate
	}
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = name
	}
	if input.City != nil {
		team.City = optionalString(*input.City)
	}
	if input.LogoURL != nil {
		team.LogoURL = optionalString(*input.LogoURL)
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, mapRepositoryError(err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teamsToValues(teams), nil
}

func (s *teamService) AssignGroup(ctx context.Context, teamID int, groupID *int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.checkGroup(ctx, team.TournamentID, groupID); err != nil {
		return nil, err
	}
	if err := s.teamRepo.UpdateGroup(ctx, teamID, groupID); err != nil {
		return nil, mapRepositoryError(err)
	}
	team.GroupID = groupID
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	return mapRepositoryError(s.teamRepo.Delete(ctx, id))
}
