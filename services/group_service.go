package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
)

const maxGroupNameLength = 10

type GroupService interface {
	CreateGroup(ctx context.Context, tournamentID int, name string) (*models.Group, error)
	GetGroupByID(ctx context.Context, id int) (*models.Group, error)
	ListGroups(ctx context.Context, tournamentID int) ([]models.Group, error)
	RenameGroup(ctx context.Context, tournamentID, groupID int, name string) (*models.Group, error)
	// DeleteGroup leaves the group's teams without a group.
	DeleteGroup(ctx context.Context, tournamentID, groupID int) error
}

type groupService struct {
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
}

func NewGroupService(
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
) GroupService {
	return &groupService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
	}
}

func normalizeGroupName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrGroupNameRequired
	}
	if len([]rune(name)) > maxGroupNameLength {
		return "", fmt.Errorf("%w: group name is longer than %d characters", ErrValidationFailed, maxGroupNameLength)
	}
	return name, nil
}

func (s *groupService) CreateGroup(ctx context.Context, tournamentID int, name string) (*models.Group, error) {
	name, err := normalizeGroupName(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}

	group := &models.Group{TournamentID: tournamentID, Name: name}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, mapRepositoryError(err)
	}
	return group, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, id int) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	teams, err := s.teamRepo.ListByGroup(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams of group %d: %w", id, err)
	}
	group.Teams = teamsToValues(teams)
	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context, tournamentID int) ([]models.Group, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	groups, err := s.groupRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) groupOf(ctx context.Context, tournamentID, groupID int) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if group.TournamentID != tournamentID {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func (s *groupService) RenameGroup(ctx context.Context, tournamentID, groupID int, name string) (*models.Group, error) {
	name, err := normalizeGroupName(name)
	if err != nil {
		return nil, err
	}
	group, err := s.groupOf(ctx, tournamentID, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.Rename(ctx, groupID, name); err != nil {
		return nil, mapRepositoryError(err)
	}
	group.Name = name
	return group, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, tournamentID, groupID int) error {
	if _, err := s.groupOf(ctx, tournamentID, groupID); err != nil {
		return err
	}
	return mapRepositoryError(s.groupRepo.Delete(ctx, groupID))
}
