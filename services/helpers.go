package services

import (
	"errors"
	"strings"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
)

// EventPublisher delivers tournament events to subscribers (the websocket hub).
type EventPublisher interface {
	PublishTournamentEvent(tournamentID int, eventType string, payload interface{})
}

func publish(p EventPublisher, tournamentID int, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	p.PublishTournamentEvent(tournamentID, eventType, payload)
}

type MatchUpdatedPayload struct {
	Match  *models.Match `json:"match"`
	Winner *int          `json:"winner_id,omitempty"`
}

// mapRepositoryError translates repository sentinels into service errors.
// Unknown errors are returned unchanged.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrGroupNotFound):
		return ErrGroupNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerJerseyTaken):
		return ErrJerseyNumberTaken
	case errors.Is(err, repositories.ErrPlayerInvalidFields):
		return ErrNegativePlayerStats
	case errors.Is(err, repositories.ErrGroupNameConflict):
		return ErrGroupNameConflict
	case errors.Is(err, repositories.ErrMatchSlotConflict):
		return ErrBracketSlotTaken
	case errors.Is(err, repositories.ErrMatchSameTeams):
		return ErrSameTeams
	case errors.Is(err, repositories.ErrTournamentInvalidDates):
		return ErrTournamentInvalidDateRange
	case errors.Is(err, repositories.ErrGroupInvalidTournament),
		errors.Is(err, repositories.ErrTeamInvalidTournament),
		errors.Is(err, repositories.ErrMatchInvalidTournament):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTeamInvalidGroup),
		errors.Is(err, repositories.ErrMatchInvalidGroup):
		return ErrGroupNotFound
	case errors.Is(err, repositories.ErrMatchInvalidTeam),
		errors.Is(err, repositories.ErrPlayerInvalidTeam):
		return ErrTeamNotFound
	}
	return err
}

// mapBracketError translates errors of the pure bracket rules.
func mapBracketError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, brackets.ErrNotKnockoutStage):
		return ErrNotKnockoutMatch
	case errors.Is(err, brackets.ErrKnockoutTeamsMissing):
		return ErrKnockoutTeamsMissing
	case errors.Is(err, brackets.ErrDrawInKnockout):
		return ErrDrawNotAllowedInKnockout
	case errors.Is(err, brackets.ErrNoWinner):
		return ErrMatchNotCompleted
	case errors.Is(err, brackets.ErrTerminalStage):
		return ErrNoAdvancementNeeded
	case errors.Is(err, brackets.ErrSlotTaken), errors.Is(err, brackets.ErrWinnerOnBothSides):
		return ErrBracketSlotTaken
	case errors.Is(err, brackets.ErrNextMatchPlayed):
		return ErrNextMatchPlayed
	case errors.Is(err, brackets.ErrNotEnoughTeams):
		return ErrInsufficientTeams
	case errors.Is(err, brackets.ErrInvalidSchedule), errors.Is(err, brackets.ErrDuplicateTeam):
		return ErrInvalidSchedule
	}
	return err
}

// optionalString trims s and returns nil for an empty result.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func matchesToValues(slice []*models.Match) []models.Match {
	result := make([]models.Match, 0, len(slice))
	for _, m := range slice {
		if m != nil {
			result = append(result, *m)
		}
	}
	return result
}

func playersToValues(slice []*models.Player) []models.Player {
	result := make([]models.Player, 0, len(slice))
	for _, p := range slice {
		if p != nil {
			result = append(result, *p)
		}
	}
	return result
}

func teamsToValues(slice []*models.Team) []models.Team {
	result := make([]models.Team, 0, len(slice))
	for _, t := range slice {
		if t != nil {
			result = append(result, *t)
		}
	}
	return result
}
