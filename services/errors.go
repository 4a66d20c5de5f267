package services

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок. Конкретные ошибки ниже оборачивают один из них,
// поэтому errors.Is срабатывает и на конкретную ошибку, и на её вид.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("requested resource not found")
	ErrConflict         = errors.New("conflict")
	ErrDomainRule       = errors.New("domain rule violated")
)

func kindOf(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

var (
	ErrTournamentNotFound = kindOf(ErrNotFound, "tournament not found")
	ErrGroupNotFound      = kindOf(ErrNotFound, "group not found")
	ErrTeamNotFound       = kindOf(ErrNotFound, "team not found")
	ErrMatchNotFound      = kindOf(ErrNotFound, "match not found")
	ErrPlayerNotFound     = kindOf(ErrNotFound, "player not found")

	ErrTournamentNameRequired     = kindOf(ErrValidationFailed, "tournament name is required")
	ErrTournamentInvalidDateRange = kindOf(ErrValidationFailed, "tournament start date must not be after end date")
	ErrTournamentInvalidCapacity  = kindOf(ErrValidationFailed, "tournament max teams must be positive")
	ErrTournamentInvalidStatus    = kindOf(ErrValidationFailed, "invalid tournament status")
	ErrGroupNameRequired          = kindOf(ErrValidationFailed, "group name is required")
	ErrTeamNameRequired           = kindOf(ErrValidationFailed, "team name is required")
	ErrNegativeScore              = kindOf(ErrValidationFailed, "scores must be non-negative")
	ErrNotKnockoutMatch           = kindOf(ErrValidationFailed, "match is not a knockout match")
	ErrKnockoutTeamsMissing       = kindOf(ErrValidationFailed, "knockout match has an open side")
	ErrSameTeams                  = kindOf(ErrValidationFailed, "home and away team must differ")
	ErrTeamNotInTournament        = kindOf(ErrValidationFailed, "team does not belong to this tournament")
	ErrGroupNotInTournament       = kindOf(ErrValidationFailed, "group does not belong to this tournament")
	ErrInvalidStage               = kindOf(ErrValidationFailed, "invalid stage")
	ErrInvalidSchedule            = kindOf(ErrValidationFailed, "invalid schedule configuration")
	ErrInvalidQualification       = kindOf(ErrValidationFailed, "qualification count must be positive")
	ErrNothingToUpdate            = kindOf(ErrValidationFailed, "no fields to update")
	ErrMatchTimeRequired          = kindOf(ErrValidationFailed, "match_time is required")
	ErrPlayerNameRequired         = kindOf(ErrValidationFailed, "player first and last name are required")
	ErrInvalidPlayerPosition      = kindOf(ErrValidationFailed, "position must be one of GK, DEF, MID, FWD")
	ErrInvalidJerseyNumber        = kindOf(ErrValidationFailed, "jersey number must be between 1 and 99")
	ErrInvalidDateOfBirth         = kindOf(ErrValidationFailed, "date_of_birth must be YYYY-MM-DD")
	ErrNegativePlayerStats        = kindOf(ErrValidationFailed, "player statistics must be non-negative")

	ErrAlreadyGenerated  = kindOf(ErrConflict, "group stage matches already generated for this group")
	ErrGroupNameConflict = kindOf(ErrConflict, "group name already exists in this tournament")
	ErrBracketSlotTaken  = kindOf(ErrConflict, "next round match already has two different teams")
	ErrJerseyNumberTaken = kindOf(ErrConflict, "jersey number already used in this team")

	ErrInsufficientTeams        = kindOf(ErrDomainRule, "at least 2 teams are required")
	ErrDrawNotAllowedInKnockout = kindOf(ErrDomainRule, "knockout match cannot end in a draw")
	ErrMatchCancelled           = kindOf(ErrDomainRule, "match is cancelled")
	ErrMatchNotCompleted        = kindOf(ErrDomainRule, "match has no result yet")
	ErrInvalidMatchTransition   = kindOf(ErrDomainRule, "invalid match status transition")
	ErrNextMatchPlayed          = kindOf(ErrDomainRule, "next round match is already completed")
	ErrNoAdvancementNeeded      = kindOf(ErrDomainRule, "final has no next round")
	ErrMatchStageLocked         = kindOf(ErrDomainRule, "stage of a bracket or completed match cannot change")

	ErrAuthInvalidCredentials = errors.New("invalid admin credentials")
	ErrBackupDisabled         = errors.New("backup storage is not configured")
)
