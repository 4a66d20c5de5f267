package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCancelled  MatchStatus = "cancelled"
)

func IsValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchStatusScheduled, MatchStatusInProgress, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// Match is a fixture between two teams. Home/away team ids are nil only on
// knockout matches that still wait for the winner of a source match.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   *int        `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID   *int        `json:"away_team_id,omitempty" db:"away_team_id"`
	GroupID      *int        `json:"group_id,omitempty" db:"group_id"`
	MatchTime    time.Time   `json:"match_time" db:"match_time"`
	Field        *string     `json:"field,omitempty" db:"field"`
	Venue        *string     `json:"venue,omitempty" db:"venue"`
	Stage        Stage       `json:"stage" db:"stage"`
	Status       MatchStatus `json:"status" db:"status"`
	HomeScore    *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int        `json:"away_score,omitempty" db:"away_score"`

	// Position of a knockout match within its stage and the source match of each side.
	BracketSlot       *int `json:"bracket_slot,omitempty" db:"bracket_slot"`
	HomeSourceMatchID *int `json:"home_source_match_id,omitempty" db:"home_source_match_id"`
	AwaySourceMatchID *int `json:"away_source_match_id,omitempty" db:"away_source_match_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsCompleted reports whether the match has a final score that standings may use.
func (m *Match) IsCompleted() bool {
	return m.Status == MatchStatusCompleted && m.HomeScore != nil && m.AwayScore != nil
}

// InvolvesTeam reports whether teamID plays on either side.
func (m *Match) InvolvesTeam(teamID int) bool {
	return (m.HomeTeamID != nil && *m.HomeTeamID == teamID) ||
		(m.AwayTeamID != nil && *m.AwayTeamID == teamID)
}
