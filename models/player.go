package models

import "time"

// PlayerPosition - амплуа игрока.
type PlayerPosition string

const (
	PositionGoalkeeper PlayerPosition = "GK"
	PositionDefender   PlayerPosition = "DEF"
	PositionMidfielder PlayerPosition = "MID"
	PositionForward    PlayerPosition = "FWD"
)

func IsValidPlayerPosition(p PlayerPosition) bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

// PlayerStats - накопленная статистика игрока, вводится организатором.
type PlayerStats struct {
	GoalsScored   int `json:"goals_scored" db:"goals_scored"`
	Assists       int `json:"assists" db:"assists"`
	YellowCards   int `json:"yellow_cards" db:"yellow_cards"`
	RedCards      int `json:"red_cards" db:"red_cards"`
	MinutesPlayed int `json:"minutes_played" db:"minutes_played"`
	MatchesPlayed int `json:"matches_played" db:"matches_played"`
}

// Player представляет игрока заявки команды.
type Player struct {
	ID           int             `json:"id" db:"id"`
	TeamID       int             `json:"team_id" db:"team_id"`
	FirstName    string          `json:"first_name" db:"first_name"`
	LastName     string          `json:"last_name" db:"last_name"`
	JerseyNumber *int            `json:"jersey_number,omitempty" db:"jersey_number"`
	Position     *PlayerPosition `json:"position,omitempty" db:"position"`
	Nationality  *string         `json:"nationality,omitempty" db:"nationality"`
	DateOfBirth  *time.Time      `json:"date_of_birth,omitempty" db:"date_of_birth"`
	PlayerStats
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}
