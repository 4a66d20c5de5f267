package models

import "time"

type Team struct {
	ID                   int       `json:"id" db:"id"`
	TournamentID         int       `json:"tournament_id" db:"tournament_id"`
	GroupID              *int      `json:"group_id,omitempty" db:"group_id"`
	Name                 string    `json:"name" db:"name"`
	City                 *string   `json:"city,omitempty" db:"city"`
	LogoURL              *string   `json:"logo_url,omitempty" db:"logo_url"`
	QualifiedForKnockout bool      `json:"qualified_for_knockout" db:"qualified_for_knockout"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}
