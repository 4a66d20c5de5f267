package models

// BracketView partitions a tournament's knockout matches by stage, each ordered by bracket position.
type BracketView struct {
	TournamentID  int            `json:"tournament_id"`
	CurrentStage  BracketStage   `json:"current_stage"`
	QuarterFinals []Match        `json:"quarter_finals"`
	SemiFinals    []Match        `json:"semi_finals"`
	Final         []Match        `json:"final"`
	Teams         map[int]string `json:"team_names,omitempty"`
}
