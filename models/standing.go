package models

// Aggregate holds derived per-team statistics. It is never persisted.
type Aggregate struct {
	MatchesPlayed  int `json:"matches_played"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`
	Points         int `json:"points"`
}

// TeamStanding pairs a team with its aggregate and its 1-based rank in a table.
type TeamStanding struct {
	Team      Team      `json:"team"`
	Aggregate Aggregate `json:"stats"`
	Rank      int       `json:"rank"`
}

// GroupStandings is one group's ranked table.
type GroupStandings struct {
	Group     Group          `json:"group"`
	Standings []TeamStanding `json:"standings"`
}
