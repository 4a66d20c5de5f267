package models

type DashboardStats struct {
	TournamentsTotal  int      `json:"tournaments_total"`
	ActiveTournaments int      `json:"active_tournaments"`
	TeamsTotal        int      `json:"teams_total"`
	PlayersTotal      int      `json:"players_total"`
	MatchesTotal      int      `json:"matches_total"`
	MatchesCompleted  int      `json:"matches_completed"`
	RecentMatches     []Match  `json:"recent_matches"`
	TopScorers        []Player `json:"top_scorers"`
}

// SearchResults - ответ поиска по турнирам и игрокам.
type SearchResults struct {
	Query       string       `json:"query"`
	Tournaments []Tournament `json:"tournaments"`
	Players     []Player     `json:"players"`
}
