package brackets

import (
	"time"

	"github.com/Dosada05/soccer-cup/models"
)

func intPtr(v int) *int { return &v }

func completed(id, home, away, homeScore, awayScore int) *models.Match {
	return &models.Match{
		ID:         id,
		HomeTeamID: intPtr(home),
		AwayTeamID: intPtr(away),
		Stage:      models.StageGroup,
		Status:     models.MatchStatusCompleted,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
}

func knockout(id int, stage models.Stage, home, away int) *models.Match {
	m := &models.Match{
		ID:           id,
		TournamentID: 1,
		Stage:        stage,
		Status:       models.MatchStatusScheduled,
		MatchTime:    time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC),
	}
	if home != 0 {
		m.HomeTeamID = intPtr(home)
	}
	if away != 0 {
		m.AwayTeamID = intPtr(away)
	}
	return m
}

func withScore(m *models.Match, home, away int) *models.Match {
	m.HomeScore = intPtr(home)
	m.AwayScore = intPtr(away)
	m.Status = models.MatchStatusCompleted
	return m
}
