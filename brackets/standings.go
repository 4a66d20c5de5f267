package brackets

import (
	"sort"

	"github.com/Dosada05/soccer-cup/models"
)

// ComputeAggregate folds the completed matches of teamID into one aggregate.
// Matches that are not completed, or that do not involve the team, contribute nothing.
func ComputeAggregate(teamID int, matches []*models.Match) models.Aggregate {
	var agg models.Aggregate
	for _, m := range matches {
		if m == nil || !m.IsCompleted() {
			continue
		}
		switch {
		case m.HomeTeamID != nil && *m.HomeTeamID == teamID:
			addResult(&agg, *m.HomeScore, *m.AwayScore)
		case m.AwayTeamID != nil && *m.AwayTeamID == teamID:
			addResult(&agg, *m.AwayScore, *m.HomeScore)
		}
	}
	finalize(&agg)
	return agg
}

// BuildStandings computes aggregates for every team in one pass over matches and
// returns the ranked table. Team input order is the final tie-break.
func BuildStandings(teams []*models.Team, matches []*models.Match) []models.TeamStanding {
	standings := make([]models.TeamStanding, len(teams))
	index := make(map[int]*models.Aggregate, len(teams))
	for i, t := range teams {
		standings[i].Team = *t
		index[t.ID] = &standings[i].Aggregate
	}

	for _, m := range matches {
		if m == nil || !m.IsCompleted() {
			continue
		}
		if m.HomeTeamID != nil {
			if agg, ok := index[*m.HomeTeamID]; ok {
				addResult(agg, *m.HomeScore, *m.AwayScore)
			}
		}
		if m.AwayTeamID != nil {
			if agg, ok := index[*m.AwayTeamID]; ok {
				addResult(agg, *m.AwayScore, *m.HomeScore)
			}
		}
	}
	for i := range standings {
		finalize(&standings[i].Aggregate)
	}

	RankStandings(standings)
	return standings
}

// RankStandings orders the table by points, goal difference and goals scored, all
// descending. Ties on all three keep their input order; there is no head-to-head rule.
func RankStandings(standings []models.TeamStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i].Aggregate, standings[j].Aggregate
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
}

func addResult(agg *models.Aggregate, scored, conceded int) {
	agg.MatchesPlayed++
	agg.GoalsFor += scored
	agg.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		agg.Wins++
	case scored == conceded:
		agg.Draws++
	default:
		agg.Losses++
	}
}

func finalize(agg *models.Aggregate) {
	agg.GoalDifference = agg.GoalsFor - agg.GoalsAgainst
	agg.Points = agg.Wins*3 + agg.Draws
}
