package services

import (
	"context"

	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
)

const (
	recentMatchesLimit = 10
	topScorersLimit    = 10
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	playerRepo     repositories.PlayerRepository
}

func NewDashboardService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
) DashboardService {
	return &dashboardService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
	}
}

// GetStats собирает счётчики для главной страницы; частичные ошибки дают нули.
func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	active := models.StatusActive
	completed := models.MatchStatusCompleted

	tournamentsTotal, _ := s.tournamentRepo.Count(ctx, nil)
	activeTournaments, _ := s.tournamentRepo.Count(ctx, &active)
	teamsTotal, _ := s.teamRepo.Count(ctx)
	playersTotal, _ := s.playerRepo.Count(ctx)
	matchesTotal, _ := s.matchRepo.Count(ctx, nil)
	matchesCompleted, _ := s.matchRepo.Count(ctx, &completed)

	recent, _ := s.matchRepo.ListRecentCompleted(ctx, recentMatchesLimit)
	scorers, _ := s.playerRepo.TopScorers(ctx, topScorersLimit)

	return models.DashboardStats{
		TournamentsTotal:  tournamentsTotal,
		ActiveTournaments: activeTournaments,
		TeamsTotal:        teamsTotal,
		PlayersTotal:      playersTotal,
		MatchesTotal:      matchesTotal,
		MatchesCompleted:  matchesCompleted,
		RecentMatches:     matchesToValues(recent),
		TopScorers:        playersToValues(scorers),
	}, nil
}
