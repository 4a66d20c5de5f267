package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
	"golang.org/x/sync/errgroup"
)

const maxSearchQueryLength = 100

type SearchService interface {
	// Search ищет турниры по названию и описанию, игроков по имени и гражданству.
	// Пустой запрос возвращает пустой результат.
	Search(ctx context.Context, query string) (*models.SearchResults, error)
}

type searchService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
}

func NewSearchService(tournamentRepo repositories.TournamentRepository, playerRepo repositories.PlayerRepository) SearchService {
	return &searchService{tournamentRepo: tournamentRepo, playerRepo: playerRepo}
}

func (s *searchService) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	query = strings.TrimSpace(query)
	results := &models.SearchResults{
		Query:       query,
		Tournaments: []models.Tournament{},
		Players:     []models.Player{},
	}
	if query == "" {
		return results, nil
	}
	if len([]rune(query)) > maxSearchQueryLength {
		return nil, fmt.Errorf("%w: query is longer than %d characters", ErrValidationFailed, maxSearchQueryLength)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tournaments, err := s.tournamentRepo.List(gctx, repositories.ListTournamentsFilter{Search: query})
		if err != nil {
			return fmt.Errorf("failed to search tournaments: %w", err)
		}
		results.Tournaments = tournaments
		return nil
	})
	g.Go(func() error {
		players, err := s.playerRepo.Search(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to search players: %w", err)
		}
		results.Players = playersToValues(players)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
