package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/services"
	"github.com/go-chi/chi/v5"
)

type fakeKnockoutService struct {
	services.KnockoutService
	recordFn  func(ctx context.Context, matchID, home, away int) (*int, error)
	advanceFn func(ctx context.Context, matchID int) (*models.Match, error)
	bothFn    func(ctx context.Context, matchID, home, away int) (*services.AdvanceResult, error)
}

func (f *fakeKnockoutService) RecordKnockoutResult(ctx context.Context, matchID, home, away int) (*int, error) {
	return f.recordFn(ctx, matchID, home, away)
}

func (f *fakeKnockoutService) AdvanceWinner(ctx context.Context, matchID int) (*models.Match, error) {
	return f.advanceFn(ctx, matchID)
}

func (f *fakeKnockoutService) RecordAndAdvance(ctx context.Context, matchID, home, away int) (*services.AdvanceResult, error) {
	return f.bothFn(ctx, matchID, home, away)
}

type fakeFixtureService struct {
	groupFn func(ctx context.Context, tournamentID, groupID int, cfg brackets.ScheduleConfig) (*services.GenerationResult, error)
}

func (f *fakeFixtureService) GenerateGroupMatches(ctx context.Context, tournamentID, groupID int, cfg brackets.ScheduleConfig) (*services.GenerationResult, error) {
	return f.groupFn(ctx, tournamentID, groupID, cfg)
}

func (f *fakeFixtureService) GenerateAllGroupMatches(ctx context.Context, tournamentID int, cfg brackets.ScheduleConfig) (*services.AllGroupsGenerationResult, error) {
	return &services.AllGroupsGenerationResult{TournamentID: tournamentID}, nil
}

type fakeAuthService struct {
	err error
}

func (f *fakeAuthService) Login(ctx context.Context, input services.LoginInput) error { return f.err }

type fakeStandingsService struct {
	services.StandingsService
	groupFn func(ctx context.Context, groupID int) ([]models.TeamStanding, error)
}

func (f *fakeStandingsService) ComputeGroupStandings(ctx context.Context, groupID int) ([]models.TeamStanding, error) {
	return f.groupFn(ctx, groupID)
}

type fakePlayerService struct {
	services.PlayerService
	addFn func(ctx context.Context, teamID int, input services.CreatePlayerInput) (*models.Player, error)
}

func (f *fakePlayerService) AddPlayer(ctx context.Context, teamID int, input services.CreatePlayerInput) (*models.Player, error) {
	return f.addFn(ctx, teamID, input)
}

type fakeMatchService struct {
	services.MatchService
	updateFn func(ctx context.Context, id int, input services.UpdateMatchInput) (*models.Match, error)
}

func (f *fakeMatchService) UpdateMatch(ctx context.Context, id int, input services.UpdateMatchInput) (*models.Match, error) {
	return f.updateFn(ctx, id, input)
}

type fakeSearchService struct {
	query string
}

func (f *fakeSearchService) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	f.query = query
	return &models.SearchResults{Query: query, Tournaments: []models.Tournament{}, Players: []models.Player{{ID: 1, FirstName: "Ana"}}}, nil
}

// serve прогоняет запрос через chi, чтобы заполнились URL-параметры.
func serve(method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
