package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/soccer-cup/models"
)

func TestTournamentService_Create(t *testing.T) {
	f := newFixture()
	svc := NewTournamentService(f.tournaments, f.groups, f.teams, discardLogger())

	tests := []struct {
		name    string
		input   CreateTournamentInput
		wantErr error
	}{
		{"ok", CreateTournamentInput{Name: " Summer Cup ", StartDate: testStart, EndDate: testStart.AddDate(0, 0, 3)}, nil},
		{"empty name", CreateTournamentInput{Name: "  ", StartDate: testStart, EndDate: testStart}, ErrTournamentNameRequired},
		{"reversed dates", CreateTournamentInput{Name: "X", StartDate: testStart, EndDate: testStart.Add(-time.Hour)}, ErrTournamentInvalidDateRange},
		{"negative capacity", CreateTournamentInput{Name: "X", StartDate: testStart, EndDate: testStart, MaxTeams: -2}, ErrTournamentInvalidCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour, err := svc.CreateTournament(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tour.Name != "Summer Cup" || tour.MaxTeams != 16 || tour.CurrentStage != models.BracketGroupStage {
				t.Errorf("Unexpected tournament: %+v", tour)
			}
		})
	}
}

func TestTournamentService_StatusAndDelete(t *testing.T) {
	f := newFixture()
	svc := NewTournamentService(f.tournaments, f.groups, f.teams, discardLogger())
	tour := f.tournament("Cup")

	if _, err := svc.UpdateTournamentStatus(context.Background(), tour.ID, "paused"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Expected validation error, got %v", err)
	}
	updated, err := svc.UpdateTournamentStatus(context.Background(), tour.ID, models.StatusCompleted)
	if err != nil || updated.Status != models.StatusCompleted {
		t.Errorf("Expected completed status, got %v (%v)", updated, err)
	}
	if err := svc.DeleteTournament(context.Background(), tour.ID); err != nil {
		t.Fatalf("DeleteTournament: %v", err)
	}
	if _, err := svc.GetTournamentByID(context.Background(), tour.ID); !errors.Is(err, ErrTournamentNotFound) {
		t.Errorf("Expected ErrTournamentNotFound, got %v", err)
	}
}

func TestGroupService(t *testing.T) {
	f := newFixture()
	svc := NewGroupService(f.tournaments, f.groups, f.teams)
	tour := f.tournament("Cup")

	g, err := svc.CreateGroup(context.Background(), tour.ID, "A")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := svc.CreateGroup(context.Background(), tour.ID, "a"); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected duplicate group name conflict, got %v", err)
	}
	if _, err := svc.CreateGroup(context.Background(), tour.ID, ""); !errors.Is(err, ErrGroupNameRequired) {
		t.Errorf("Expected ErrGroupNameRequired, got %v", err)
	}
	if _, err := svc.CreateGroup(context.Background(), 999, "B"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	team := f.team(tour.ID, &g.ID, "T")
	if err := svc.DeleteGroup(context.Background(), tour.ID, g.ID); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	stored, _ := f.teams.GetByID(context.Background(), nil, team.ID)
	if stored.GroupID != nil {
		t.Errorf("Expected team to lose its group, got %v", *stored.GroupID)
	}
}

func TestTeamService_AssignGroup(t *testing.T) {
	f := newFixture()
	svc := NewTeamService(f.tournaments, f.groups, f.teams)
	tour := f.tournament("Cup")
	other := f.tournament("Other")
	g := f.group(tour.ID, "A")
	foreign := f.group(other.ID, "A")

	team, err := svc.CreateTeam(context.Background(), CreateTeamInput{TournamentID: tour.ID, Name: "Lions"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	moved, err := svc.AssignGroup(context.Background(), team.ID, &g.ID)
	if err != nil || moved.GroupID == nil || *moved.GroupID != g.ID {
		t.Fatalf("Expected team in group %d, got %+v (%v)", g.ID, moved, err)
	}
	if _, err := svc.AssignGroup(context.Background(), team.ID, &foreign.ID); !errors.Is(err, ErrGroupNotInTournament) {
		t.Errorf("Expected ErrGroupNotInTournament, got %v", err)
	}
	cleared, err := svc.AssignGroup(context.Background(), team.ID, nil)
	if err != nil || cleared.GroupID != nil {
		t.Errorf("Expected group cleared, got %+v (%v)", cleared, err)
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrAlreadyGenerated, ErrConflict},
		{ErrGroupNameConflict, ErrConflict},
		{ErrInsufficientTeams, ErrDomainRule},
		{ErrDrawNotAllowedInKnockout, ErrDomainRule},
		{ErrMatchNotFound, ErrNotFound},
		{ErrNegativeScore, ErrValidationFailed},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.kind) {
			t.Errorf("Expected %q to be of kind %q", tt.err, tt.kind)
		}
	}
}

func TestDashboardService_GetStats(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	done := f.tournament("Old Cup")
	if err := f.tournaments.UpdateStatus(context.Background(), nil, done.ID, models.StatusCompleted); err != nil {
		t.Fatal(err)
	}
	g := f.group(tour.ID, "A")
	a := f.team(tour.ID, &g.ID, "A")
	b := f.team(tour.ID, &g.ID, "B")
	f.played(tour.ID, &g.ID, a, b, 1, 0)
	f.player(a.ID, "Ana", "Lima", 2)
	f.player(b.ID, "Rui", "Costa", 5)
	f.player(b.ID, "Teo", "Melo", 0)

	stats, err := NewDashboardService(f.tournaments, f.teams, f.matches, f.players).GetStats(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.TournamentsTotal != 2 || stats.ActiveTournaments != 1 {
		t.Errorf("Expected 2 tournaments with 1 active, got %d/%d", stats.TournamentsTotal, stats.ActiveTournaments)
	}
	if stats.TeamsTotal != 2 || stats.MatchesCompleted != 1 || len(stats.RecentMatches) != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.PlayersTotal != 3 {
		t.Errorf("Expected 3 players, got %d", stats.PlayersTotal)
	}
	if len(stats.TopScorers) != 3 || stats.TopScorers[0].LastName != "Costa" || stats.TopScorers[1].LastName != "Lima" {
		t.Errorf("Expected top scorers Costa, Lima first, got %+v", stats.TopScorers)
	}
}

func TestTeamService_UpdateTeam(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	team := f.team(tour.ID, nil, "Old Name")
	svc := NewTeamService(f.tournaments, f.groups, f.teams)

	updated, err := svc.UpdateTeam(context.Background(), team.ID, UpdateTeamInput{
		Name:    strPtr("  Vila Nova  "),
		LogoURL: strPtr("https://cdn.example.org/vila.png"),
	})
	if err != nil {
		t.Fatalf("UpdateTeam: %v", err)
	}
	if updated.Name != "Vila Nova" || updated.LogoURL == nil {
		t.Errorf("Expected renamed team with logo, got %+v", updated)
	}
	stored, _ := f.teams.GetByID(context.Background(), nil, team.ID)
	if stored.Name != "Vila Nova" || stored.LogoURL == nil || *stored.LogoURL != "https://cdn.example.org/vila.png" {
		t.Errorf("Expected stored team to be updated, got %+v", stored)
	}

	cleared, err := svc.UpdateTeam(context.Background(), team.ID, UpdateTeamInput{LogoURL: strPtr("")})
	if err != nil || cleared.LogoURL != nil || cleared.Name != "Vila Nova" {
		t.Errorf("Expected logo cleared and name kept, got %+v (%v)", cleared, err)
	}

	tests := []struct {
		name    string
		id      int
		input   UpdateTeamInput
		wantErr error
	}{
		{"empty input", team.ID, UpdateTeamInput{}, ErrNothingToUpdate},
		{"blank name", team.ID, UpdateTeamInput{Name: strPtr("  ")}, ErrTeamNameRequired},
		{"missing team", 999, UpdateTeamInput{Name: strPtr("X")}, ErrTeamNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateTeam(context.Background(), tt.id, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
