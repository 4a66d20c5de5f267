package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/soccer-cup/models"
)

func TestPlayerService_AddPlayer(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	team := f.team(tour.ID, nil, "A")
	svc := NewPlayerService(f.teams, f.players, discardLogger())
	fwd := models.PositionForward
	bad := models.PlayerPosition("ST")

	p, err := svc.AddPlayer(context.Background(), team.ID, CreatePlayerInput{
		FirstName:    " Ana ",
		LastName:     "Lima",
		JerseyNumber: intPtr(9),
		Position:     &fwd,
		Nationality:  strPtr("Brazil"),
		DateOfBirth:  strPtr("2004-03-17"),
	})
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if p.ID == 0 || p.TeamID != team.ID || p.FullName() != "Ana Lima" {
		t.Errorf("Unexpected player: %+v", p)
	}
	if p.DateOfBirth == nil || p.DateOfBirth.Year() != 2004 || p.DateOfBirth.Month() != 3 {
		t.Errorf("Expected date of birth 2004-03-17, got %v", p.DateOfBirth)
	}

	tests := []struct {
		name    string
		teamID  int
		input   CreatePlayerInput
		wantErr error
	}{
		{"missing last name", team.ID, CreatePlayerInput{FirstName: "Rui"}, ErrPlayerNameRequired},
		{"jersey zero", team.ID, CreatePlayerInput{FirstName: "Rui", LastName: "Costa", JerseyNumber: intPtr(0)}, ErrInvalidJerseyNumber},
		{"jersey taken", team.ID, CreatePlayerInput{FirstName: "Rui", LastName: "Costa", JerseyNumber: intPtr(9)}, ErrJerseyNumberTaken},
		{"bad position", team.ID, CreatePlayerInput{FirstName: "Rui", LastName: "Costa", Position: &bad}, ErrInvalidPlayerPosition},
		{"bad date", team.ID, CreatePlayerInput{FirstName: "Rui", LastName: "Costa", DateOfBirth: strPtr("17.03.2004")}, ErrInvalidDateOfBirth},
		{"unknown team", 999, CreatePlayerInput{FirstName: "Rui", LastName: "Costa"}, ErrTeamNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddPlayer(context.Background(), tt.teamID, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := svc.AddPlayer(context.Background(), team.ID, CreatePlayerInput{FirstName: "Rui", LastName: "Costa", JerseyNumber: intPtr(9)}); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected a taken jersey number to be a conflict, got %v", err)
	}
}

func TestPlayerService_ListTeamPlayers(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	a := f.team(tour.ID, nil, "A")
	b := f.team(tour.ID, nil, "B")
	svc := NewPlayerService(f.teams, f.players, discardLogger())

	for _, in := range []CreatePlayerInput{
		{FirstName: "No", LastName: "Number"},
		{FirstName: "Ten", LastName: "Ten", JerseyNumber: intPtr(10)},
		{FirstName: "One", LastName: "One", JerseyNumber: intPtr(1)},
	} {
		if _, err := svc.AddPlayer(context.Background(), a.ID, in); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	f.player(b.ID, "Other", "Team", 0)

	players, err := svc.ListTeamPlayers(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("ListTeamPlayers: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("Expected 3 players of team A, got %d", len(players))
	}
	if players[0].LastName != "One" || players[1].LastName != "Ten" || players[2].LastName != "Number" {
		t.Errorf("Expected order by jersey number, unnumbered last, got %s, %s, %s",
			players[0].LastName, players[1].LastName, players[2].LastName)
	}

	if _, err := svc.ListTeamPlayers(context.Background(), 999); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("Expected ErrTeamNotFound, got %v", err)
	}
}

func TestPlayerService_UpdateStatsAndDelete(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	team := f.team(tour.ID, nil, "A")
	p := f.player(team.ID, "Ana", "Lima", 0)
	svc := NewPlayerService(f.teams, f.players, discardLogger())

	updated, err := svc.UpdatePlayerStats(context.Background(), p.ID, models.PlayerStats{GoalsScored: 4, Assists: 2, MatchesPlayed: 3, MinutesPlayed: 270})
	if err != nil {
		t.Fatalf("UpdatePlayerStats: %v", err)
	}
	if updated.GoalsScored != 4 || updated.Assists != 2 || updated.MinutesPlayed != 270 {
		t.Errorf("Unexpected stats: %+v", updated.PlayerStats)
	}

	if _, err := svc.UpdatePlayerStats(context.Background(), p.ID, models.PlayerStats{YellowCards: -1}); !errors.Is(err, ErrNegativePlayerStats) {
		t.Errorf("Expected ErrNegativePlayerStats, got %v", err)
	}
	if _, err := svc.UpdatePlayerStats(context.Background(), 999, models.PlayerStats{}); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Expected ErrPlayerNotFound, got %v", err)
	}

	if err := svc.DeletePlayer(context.Background(), p.ID); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}
	if _, err := svc.GetPlayer(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected deleted player to be gone, got %v", err)
	}
}

func TestSearchService_Search(t *testing.T) {
	f := newFixture()
	summer := f.tournament("Copa Verão")
	f.tournament("Winter League")
	desc := "Турнир для школьных команд"
	school := &models.Tournament{Name: "School Cup", Description: &desc, StartDate: testStart, EndDate: testStart}
	if err := f.tournaments.Create(context.Background(), school); err != nil {
		t.Fatal(err)
	}
	team := f.team(summer.ID, nil, "A")
	f.player(team.ID, "Ana", "Verardi", 0)
	players := NewPlayerService(f.teams, f.players, discardLogger())
	if _, err := players.AddPlayer(context.Background(), team.ID, CreatePlayerInput{
		FirstName: "Rui", LastName: "Costa", Nationality: strPtr("Portugal"),
	}); err != nil {
		t.Fatal(err)
	}
	svc := NewSearchService(f.tournaments, f.players)

	tests := []struct {
		query       string
		tournaments int
		players     int
	}{
		{"verã", 1, 0},
		{"VER", 1, 1},
		{"школьных", 1, 0},
		{"portugal", 0, 1},
		{"nothing", 0, 0},
		{"   ", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := svc.Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Search(%q): %v", tt.query, err)
			}
			if len(res.Tournaments) != tt.tournaments || len(res.Players) != tt.players {
				t.Errorf("Search(%q): expected %d tournaments and %d players, got %d and %d",
					tt.query, tt.tournaments, tt.players, len(res.Tournaments), len(res.Players))
			}
		})
	}
}
