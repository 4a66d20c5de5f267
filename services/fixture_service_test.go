package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/models"
)

func seedGroup(f *fixture, tournamentID int, name string, teams int) *models.Group {
	g := f.group(tournamentID, name)
	for i := 0; i < teams; i++ {
		f.team(tournamentID, &g.ID, name+string(rune('1'+i)))
	}
	return g
}

func TestGenerateGroupMatches_FourTeams(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	g := seedGroup(f, tour.ID, "A", 4)

	res, err := f.fixtures().GenerateGroupMatches(context.Background(), tour.ID, g.ID, brackets.ScheduleConfig{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Created != 6 || len(res.Matches) != 6 {
		t.Fatalf("Expected 6 matches, got %d", res.Created)
	}

	seen := make(map[[2]int]bool)
	for _, m := range res.Matches {
		if m.Stage != models.StageGroup || m.Status != models.MatchStatusScheduled {
			t.Errorf("Expected scheduled group_stage match, got %s/%s", m.Stage, m.Status)
		}
		a, b := *m.HomeTeamID, *m.AwayTeamID
		if a > b {
			a, b = b, a
		}
		if seen[[2]int{a, b}] {
			t.Errorf("Pair %d-%d generated twice", a, b)
		}
		seen[[2]int{a, b}] = true
	}

	// default calendar: tournament start day at 14:00
	first := res.Matches[0].MatchTime
	want := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	if !first.Equal(want) {
		t.Errorf("Expected first kickoff %s, got %s", want, first)
	}
	if f.pub.count(brackets.MessageFixturesCreated) != 1 {
		t.Errorf("Expected one FIXTURES_CREATED event")
	}
}

func TestGenerateGroupMatches_SecondCallConflicts(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	g := seedGroup(f, tour.ID, "A", 4)
	svc := f.fixtures()

	if _, err := svc.GenerateGroupMatches(context.Background(), tour.ID, g.ID, brackets.ScheduleConfig{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	before := f.matches.creates

	_, err := svc.GenerateGroupMatches(context.Background(), tour.ID, g.ID, brackets.ScheduleConfig{})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, ErrAlreadyGenerated) {
		t.Errorf("Expected ErrAlreadyGenerated (conflict), got %v", err)
	}
	if f.matches.creates != before {
		t.Errorf("Expected no inserts on second call, got %d new", f.matches.creates-before)
	}
}

func TestGenerateGroupMatches_Errors(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	other := f.tournament("Other")
	single := seedGroup(f, tour.ID, "A", 1)
	foreign := seedGroup(f, other.ID, "Z", 4)
	full := seedGroup(f, tour.ID, "B", 4)

	tests := []struct {
		name    string
		tid     int
		gid     int
		cfg     brackets.ScheduleConfig
		wantErr error
	}{
		{"insufficient teams", tour.ID, single.ID, brackets.ScheduleConfig{}, ErrDomainRule},
		{"group of another tournament", tour.ID, foreign.ID, brackets.ScheduleConfig{}, ErrValidationFailed},
		{"unknown tournament", 999, full.ID, brackets.ScheduleConfig{}, ErrNotFound},
		{"unknown group", tour.ID, 999, brackets.ScheduleConfig{}, ErrNotFound},
		{"negative fields", tour.ID, full.ID, brackets.ScheduleConfig{Fields: -1}, ErrValidationFailed},
	}

	svc := f.fixtures()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateGroupMatches(context.Background(), tt.tid, tt.gid, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
	if f.matches.creates != 0 {
		t.Errorf("Expected no matches created, got %d", f.matches.creates)
	}
}

func TestGenerateAllGroupMatches(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	ga := seedGroup(f, tour.ID, "A", 4)
	gb := seedGroup(f, tour.ID, "B", 3)
	seedGroup(f, tour.ID, "C", 1)
	svc := f.fixtures()

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	res, err := svc.GenerateAllGroupMatches(context.Background(), tour.ID, brackets.ScheduleConfig{StartAt: start})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.TotalCreated != 9 {
		t.Errorf("Expected 6+3 matches, got %d", res.TotalCreated)
	}
	if len(res.Generated) != 2 || res.Generated[0].GroupID != ga.ID || res.Generated[1].GroupID != gb.ID {
		t.Fatalf("Expected groups A and B generated in order, got %+v", res.Generated)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Name != "C" {
		t.Errorf("Expected group C skipped, got %+v", res.Skipped)
	}

	// group B continues the calendar after group A's six fixtures (two per day)
	firstB := res.Generated[1].Matches[0].MatchTime
	if want := start.AddDate(0, 0, 3); !firstB.Equal(want) {
		t.Errorf("Expected group B to start at %s, got %s", want, firstB)
	}

	again, err := svc.GenerateAllGroupMatches(context.Background(), tour.ID, brackets.ScheduleConfig{StartAt: start})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if again.TotalCreated != 0 || len(again.Skipped) != 3 {
		t.Errorf("Expected everything skipped on rerun, got %+v", again)
	}
}
