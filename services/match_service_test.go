package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/models"
)

func TestMatchLifecycle(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	a := f.team(tour.ID, nil, "A")
	b := f.team(tour.ID, nil, "B")
	svc := f.matchService()

	m, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: tour.ID, HomeTeamID: a.ID, AwayTeamID: b.ID, MatchTime: testStart,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if m.Stage != models.StageGroup || m.Status != models.MatchStatusScheduled {
		t.Errorf("Expected scheduled group match, got %s/%s", m.Stage, m.Status)
	}

	started, err := svc.StartMatch(context.Background(), m.ID)
	if err != nil || started.Status != models.MatchStatusInProgress {
		t.Fatalf("Expected in_progress, got %v (%v)", started, err)
	}
	if _, err := svc.StartMatch(context.Background(), m.ID); !errors.Is(err, ErrInvalidMatchTransition) {
		t.Errorf("Expected ErrInvalidMatchTransition on second start, got %v", err)
	}

	done, err := svc.RecordMatchResult(context.Background(), m.ID, 1, 1)
	if err != nil {
		t.Fatalf("Expected a group-stage draw to be accepted, got %v", err)
	}
	if !done.IsCompleted() {
		t.Errorf("Expected completed match, got %+v", done)
	}
	if _, err := svc.CancelMatch(context.Background(), m.ID); !errors.Is(err, ErrDomainRule) {
		t.Errorf("Expected completed match to refuse cancellation, got %v", err)
	}
	if f.pub.count(brackets.MessageStandingsUpdated) != 1 {
		t.Errorf("Expected a STANDINGS_UPDATED event after the result")
	}
}

func TestCreateMatch_Validation(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	other := f.tournament("Other")
	a := f.team(tour.ID, nil, "A")
	b := f.team(tour.ID, nil, "B")
	x := f.team(other.ID, nil, "X")
	svc := f.matchService()

	tests := []struct {
		name    string
		input   CreateMatchInput
		wantErr error
	}{
		{"same team", CreateMatchInput{TournamentID: tour.ID, HomeTeamID: a.ID, AwayTeamID: a.ID, MatchTime: testStart}, ErrSameTeams},
		{"missing time", CreateMatchInput{TournamentID: tour.ID, HomeTeamID: a.ID, AwayTeamID: b.ID}, ErrValidationFailed},
		{"foreign team", CreateMatchInput{TournamentID: tour.ID, HomeTeamID: a.ID, AwayTeamID: x.ID, MatchTime: testStart}, ErrTeamNotInTournament},
		{"unknown team", CreateMatchInput{TournamentID: tour.ID, HomeTeamID: a.ID, AwayTeamID: 999, MatchTime: testStart}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateMatch(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRecordMatchResult_KnockoutRules(t *testing.T) {
	s := newBracket(t)
	svc := s.f.matchService()

	if _, err := svc.RecordMatchResult(context.Background(), s.qf[0].ID, 0, 0); !errors.Is(err, ErrDrawNotAllowedInKnockout) {
		t.Errorf("Expected ErrDrawNotAllowedInKnockout, got %v", err)
	}
	m, err := svc.RecordMatchResult(context.Background(), s.qf[0].ID, 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if *m.AwayScore != 1 || m.Status != models.MatchStatusCompleted {
		t.Errorf("Expected completed 0-1, got %+v", m)
	}
}

func TestCancelMatch_Idempotent(t *testing.T) {
	s := newBracket(t)
	svc := s.f.matchService()
	for i := 0; i < 2; i++ {
		m, err := svc.CancelMatch(context.Background(), s.qf[0].ID)
		if err != nil {
			t.Fatalf("CancelMatch #%d: %v", i+1, err)
		}
		if m.Status != models.MatchStatusCancelled {
			t.Errorf("Expected cancelled, got %s", m.Status)
		}
	}
	if _, err := svc.RecordMatchResult(context.Background(), s.qf[0].ID, 1, 0); !errors.Is(err, ErrMatchCancelled) {
		t.Errorf("Expected ErrMatchCancelled, got %v", err)
	}
}

func TestUpdateMatch_Reschedule(t *testing.T) {
	f := newFixture()
	tour := f.tournament("Cup")
	a := f.team(tour.ID, nil, "A")
	b := f.team(tour.ID, nil, "B")
	svc := f.matchService()

	m, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: tour.ID, HomeTeamID: a.ID, AwayTeamID: b.ID, MatchTime: testStart, Venue: strPtr("Arena"),
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	kickoff := testStart.Add(26 * time.Hour)
	updated, err := svc.UpdateMatch(context.Background(), m.ID, UpdateMatchInput{
		MatchTime: &kickoff,
		Field:     strPtr(" 2 "),
		Venue:     strPtr(""),
	})
	if err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}
	if !updated.MatchTime.Equal(kickoff) {
		t.Errorf("Expected match_time %v, got %v", kickoff, updated.MatchTime)
	}
	if updated.Field == nil || *updated.Field != "2" {
		t.Errorf("Expected field 2, got %v", updated.Field)
	}
	if updated.Venue != nil {
		t.Errorf("Expected empty venue to clear it, got %q", *updated.Venue)
	}

	stored, _ := f.matches.GetByID(context.Background(), nil, m.ID)
	if !stored.MatchTime.Equal(kickoff) || stored.Stage != models.StageGroup {
		t.Errorf("Expected stored match to be rescheduled, got %+v", stored)
	}
	if f.pub.count(brackets.MessageBracketUpdated) != 0 {
		t.Errorf("Expected no BRACKET_UPDATED for a group match")
	}

	semi := models.StageSemiFinal
	moved, err := svc.UpdateMatch(context.Background(), m.ID, UpdateMatchInput{Stage: &semi})
	if err != nil {
		t.Fatalf("Expected stage change of a free match, got %v", err)
	}
	if moved.Stage != models.StageSemiFinal {
		t.Errorf("Expected semi_final, got %s", moved.Stage)
	}
	if f.pub.count(brackets.MessageBracketUpdated) != 1 {
		t.Errorf("Expected BRACKET_UPDATED after the stage change")
	}
}

func TestUpdateMatch_Rules(t *testing.T) {
	s := newBracket(t)
	svc := s.f.matchService()
	final := models.StageFinal
	group := models.StageGroup
	unknown := models.Stage("round_of_16")
	kickoff := testStart.Add(48 * time.Hour)

	played := s.f.played(s.tour.ID, nil, s.teams[0], s.teams[1], 2, 0)

	tests := []struct {
		name    string
		id      int
		input   UpdateMatchInput
		wantErr error
	}{
		{"nothing to update", s.qf[0].ID, UpdateMatchInput{}, ErrNothingToUpdate},
		{"zero time", s.qf[0].ID, UpdateMatchInput{MatchTime: &time.Time{}}, ErrMatchTimeRequired},
		{"unknown stage", s.qf[0].ID, UpdateMatchInput{Stage: &unknown}, ErrInvalidStage},
		{"bracket match stage", s.qf[0].ID, UpdateMatchInput{Stage: &final}, ErrMatchStageLocked},
		{"completed match stage", played.ID, UpdateMatchInput{Stage: &final}, ErrMatchStageLocked},
		{"missing match", 999, UpdateMatchInput{MatchTime: &kickoff}, ErrMatchNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateMatch(context.Background(), tt.id, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// Та же стадия и новое время допустимы и для матча сетки.
	quarter := models.StageQuarterFinal
	m, err := svc.UpdateMatch(context.Background(), s.qf[0].ID, UpdateMatchInput{MatchTime: &kickoff, Stage: &quarter})
	if err != nil {
		t.Fatalf("Expected bracket match to be rescheduled, got %v", err)
	}
	if !m.MatchTime.Equal(kickoff) || m.BracketSlot == nil || *m.BracketSlot != 1 {
		t.Errorf("Expected rescheduled QF1 with its slot, got %+v", m)
	}
	if _, err := svc.UpdateMatch(context.Background(), played.ID, UpdateMatchInput{Stage: &group}); err != nil {
		t.Errorf("Expected unchanged stage on a completed match to pass, got %v", err)
	}
}
