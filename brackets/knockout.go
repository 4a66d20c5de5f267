package brackets

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Dosada05/soccer-cup/models"
)

var (
	ErrNotKnockoutStage     = errors.New("match is not a knockout match")
	ErrDrawInKnockout       = errors.New("knockout match cannot end in a draw")
	ErrNoWinner             = errors.New("match has no winner yet")
	ErrTerminalStage        = errors.New("final has no next stage")
	ErrInvalidPosition      = errors.New("invalid bracket position")
	ErrSlotTaken            = errors.New("next round match has no open slot")
	ErrNextMatchPlayed      = errors.New("next round match is already completed")
	ErrWinnerOnBothSides    = errors.New("winner already occupies the other side of the next round match")
	ErrMatchNotInStage      = errors.New("match not found among its stage matches")
	ErrKnockoutTeamsMissing = errors.New("knockout match needs both teams before a result can be recorded")
)

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// KnockoutWinner returns the winning side's team id for a knockout score line.
func KnockoutWinner(m *models.Match, homeScore, awayScore int) (int, error) {
	if !m.Stage.IsKnockout() {
		return 0, ErrNotKnockoutStage
	}
	if m.HomeTeamID == nil || m.AwayTeamID == nil {
		return 0, ErrKnockoutTeamsMissing
	}
	switch {
	case homeScore > awayScore:
		return *m.HomeTeamID, nil
	case awayScore > homeScore:
		return *m.AwayTeamID, nil
	}
	return 0, ErrDrawInKnockout
}

// Winner returns the winner of an already completed knockout match.
func Winner(m *models.Match) (int, error) {
	if !m.Stage.IsKnockout() {
		return 0, ErrNotKnockoutStage
	}
	if !m.IsCompleted() {
		return 0, ErrNoWinner
	}
	return KnockoutWinner(m, *m.HomeScore, *m.AwayScore)
}

// NextSlot maps a 1-based position in a knockout stage to the next stage and the
// slot it feeds: quarter-finals 1,2 feed semi-final 1, 3,4 feed semi-final 2, and
// every semi-final feeds the single final.
func NextSlot(stage models.Stage, position int) (models.Stage, int, error) {
	if !stage.IsKnockout() {
		return "", 0, ErrNotKnockoutStage
	}
	if position < 1 {
		return "", 0, fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}
	next, ok := stage.Next()
	if !ok {
		return "", 0, ErrTerminalStage
	}
	return next, (position + 1) / 2, nil
}

// OrderStage sorts matches of one stage by bracket position and returns the
// position of each match id. A match with bracket_slot uses it. The rest take,
// in id order, the lowest positions no slotted match has claimed, so without
// slots the position is the 1-based ordinal among the stage matches by id.
func OrderStage(matches []*models.Match) ([]*models.Match, map[int]int) {
	ordered := make([]*models.Match, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	positions := make(map[int]int, len(ordered))
	taken := make(map[int]bool, len(ordered))
	for _, m := range ordered {
		if m.BracketSlot != nil {
			positions[m.ID] = *m.BracketSlot
			taken[*m.BracketSlot] = true
		}
	}
	next := 1
	for _, m := range ordered {
		if m.BracketSlot != nil {
			continue
		}
		for taken[next] {
			next++
		}
		positions[m.ID] = next
		taken[next] = true
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return positions[ordered[i].ID] < positions[ordered[j].ID]
	})
	return ordered, positions
}

// PositionInStage returns the bracket position of m among stageMatches.
func PositionInStage(m *models.Match, stageMatches []*models.Match) (int, error) {
	if m.BracketSlot != nil {
		return *m.BracketSlot, nil
	}
	_, positions := OrderStage(stageMatches)
	pos, ok := positions[m.ID]
	if !ok {
		return 0, fmt.Errorf("%w: match %d, stage %s", ErrMatchNotInStage, m.ID, m.Stage)
	}
	return pos, nil
}

// PlaceWinner puts winnerID into target on behalf of sourceID. A side already fed by
// sourceID is overwritten, which makes repeated advancement idempotent and lets a
// corrected score replace the previous winner. Otherwise the first open side is used,
// home before away. changed is false when target already held this placement.
func PlaceWinner(target *models.Match, sourceID, winnerID int) (side Side, changed bool, err error) {
	switch {
	case target.HomeSourceMatchID != nil && *target.HomeSourceMatchID == sourceID:
		side = SideHome
	case target.AwaySourceMatchID != nil && *target.AwaySourceMatchID == sourceID:
		side = SideAway
	case target.HomeTeamID == nil:
		side = SideHome
	case target.AwayTeamID == nil:
		side = SideAway
	default:
		return "", false, fmt.Errorf("%w: match %d", ErrSlotTaken, target.ID)
	}

	teamRef, sourceRef, otherTeam := &target.HomeTeamID, &target.HomeSourceMatchID, target.AwayTeamID
	if side == SideAway {
		teamRef, sourceRef, otherTeam = &target.AwayTeamID, &target.AwaySourceMatchID, target.HomeTeamID
	}

	alreadyPlaced := *teamRef != nil && **teamRef == winnerID && *sourceRef != nil && **sourceRef == sourceID
	if alreadyPlaced {
		return side, false, nil
	}
	if otherTeam != nil && *otherTeam == winnerID {
		return "", false, fmt.Errorf("%w: team %d, match %d", ErrWinnerOnBothSides, winnerID, target.ID)
	}
	if target.Status == models.MatchStatusCompleted {
		return "", false, fmt.Errorf("%w: match %d", ErrNextMatchPlayed, target.ID)
	}

	w, s := winnerID, sourceID
	*teamRef = &w
	*sourceRef = &s
	return side, true, nil
}

// NewNextRoundMatch builds the match a winner opens in the next stage. The winner
// plays at home; the away side stays open for the sibling match's winner.
func NewNextRoundMatch(source *models.Match, next models.Stage, slot, winnerID int, kickoff time.Time) *models.Match {
	w, src, sl := winnerID, source.ID, slot
	return &models.Match{
		TournamentID:      source.TournamentID,
		HomeTeamID:        &w,
		HomeSourceMatchID: &src,
		BracketSlot:       &sl,
		MatchTime:         kickoff,
		Venue:             source.Venue,
		Stage:             next,
		Status:            models.MatchStatusScheduled,
	}
}

// Partition splits a tournament's matches into the three knockout stages,
// each ordered by bracket position. Group-stage matches are ignored.
func Partition(tournamentID int, current models.BracketStage, matches []*models.Match) models.BracketView {
	byStage := make(map[models.Stage][]*models.Match, len(models.KnockoutStages))
	for _, m := range matches {
		if m != nil && m.Stage.IsKnockout() {
			byStage[m.Stage] = append(byStage[m.Stage], m)
		}
	}

	flatten := func(stage models.Stage) []models.Match {
		ordered, _ := OrderStage(byStage[stage])
		out := make([]models.Match, len(ordered))
		for i, m := range ordered {
			out[i] = *m
		}
		return out
	}

	return models.BracketView{
		TournamentID:  tournamentID,
		CurrentStage:  current,
		QuarterFinals: flatten(models.StageQuarterFinal),
		SemiFinals:    flatten(models.StageSemiFinal),
		Final:         flatten(models.StageFinal),
	}
}
