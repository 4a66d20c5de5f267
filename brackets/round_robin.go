package brackets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/soccer-cup/models"
)

var (
	ErrNotEnoughTeams  = errors.New("at least 2 teams are required to generate fixtures")
	ErrInvalidSchedule = errors.New("invalid schedule configuration")
	ErrDuplicateTeam   = errors.New("team listed more than once")
)

// ScheduleConfig describes how generated fixtures are laid out on the calendar.
type ScheduleConfig struct {
	StartAt       time.Time     `json:"start_at"`
	Fields        int           `json:"fields"`
	SlotDuration  time.Duration `json:"slot_duration"`
	MatchesPerDay int           `json:"matches_per_day"`
	Venue         string        `json:"venue,omitempty"`
}

func (c ScheduleConfig) Validate() error {
	if c.StartAt.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidSchedule)
	}
	if c.Fields < 1 {
		return fmt.Errorf("%w: fields must be at least 1, got %d", ErrInvalidSchedule, c.Fields)
	}
	if c.MatchesPerDay < 1 {
		return fmt.Errorf("%w: matches per day must be at least 1, got %d", ErrInvalidSchedule, c.MatchesPerDay)
	}
	if c.SlotDuration <= 0 {
		return fmt.Errorf("%w: slot duration must be positive, got %s", ErrInvalidSchedule, c.SlotDuration)
	}
	return nil
}

// Slot returns kickoff time and 1-based field number of the k-th fixture (0-based).
// Fixtures fill the fields of one time slot before moving to the next slot, and
// move to the next day after MatchesPerDay fixtures.
func (c ScheduleConfig) Slot(k int) (time.Time, int) {
	day := k / c.MatchesPerDay
	inDay := k % c.MatchesPerDay
	slot := inDay / c.Fields
	field := inDay%c.Fields + 1
	return c.StartAt.AddDate(0, 0, day).Add(time.Duration(slot) * c.SlotDuration), field
}

// Pairs returns every unordered pair (i, j), i < j, of n indices in lexicographic order.
func Pairs(n int) [][2]int {
	if n < 2 {
		return nil
	}
	pairs := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() FixtureGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateFixtures creates one scheduled group-stage match per unordered pair of teams.
// The earlier team in the input is the home side. The calendar layout follows input
// pair order and is not a fairness guarantee: a team may play several consecutive slots.
func (g *RoundRobinGenerator) GenerateFixtures(ctx context.Context, params GenerateFixturesParams) ([]*models.Match, error) {
	teams := params.Teams
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrNotEnoughTeams, len(teams))
	}
	if err := params.Schedule.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(teams))
	for _, t := range teams {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTeam, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	var venue *string
	if params.Schedule.Venue != "" {
		v := params.Schedule.Venue
		venue = &v
	}

	pairs := Pairs(len(teams))
	matches := make([]*models.Match, 0, len(pairs))
	for k, p := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		homeID := teams[p[0]].ID
		awayID := teams[p[1]].ID
		kickoff, field := params.Schedule.Slot(params.Cursor + k)
		fieldName := fmt.Sprintf("Field %d", field)

		matches = append(matches, &models.Match{
			TournamentID: params.TournamentID,
			HomeTeamID:   &homeID,
			AwayTeamID:   &awayID,
			GroupID:      params.GroupID,
			MatchTime:    kickoff,
			Field:        &fieldName,
			Venue:        venue,
			Stage:        models.StageGroup,
			Status:       models.MatchStatusScheduled,
		})
	}
	return matches, nil
}
