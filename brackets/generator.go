package brackets

import (
	"context"

	"github.com/Dosada05/soccer-cup/models"
)

type GenerateFixturesParams struct {
	TournamentID int
	GroupID      *int
	Teams        []*models.Team
	Schedule     ScheduleConfig
	// Cursor shifts the calendar when several groups share one schedule.
	Cursor int
}

type FixtureGenerator interface {
	GenerateFixtures(ctx context.Context, params GenerateFixturesParams) ([]*models.Match, error)

	GetName() string
}
