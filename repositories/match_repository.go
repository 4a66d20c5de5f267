package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/soccer-cup/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchSlotConflict      = errors.New("bracket slot already occupied in this stage")
	ErrMatchSameTeams         = errors.New("home and away team must differ")
	ErrMatchScoresRequired    = errors.New("completed match requires both scores")
	ErrMatchInvalidTournament = errors.New("invalid tournament reference")
	ErrMatchInvalidTeam       = errors.New("invalid team reference")
	ErrMatchInvalidGroup      = errors.New("invalid group reference")
)

type MatchFilter struct {
	Stage   *models.Stage
	GroupID *int
	Status  *models.MatchStatus
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, filter MatchFilter) ([]*models.Match, error)
	ListByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]*models.Match, error)
	ListRecentCompleted(ctx context.Context, limit int) ([]*models.Match, error)
	CountGroupStage(ctx context.Context, exec SQLExecutor, groupID int) (int, error)
	// FindBySlot returns ErrMatchNotFound when the stage has no match at slot.
	FindBySlot(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage, slot int) (*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, homeScore, awayScore int) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error
	UpdateSides(ctx context.Context, exec SQLExecutor, match *models.Match) error
	// UpdateSchedule writes kickoff time, field, venue and stage.
	UpdateSchedule(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Delete(ctx context.Context, id int) error
	DeleteKnockout(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error)
	Count(ctx context.Context, status *models.MatchStatus) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, tournament_id, home_team_id, away_team_id, group_id, match_time, field, venue,
	stage, status, home_score, away_score, bracket_slot, home_source_match_id, away_source_match_id,
	created_at, updated_at`

const insertMatchQuery = `
	INSERT INTO matches (
		tournament_id, home_team_id, away_team_id, group_id, match_time, field, venue,
		stage, status, home_score, away_score, bracket_slot, home_source_match_id, away_source_match_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING id, created_at, updated_at`

func insertArgs(m *models.Match) []interface{} {
	return []interface{}{
		m.TournamentID, m.HomeTeamID, m.AwayTeamID, m.GroupID, m.MatchTime, m.Field, m.Venue,
		m.Stage, m.Status, m.HomeScore, m.AwayScore, m.BracketSlot, m.HomeSourceMatchID, m.AwaySourceMatchID,
	}
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	err := rowScanner.Scan(
		&m.ID, &m.TournamentID, &m.HomeTeamID, &m.AwayTeamID, &m.GroupID, &m.MatchTime, &m.Field, &m.Venue,
		&m.Stage, &m.Status, &m.HomeScore, &m.AwayScore, &m.BracketSlot, &m.HomeSourceMatchID, &m.AwaySourceMatchID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	if m.Status == "" {
		m.Status = models.MatchStatusScheduled
	}
	err := executor.QueryRowContext(ctx, insertMatchQuery, insertArgs(m)...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return r.handleMatchError(err)
}

type statementPreparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// CreateBatch inserts all matches through one prepared statement. Callers pass a
// transaction so a failure leaves nothing behind.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	preparer, ok := executor.(statementPreparer)
	if !ok {
		for _, m := range matches {
			if err := r.Create(ctx, executor, m); err != nil {
				return err
			}
		}
		return nil
	}

	stmt, err := preparer.PrepareContext(ctx, insertMatchQuery)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, m := range matches {
		if m.Status == "" {
			m.Status = models.MatchStatusScheduled
		}
		if err := stmt.QueryRowContext(ctx, insertArgs(m)...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return fmt.Errorf("CreateBatch failed for match #%d: %w", i+1, r.handleMatchError(err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, filter MatchFilter) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`
	args := []interface{}{tournamentID}
	argID := 2

	if filter.Stage != nil {
		query += fmt.Sprintf(" AND stage = $%d", argID)
		args = append(args, *filter.Stage)
		argID++
	}
	if filter.GroupID != nil {
		query += fmt.Sprintf(" AND group_id = $%d", argID)
		args = append(args, *filter.GroupID)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
	}
	query += " ORDER BY id ASC"

	return r.list(ctx, r.getExecutor(exec), query, args...)
}

func (r *postgresMatchRepository) ListByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE home_team_id = $1 OR away_team_id = $1
		ORDER BY id ASC`
	return r.list(ctx, r.getExecutor(exec), query, teamID)
}

func (r *postgresMatchRepository) ListRecentCompleted(ctx context.Context, limit int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE status = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT $2`
	return r.list(ctx, r.getExecutor(nil), query, models.MatchStatusCompleted, limit)
}

func (r *postgresMatchRepository) list(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountGroupStage(ctx context.Context, exec SQLExecutor, groupID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `SELECT COUNT(*) FROM matches WHERE group_id = $1 AND stage = $2`
	var n int
	if err := executor.QueryRowContext(ctx, query, groupID, models.StageGroup).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count group matches for group %d: %w", groupID, err)
	}
	return n, nil
}

func (r *postgresMatchRepository) FindBySlot(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage, slot int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1 AND stage = $2 AND bracket_slot = $3`
	return r.scanMatch(executor.QueryRowContext(ctx, query, tournamentID, stage, slot))
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, homeScore, awayScore int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET home_score = $1, away_score = $2, status = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, homeScore, awayScore, models.MatchStatusCompleted, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matches SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, status, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// UpdateSides writes both team slots and their source matches.
func (r *postgresMatchRepository) UpdateSides(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET home_team_id = $1, away_team_id = $2,
		    home_source_match_id = $3, away_source_match_id = $4,
		    updated_at = NOW()
		WHERE id = $5`
	result, err := executor.ExecContext(ctx, query,
		m.HomeTeamID, m.AwayTeamID, m.HomeSourceMatchID, m.AwaySourceMatchID, m.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET match_time = $1, field = $2, venue = $3, stage = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`
	err := executor.QueryRowContext(ctx, query, m.MatchTime, m.Field, m.Venue, m.Stage, m.ID).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchNotFound
		}
		return r.handleMatchError(err)
	}
	return nil
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	executor := r.getExecutor(nil)
	result, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteKnockout(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error) {
	executor := r.getExecutor(exec)
	query := `DELETE FROM matches WHERE tournament_id = $1 AND stage <> $2`
	result, err := executor.ExecContext(ctx, query, tournamentID, models.StageGroup)
	if err != nil {
		return 0, fmt.Errorf("failed to delete knockout matches of tournament %d: %w", tournamentID, err)
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) Count(ctx context.Context, status *models.MatchStatus) (int, error) {
	query := `SELECT COUNT(*) FROM matches`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	var n int
	if err := r.getExecutor(nil).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return n, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	pqErr, ok := asPQError(err)
	if !ok {
		return err
	}
	switch pqErr.Constraint {
	case "matches_bracket_slot_key":
		return ErrMatchSlotConflict
	case "matches_distinct_teams":
		return ErrMatchSameTeams
	case "matches_completed_scores":
		return ErrMatchScoresRequired
	case "matches_tournament_id_fkey":
		return ErrMatchInvalidTournament
	case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
		return ErrMatchInvalidTeam
	case "matches_group_id_fkey":
		return ErrMatchInvalidGroup
	}
	return err
}
