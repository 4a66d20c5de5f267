package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/soccer-cup/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamInvalidTournament = errors.New("invalid tournament reference")
	ErrTeamInvalidGroup      = errors.New("invalid group reference")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Team, error)
	ListByGroup(ctx context.Context, exec SQLExecutor, groupID int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateGroup(ctx context.Context, id int, groupID *int) error
	// SetQualified marks exactly the given teams of the tournament as qualified and clears the flag on the rest.
	SetQualified(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs []int) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, tournament_id, group_id, name, city, logo_url, qualified_for_knockout, created_at`

func scanTeam(row interface{ Scan(dest ...any) error }, t *models.Team) error {
	return row.Scan(
		&t.ID, &t.TournamentID, &t.GroupID, &t.Name, &t.City, &t.LogoURL, &t.QualifiedForKnockout, &t.CreatedAt,
	)
}

func (r *postgresTeamRepository) Create(ctx context.Context, t *models.Team) error {
	executor := r.getExecutor(nil)
	query := `
		INSERT INTO teams (tournament_id, group_id, name, city, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, qualified_for_knockout, created_at`

	err := executor.QueryRowContext(ctx, query, t.TournamentID, t.GroupID, t.Name, t.City, t.LogoURL).
		Scan(&t.ID, &t.QualifiedForKnockout, &t.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	t := &models.Team{}
	if err := scanTeam(executor.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE tournament_id = $1 ORDER BY id ASC`
	return r.list(ctx, r.getExecutor(exec), query, tournamentID)
}

// ListByGroup returns the group's teams ordered by id; standings and fixture
// generation depend on this order.
func (r *postgresTeamRepository) ListByGroup(ctx context.Context, exec SQLExecutor, groupID int) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE group_id = $1 ORDER BY id ASC`
	return r.list(ctx, r.getExecutor(exec), query, groupID)
}

func (r *postgresTeamRepository) list(ctx context.Context, executor SQLExecutor, query string, arg int) ([]*models.Team, error) {
	rows, err := executor.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t := &models.Team{}
		if scanErr := scanTeam(rows, t); scanErr != nil {
			return nil, fmt.Errorf("failed to scan team: %w", scanErr)
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, t *models.Team) error {
	executor := r.getExecutor(nil)
	query := `UPDATE teams SET name = $1, city = $2, logo_url = $3 WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, t.Name, t.City, t.LogoURL, t.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateGroup(ctx context.Context, id int, groupID *int) error {
	executor := r.getExecutor(nil)
	result, err := executor.ExecContext(ctx, `UPDATE teams SET group_id = $1 WHERE id = $2`, groupID, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) SetQualified(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs []int) error {
	executor := r.getExecutor(exec)
	ids := make([]int64, len(teamIDs))
	for i, id := range teamIDs {
		ids[i] = int64(id)
	}
	query := `
		UPDATE teams
		SET qualified_for_knockout = (id = ANY($2))
		WHERE tournament_id = $1`
	if _, err := executor.ExecContext(ctx, query, tournamentID, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to update qualification for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	executor := r.getExecutor(nil)
	result, err := executor.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.getExecutor(nil).QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return n, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok && pqErr.Code == pqForeignKeyViolation {
		switch pqErr.Constraint {
		case "teams_tournament_id_fkey":
			return ErrTeamInvalidTournament
		case "teams_group_id_fkey":
			return ErrTeamInvalidGroup
		}
	}
	return err
}
