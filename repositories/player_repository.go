package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/soccer-cup/models"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerInvalidTeam   = errors.New("invalid team reference")
	ErrPlayerJerseyTaken   = errors.New("jersey number already used in this team")
	ErrPlayerInvalidFields = errors.New("player field out of range")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	// ListByTeam возвращает заявку команды по номерам, игроки без номера в конце.
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	UpdateStats(ctx context.Context, id int, stats models.PlayerStats) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	TopScorers(ctx context.Context, limit int) ([]*models.Player, error)
	// Search ищет подстроку в имени, фамилии или гражданстве без учёта регистра.
	Search(ctx context.Context, query string) ([]*models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `
	id, team_id, first_name, last_name, jersey_number, position, nationality, date_of_birth,
	goals_scored, assists, yellow_cards, red_cards, minutes_played, matches_played,
	created_at, updated_at`

func scanPlayer(row interface{ Scan(dest ...any) error }) (*models.Player, error) {
	p := &models.Player{}
	err := row.Scan(
		&p.ID, &p.TeamID, &p.FirstName, &p.LastName, &p.JerseyNumber, &p.Position, &p.Nationality, &p.DateOfBirth,
		&p.GoalsScored, &p.Assists, &p.YellowCards, &p.RedCards, &p.MinutesPlayed, &p.MatchesPlayed,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (team_id, first_name, last_name, jersey_number, position, nationality, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.TeamID, p.FirstName, p.LastName, p.JerseyNumber, p.Position, p.Nationality, p.DateOfBirth,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		WHERE team_id = $1
		ORDER BY jersey_number ASC NULLS LAST, id ASC`
	return r.list(ctx, query, teamID)
}

func (r *postgresPlayerRepository) TopScorers(ctx context.Context, limit int) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		ORDER BY goals_scored DESC, assists DESC, id ASC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *postgresPlayerRepository) Search(ctx context.Context, q string) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		WHERE strpos(lower(first_name), lower($1)) > 0
		   OR strpos(lower(last_name), lower($1)) > 0
		   OR strpos(lower(COALESCE(nationality, '')), lower($1)) > 0
		ORDER BY last_name ASC, first_name ASC, id ASC`
	return r.list(ctx, query, q)
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan player: %w", scanErr)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateStats(ctx context.Context, id int, st models.PlayerStats) error {
	query := `
		UPDATE players SET
			goals_scored = $1,
			assists = $2,
			yellow_cards = $3,
			red_cards = $4,
			minutes_played = $5,
			matches_played = $6,
			updated_at = NOW()
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		st.GoalsScored, st.Assists, st.YellowCards, st.RedCards, st.MinutesPlayed, st.MatchesPlayed, id)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	pqErr, ok := asPQError(err)
	if !ok {
		return err
	}
	switch {
	case pqErr.Code == pqUniqueViolation && pqErr.Constraint == "players_team_jersey_key":
		return ErrPlayerJerseyTaken
	case pqErr.Code == pqForeignKeyViolation && pqErr.Constraint == "players_team_id_fkey":
		return ErrPlayerInvalidTeam
	case pqErr.Code == pqCheckViolation:
		return ErrPlayerInvalidFields
	}
	return err
}
