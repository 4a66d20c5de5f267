package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
)

type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgreSQL error codes the repositories distinguish.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// tournamentLockNamespace is the first key of pg_advisory_xact_lock(int, int);
// the tournament id is the second.
const tournamentLockNamespace = 7101

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Return the caller's not-found sentinel
	}
	return nil
}

func asPQError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// TxManager owns the transactional boundary of mutating engine operations.
type TxManager interface {
	// WithinTournament runs fn in one transaction holding an exclusive advisory
	// lock on the tournament, so check-then-act sequences cannot interleave.
	WithinTournament(ctx context.Context, tournamentID int, fn func(exec SQLExecutor) error) error
}

type postgresTxManager struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresTxManager(db *sql.DB, logger *slog.Logger) TxManager {
	return &postgresTxManager{db: db, logger: logger}
}

func (m *postgresTxManager) WithinTournament(ctx context.Context, tournamentID int, fn func(exec SQLExecutor) error) (txErr error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				m.logger.ErrorContext(ctx, "rollback failed",
					slog.Int("tournament_id", tournamentID), slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction for tournament %d: %w", tournamentID, cErr)
		}
	}()

	if _, txErr = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, tournamentLockNamespace, tournamentID); txErr != nil {
		return fmt.Errorf("failed to lock tournament %d: %w", tournamentID, txErr)
	}

	txErr = fn(tx)
	return txErr
}
