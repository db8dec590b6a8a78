package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/beanstream-payments/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Executor is what the journal needs from a pool or transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB owns the pool backing the payment journal. It is only opened when the
// journal is enabled in config; the payments client never touches it.
type DB struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect opens the journal pool and pings it, so a misconfigured database
// fails the command before any gateway call is made.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "journal_db")

	pgxCfg, err := cfg.PgxConfig(ctx)
	if err != nil {
		logger.Error("invalid journal database config", "error", err)
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		logger.Error("failed to open journal pool", "host", cfg.Host, "database", cfg.Name, "error", err)
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("journal database unreachable", "host", cfg.Host, "port", cfg.Port, "error", err)
		pool.Close()
		return nil, err
	}

	logger.Debug("journal database ready",
		"host", cfg.Host,
		"database", cfg.Name,
		"max_conns", pgxCfg.MaxConns,
	)

	return &DB{
		Pool:   pool,
		logger: logger,
	}, nil
}

func (db *DB) Close() {
	db.logger.Debug("closing journal pool")
	db.Pool.Close()
}

// IsUniqueViolation reports a duplicate journal entry id.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
