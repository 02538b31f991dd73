package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/config"
)

const (
	pingTimeout  = 5 * time.Second
	pingAttempts = 3
)

// Connect opens the pool and pings until the server answers, pingAttempts times at most.
// A database that is still starting up is waited for instead of failing the command.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	backoff := 500 * time.Millisecond
	for attempt := 1; ; attempt++ {
		err = ping(ctx, db)
		if err == nil {
			break
		}
		if attempt == pingAttempts {
			db.Close()
			return nil, fmt.Errorf("ping database after %d attempts: %w", attempt, err)
		}

		logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", backoff).Msg("database not ready")
		select {
		case <-ctx.Done():
			db.Close()
			return nil, fmt.Errorf("ping database: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	logger.Info().
		Int("max_open_conns", cfg.MaxOpenConns).
		Int("max_idle_conns", cfg.MaxIdleConns).
		Dur("conn_max_lifetime", cfg.ConnMaxLifetime).
		Msg("connected to database")
	return db, nil
}

func ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}
