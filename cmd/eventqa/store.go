package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventqa/config"
	"eventqa/internal/domain"
	"eventqa/internal/repository/postgres"
	"eventqa/internal/repository/sqlite"
)

type store struct {
	db         *sql.DB
	users      domain.UserRepository
	presenters domain.PresenterRepository
	questions  domain.QuestionRepository
}

// openStore connects to the configured database and creates missing tables.
func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	if cfg.UsesSQLite() {
		db, err := sqlite.Open(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		return &store{
			db:         db,
			users:      sqlite.NewUserRepository(db),
			presenters: sqlite.NewPresenterRepository(db),
			questions:  sqlite.NewQuestionRepository(db),
		}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating postgres: %w", err)
	}
	return &store{
		db:         db,
		users:      postgres.NewUserRepository(db),
		presenters: postgres.NewPresenterRepository(db),
		questions:  postgres.NewQuestionRepository(db),
	}, nil
}
