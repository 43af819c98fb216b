package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventqa/internal/domain"
)

type presenterRepository struct {
	DB *sql.DB
}

// NewPresenterRepository returns a domain.PresenterRepository implemented with Postgres.
func NewPresenterRepository(db *sql.DB) domain.PresenterRepository {
	return &presenterRepository{DB: db}
}

func (r *presenterRepository) Add(ctx context.Context, p *domain.Presenter) (domain.AddOutcome, error) {
	query := `
		INSERT INTO presenters (name, title, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.Name, nullString(p.Title), nullString(p.StartTime), nullString(p.EndTime)).
		Scan(&p.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AddExisted, nil
		}
		return 0, err
	}
	return domain.AddCreated, nil
}

func (r *presenterRepository) Upsert(ctx context.Context, presenters []*domain.Presenter) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO presenters (name, title, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET title = EXCLUDED.title, start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time
	`
	for _, p := range presenters {
		if _, err = tx.ExecContext(ctx, query, p.Name, nullString(p.Title), nullString(p.StartTime), nullString(p.EndTime)); err != nil {
			return fmt.Errorf("upsert presenter %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

func (r *presenterRepository) List(ctx context.Context) ([]*domain.Presenter, error) {
	query := `
		SELECT id, name, title, start_time, end_time
		FROM presenters
		ORDER BY start_time ASC NULLS FIRST, name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presenters := make([]*domain.Presenter, 0)
	for rows.Next() {
		p := &domain.Presenter{}
		var title, start, end sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &title, &start, &end); err != nil {
			return nil, err
		}
		p.Title = title.String
		p.StartTime = start.String
		p.EndTime = end.String
		presenters = append(presenters, p)
	}
	return presenters, rows.Err()
}
