package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventqa/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Register(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, is_organizer, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email
		RETURNING is_organizer, registered_at
	`
	return r.DB.QueryRowContext(ctx, query, u.ID, u.Name, u.Email, u.IsOrganizer, u.RegisteredAt).
		Scan(&u.IsOrganizer, &u.RegisteredAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, email, is_organizer, registered_at
		FROM users
		WHERE id = $1
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.IsOrganizer, &u.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) SetOrganizer(ctx context.Context, id int64, isOrganizer bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET is_organizer = $2 WHERE id = $1`, id, isOrganizer)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, name, email, is_organizer, registered_at
		FROM users
		ORDER BY name, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.IsOrganizer, &u.RegisteredAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
