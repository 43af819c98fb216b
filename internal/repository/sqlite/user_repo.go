package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"eventqa/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

// NewUserRepository returns a domain.UserRepository implemented with SQLite.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Register(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, is_organizer, registered_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = excluded.name, email = excluded.email
		RETURNING is_organizer, registered_at
	`
	var registeredAt string
	err := r.DB.QueryRowContext(ctx, query, u.ID, u.Name, u.Email, u.IsOrganizer, formatTime(u.RegisteredAt)).
		Scan(&u.IsOrganizer, &registeredAt)
	if err != nil {
		return err
	}
	u.RegisteredAt, err = parseTime(registeredAt)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, email, is_organizer, registered_at
		FROM users
		WHERE id = ?
	`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) SetOrganizer(ctx context.Context, id int64, isOrganizer bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET is_organizer = ? WHERE id = ?`, isOrganizer, id)
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
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, is_organizer, registered_at
		FROM users
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var registeredAt string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.IsOrganizer, &registeredAt); err != nil {
		return nil, err
	}
	var err error
	u.RegisteredAt, err = parseTime(registeredAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
