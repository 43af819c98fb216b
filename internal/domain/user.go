package domain

import (
	"context"
	"fmt"
	"time"
)

// ErrUserNotFound is returned when no user has the requested ID.
var ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

// User is an attendee registered through the bot, keyed by the messaging platform's numeric user ID.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsOrganizer  bool      `json:"is_organizer"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewUser returns a new User with the given fields.
func NewUser(id int64, name, email string, isOrganizer bool, registeredAt time.Time) *User {
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		IsOrganizer:  isOrganizer,
		RegisteredAt: registeredAt,
	}
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	// Register inserts the user or, when the ID already exists, overwrites name and email only.
	// IsOrganizer and RegisteredAt are applied on insert and never changed by a re-registration.
	Register(ctx context.Context, user *User) error
	// GetByID returns ErrUserNotFound when no row has the ID.
	GetByID(ctx context.Context, id int64) (*User, error)
	// SetOrganizer returns ErrUserNotFound when no row has the ID; it never creates one.
	SetOrganizer(ctx context.Context, id int64, isOrganizer bool) error
	// List returns all users ordered by name.
	List(ctx context.Context) ([]*User, error)
}

// UserService defines registration and role management.
type UserService interface {
	Register(ctx context.Context, id int64, name, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	SetOrganizer(ctx context.Context, id int64, isOrganizer bool) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// Authorizer answers whether a user may use organizer-only operations.
type Authorizer interface {
	IsOrganizer(ctx context.Context, userID int64) bool
}
