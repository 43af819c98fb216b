package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventqa/internal/domain"
)

const defaultEmailTimeout = 10 * time.Second

type userService struct {
	userRepo             domain.UserRepository
	emailService         domain.EmailService
	bootstrapOrganizerID int64
	emailTimeout         time.Duration
	logger               *slog.Logger
}

// NewUserService creates a UserService. A registration whose ID equals bootstrapOrganizerID
// is stored as an organizer; zero disables the bootstrap. emailService may be nil.
// The welcome email is bounded by emailTimeout (10s when not positive).
func NewUserService(userRepo domain.UserRepository, emailService domain.EmailService, bootstrapOrganizerID int64, emailTimeout time.Duration, logger *slog.Logger) domain.UserService {
	if emailTimeout <= 0 {
		emailTimeout = defaultEmailTimeout
	}
	return &userService{
		userRepo:             userRepo,
		emailService:         emailService,
		bootstrapOrganizerID: bootstrapOrganizerID,
		emailTimeout:         emailTimeout,
		logger:               logger,
	}
}

func (s *userService) Register(ctx context.Context, id int64, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	isOrganizer := s.bootstrapOrganizerID != 0 && id == s.bootstrapOrganizerID
	user := domain.NewUser(id, name, email, isOrganizer, time.Now().UTC())
	if err := s.userRepo.Register(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if s.emailService != nil {
		s.sendWelcome(ctx, user)
	}
	return user, nil
}

func (s *userService) sendWelcome(ctx context.Context, user *domain.User) {
	ctx, cancel := context.WithTimeout(ctx, s.emailTimeout)
	defer cancel()
	data := &domain.WelcomeMessageEmailData{Email: user.Email, Name: user.Name}
	if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
		s.logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
	}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) SetOrganizer(ctx context.Context, id int64, isOrganizer bool) (*domain.User, error) {
	if err := s.userRepo.SetOrganizer(ctx, id, isOrganizer); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to set organizer: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// Gate answers organizer checks from the user store.
type Gate struct {
	users  domain.UserRepository
	logger *slog.Logger
}

// NewGate returns an Authorizer backed by users.
func NewGate(users domain.UserRepository, logger *slog.Logger) *Gate {
	return &Gate{users: users, logger: logger}
}

// IsOrganizer reports false for unknown users and on storage errors.
func (g *Gate) IsOrganizer(ctx context.Context, userID int64) bool {
	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			g.logger.Error("organizer check failed", "user_id", userID, "error", err)
		}
		return false
	}
	return user.IsOrganizer
}
