package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"eventqa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo implements domain.UserRepository with the same upsert rules as the SQL stores.
type fakeUserRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.User
	getErr error
	regErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Register(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.regErr != nil {
		return f.regErr
	}
	if existing, ok := f.byID[u.ID]; ok {
		existing.Name = u.Name
		existing.Email = u.Email
		u.IsOrganizer = existing.IsOrganizer
		u.RegisteredAt = existing.RegisteredAt
		return nil
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SetOrganizer(ctx context.Context, id int64, isOrganizer bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsOrganizer = isOrganizer
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	users := make([]*domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// fakeEmailService records welcome emails.
type fakeEmailService struct {
	sent []*domain.WelcomeMessageEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}

// stalledEmailService blocks until its context ends.
type stalledEmailService struct{}

func (stalledEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("new user", func(t *testing.T) {
		repo := newFakeUserRepo()
		mail := &fakeEmailService{}
		svc := NewUserService(repo, mail, 0, time.Second, discardLogger())

		u, err := svc.Register(ctx, 42, " Ali ", "ali@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(42), u.ID)
		assert.Equal(t, "Ali", u.Name)
		assert.False(t, u.IsOrganizer)
		assert.False(t, u.RegisteredAt.IsZero())
		require.Len(t, mail.sent, 1)
		assert.Equal(t, "ali@example.com", mail.sent[0].Email)
	})

	t.Run("bootstrap organizer", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo, nil, 7, time.Second, discardLogger())

		u, err := svc.Register(ctx, 7, "Sara", "sara@example.com")
		require.NoError(t, err)
		assert.True(t, u.IsOrganizer)

		other, err := svc.Register(ctx, 8, "Reza", "reza@example.com")
		require.NoError(t, err)
		assert.False(t, other.IsOrganizer)
	})

	t.Run("re-registration keeps role", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo, nil, 0, time.Second, discardLogger())
		_, err := svc.Register(ctx, 42, "Ali", "ali@example.com")
		require.NoError(t, err)
		_, err = svc.SetOrganizer(ctx, 42, true)
		require.NoError(t, err)

		u, err := svc.Register(ctx, 42, "Ali R", "ali@work.example")
		require.NoError(t, err)
		assert.True(t, u.IsOrganizer)
		assert.Equal(t, "Ali R", repo.byID[42].Name)
		assert.Equal(t, "ali@work.example", repo.byID[42].Email)
	})

	t.Run("welcome email failure is not fatal", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), &fakeEmailService{err: errors.New("smtp down")}, 0, time.Second, discardLogger())
		_, err := svc.Register(ctx, 1, "Ali", "ali@example.com")
		require.NoError(t, err)
	})

	t.Run("stalled welcome email is bounded", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo, stalledEmailService{}, 0, 50*time.Millisecond, discardLogger())

		done := make(chan error, 1)
		go func() {
			_, err := svc.Register(context.WithoutCancel(ctx), 42, "Ali", "ali@example.com")
			done <- err
		}()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("Register did not return while the welcome email stalled")
		}
		assert.Contains(t, repo.byID, int64(42))
	})

	tests := []struct {
		name  string
		uname string
		email string
	}{
		{"blank name", "   ", "ali@example.com"},
		{"email without at", "Ali", "not-an-email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc := NewUserService(repo, nil, 0, time.Second, discardLogger())
			_, err := svc.Register(ctx, 42, tt.uname, tt.email)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, repo.byID)
		})
	}

	t.Run("storage error", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.regErr = errors.New("connection reset")
		svc := NewUserService(repo, nil, 0, time.Second, discardLogger())
		_, err := svc.Register(ctx, 42, "Ali", "ali@example.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to register user")
	})
}

func TestUserService_SetOrganizer(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, 0, time.Second, discardLogger())
	_, err := svc.Register(ctx, 42, "Ali", "ali@example.com")
	require.NoError(t, err)

	u, err := svc.SetOrganizer(ctx, 42, true)
	require.NoError(t, err)
	assert.True(t, u.IsOrganizer)

	_, err = svc.SetOrganizer(ctx, 99, true)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NotContains(t, repo.byID, int64(99))
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, 0, time.Second, discardLogger())

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	repo.getErr = errors.New("boom")
	_, err = svc.List(ctx)
	require.Error(t, err)
}

func TestGate_IsOrganizer(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	repo.byID[1] = domain.NewUser(1, "Sara", "s@example.com", true, fixedTime)
	repo.byID[2] = domain.NewUser(2, "Ali", "a@example.com", false, fixedTime)
	gate := NewGate(repo, discardLogger())

	assert.True(t, gate.IsOrganizer(ctx, 1))
	assert.False(t, gate.IsOrganizer(ctx, 2))
	assert.False(t, gate.IsOrganizer(ctx, 3))

	repo.getErr = errors.New("db down")
	assert.False(t, gate.IsOrganizer(ctx, 1))
}
