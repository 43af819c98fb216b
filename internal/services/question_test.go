package services

import (
	"context"
	"errors"
	"testing"

	"eventqa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuestionRepo implements domain.QuestionRepository for tests.
type fakeQuestionRepo struct {
	created    []*domain.Question
	createErr  error
	lastFilter domain.QuestionFilter
}

func (f *fakeQuestionRepo) Create(ctx context.Context, q *domain.Question) error {
	if f.createErr != nil {
		return f.createErr
	}
	q.ID = int64(len(f.created) + 1)
	f.created = append(f.created, q)
	return nil
}

func (f *fakeQuestionRepo) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	f.lastFilter = filter
	return nil, nil
}

type fakeNotifier struct {
	got []*domain.Question
}

func (f *fakeNotifier) QuestionSubmitted(ctx context.Context, q *domain.Question) {
	f.got = append(f.got, q)
}

func TestQuestionService_Submit(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	users.byID[42] = domain.NewUser(42, "Ali", "ali@example.com", false, fixedTime)

	t.Run("stores and notifies", func(t *testing.T) {
		questions := &fakeQuestionRepo{}
		notifier := &fakeNotifier{}
		svc := NewQuestionService(users, questions, notifier)

		q, err := svc.Submit(ctx, 42, "Sara", "How does it work?")
		require.NoError(t, err)
		assert.Equal(t, int64(1), q.ID)
		assert.Equal(t, "Ali", q.UserName)
		assert.Equal(t, "Sara", q.PresenterName)
		assert.False(t, q.CreatedAt.IsZero())
		require.Len(t, notifier.got, 1)
		assert.Same(t, q, notifier.got[0])
	})

	t.Run("unknown user", func(t *testing.T) {
		questions := &fakeQuestionRepo{}
		notifier := &fakeNotifier{}
		svc := NewQuestionService(users, questions, notifier)

		_, err := svc.Submit(ctx, 7, "Sara", "Hi")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Empty(t, questions.created)
		assert.Empty(t, notifier.got)
	})

	t.Run("storage failure skips notification", func(t *testing.T) {
		questions := &fakeQuestionRepo{createErr: errors.New("disk full")}
		notifier := &fakeNotifier{}
		svc := NewQuestionService(users, questions, notifier)

		_, err := svc.Submit(ctx, 42, "Sara", "Hi")
		require.Error(t, err)
		assert.Empty(t, notifier.got)
	})

	t.Run("blank text", func(t *testing.T) {
		svc := NewQuestionService(users, &fakeQuestionRepo{}, nil)
		_, err := svc.Submit(ctx, 42, "Sara", "  ")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("nil notifier", func(t *testing.T) {
		svc := NewQuestionService(users, &fakeQuestionRepo{}, nil)
		_, err := svc.Submit(ctx, 42, "Sara", "Hi")
		require.NoError(t, err)
	})
}

func TestQuestionService_List(t *testing.T) {
	questions := &fakeQuestionRepo{}
	svc := NewQuestionService(newFakeUserRepo(), questions, nil)

	got, err := svc.List(context.Background(), domain.QuestionFilter{PresenterName: "Sara", UserName: "  "})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, domain.QuestionFilter{PresenterName: "Sara"}, questions.lastFilter)

	_, err = svc.List(context.Background(), domain.QuestionFilter{UserName: " Ann"})
	require.NoError(t, err)
	assert.Equal(t, " Ann", questions.lastFilter.UserName)
}
