package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventqa/internal/domain"
)

type questionService struct {
	userRepo     domain.UserRepository
	questionRepo domain.QuestionRepository
	notifier     domain.QuestionNotifier
}

// NewQuestionService returns a QuestionService. notifier may be nil.
func NewQuestionService(userRepo domain.UserRepository, questionRepo domain.QuestionRepository, notifier domain.QuestionNotifier) domain.QuestionService {
	return &questionService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		notifier:     notifier,
	}
}

func (s *questionService) Submit(ctx context.Context, userID int64, presenterName, text string) (*domain.Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: question text is required", domain.ErrInvalidInput)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get asker: %w", err)
	}

	q := domain.NewQuestion(user.ID, user.Name, presenterName, text, time.Now().UTC())
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	if s.notifier != nil {
		s.notifier.QuestionSubmitted(ctx, q)
	}
	return q, nil
}

func (s *questionService) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	// A blank user filter matches everyone; anything else is a literal substring.
	if strings.TrimSpace(filter.UserName) == "" {
		filter.UserName = ""
	}
	questions, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if questions == nil {
		questions = []*domain.Question{}
	}
	return questions, nil
}
