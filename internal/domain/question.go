package domain

import (
	"context"
	"fmt"
	"time"
)

// ErrPresenterNotFound is returned when a name is not on the current schedule.
var ErrPresenterNotFound = fmt.Errorf("presenter %w", ErrNotFound)

// Question is an attendee's question for a presenter. UserName is the asker's
// name at submission time, not a live join.
type Question struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	UserName      string    `json:"user_name"`
	PresenterName string    `json:"presenter_name"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewQuestion returns a new Question. ID is set by the repository on create.
func NewQuestion(userID int64, userName, presenterName, text string, createdAt time.Time) *Question {
	return &Question{
		UserID:        userID,
		UserName:      userName,
		PresenterName: presenterName,
		Text:          text,
		CreatedAt:     createdAt,
	}
}

// QuestionFilter narrows a question listing. Empty fields do not filter.
type QuestionFilter struct {
	// PresenterName must match exactly.
	PresenterName string
	// UserName is a case-sensitive substring of the stored asker name.
	UserName string
}

// QuestionRepository defines the interface for question storage
type QuestionRepository interface {
	// Create returns ErrUserNotFound when UserID references no user.
	Create(ctx context.Context, q *Question) error
	// List returns matching questions, newest first.
	List(ctx context.Context, filter QuestionFilter) ([]*Question, error)
}

// QuestionNotifier is told about every stored question. It must not fail the submission.
type QuestionNotifier interface {
	QuestionSubmitted(ctx context.Context, q *Question)
}

// QuestionService defines question submission and review.
type QuestionService interface {
	Submit(ctx context.Context, userID int64, presenterName, text string) (*Question, error)
	List(ctx context.Context, filter QuestionFilter) ([]*Question, error)
}
