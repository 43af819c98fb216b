package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventqa/internal/domain"
)

type questionRepository struct {
	DB *sql.DB
}

// NewQuestionRepository returns a domain.QuestionRepository implemented with Postgres.
func NewQuestionRepository(db *sql.DB) domain.QuestionRepository {
	return &questionRepository{DB: db}
}

func (r *questionRepository) Create(ctx context.Context, q *domain.Question) error {
	query := `
		INSERT INTO questions (user_id, user_name, presenter_name, question, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, q.UserID, q.UserName, q.PresenterName, q.Text, q.CreatedAt).Scan(&q.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *questionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	var (
		conds []string
		args  []any
	)
	if filter.PresenterName != "" {
		args = append(args, filter.PresenterName)
		conds = append(conds, fmt.Sprintf("presenter_name = $%d", len(args)))
	}
	if filter.UserName != "" {
		// strpos keeps % and _ in the filter literal, unlike LIKE.
		args = append(args, filter.UserName)
		conds = append(conds, fmt.Sprintf("strpos(user_name, $%d) > 0", len(args)))
	}

	query := `SELECT id, user_id, user_name, presenter_name, question, created_at FROM questions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]*domain.Question, 0)
	for rows.Next() {
		q := &domain.Question{}
		if err := rows.Scan(&q.ID, &q.UserID, &q.UserName, &q.PresenterName, &q.Text, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
