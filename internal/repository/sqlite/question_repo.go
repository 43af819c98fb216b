package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"eventqa/internal/domain"
)

type questionRepository struct {
	DB *sql.DB
}

// NewQuestionRepository returns a domain.QuestionRepository implemented with SQLite.
func NewQuestionRepository(db *sql.DB) domain.QuestionRepository {
	return &questionRepository{DB: db}
}

func (r *questionRepository) Create(ctx context.Context, q *domain.Question) error {
	query := `
		INSERT INTO questions (user_id, user_name, presenter_name, question, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, q.UserID, q.UserName, q.PresenterName, q.Text, formatTime(q.CreatedAt)).Scan(&q.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
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
		conds = append(conds, "presenter_name = ?")
		args = append(args, filter.PresenterName)
	}
	if filter.UserName != "" {
		// instr is case-sensitive; LIKE is not for ASCII in SQLite.
		conds = append(conds, "instr(user_name, ?) > 0")
		args = append(args, filter.UserName)
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
		var createdAt string
		if err := rows.Scan(&q.ID, &q.UserID, &q.UserName, &q.PresenterName, &q.Text, &createdAt); err != nil {
			return nil, err
		}
		if q.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
