package repository

import (
	"context"
	"errors"

	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCompletionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCompletionRepository(db *pgxpool.Pool) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{
		db: db,
	}
}

func (p *PostgresCompletionRepository) Create(ctx context.Context, completion *domain.CourseCompletion) error {
	query := `
		INSERT INTO course_completions (student_id, course_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		completion.StudentID,
		completion.CourseID,
		completion.Status,
	).Scan(&completion.ID, &completion.CreatedAt)
}

func (p *PostgresCompletionRepository) GetById(ctx context.Context, id int) (*domain.CourseCompletion, error) {
	query := `
		SELECT id, student_id, course_id, status, completed_at, created_at, updated_at
		FROM course_completions
		WHERE id = $1
	`

	var completion domain.CourseCompletion

	err := p.db.QueryRow(ctx, query, id).Scan(
		&completion.ID,
		&completion.StudentID,
		&completion.CourseID,
		&completion.Status,
		&completion.CompletedAt,
		&completion.CreatedAt,
		&completion.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &completion, nil
}

func (p *PostgresCompletionRepository) Update(ctx context.Context, completion *domain.CourseCompletion) error {
	query := `
		UPDATE course_completions
		SET status = $1, completed_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := p.db.Exec(ctx, query, completion.Status, completion.CompletedAt, completion.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
