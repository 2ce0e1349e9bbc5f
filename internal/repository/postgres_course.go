package repository

import (
	"context"
	"errors"

	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the seat ledger
// primitives can run standalone or inside the enrollment transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresCourseRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCourseRepository(db *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: db,
	}
}

func (p *PostgresCourseRepository) GetById(ctx context.Context, id int) (*domain.Course, error) {
	query := `
		SELECT id, title, price, available_seats, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var course domain.Course

	err := p.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Price,
		&course.AvailableSeats,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &course, nil
}

func (p *PostgresCourseRepository) ReserveSeat(ctx context.Context, courseID int) error {
	return reserveSeat(ctx, p.db, courseID)
}

func (p *PostgresCourseRepository) ReleaseSeat(ctx context.Context, courseID int) error {
	return releaseSeat(ctx, p.db, courseID)
}

// reserveSeat is the atomic check-and-decrement of the seat ledger. The
// condition rides on the UPDATE itself, so concurrent callers can never
// drive available_seats below zero.
func reserveSeat(ctx context.Context, q querier, courseID int) error {
	query := `
		UPDATE courses
		SET available_seats = available_seats - 1, updated_at = NOW()
		WHERE id = $1 AND available_seats > 0
	`

	tag, err := q.Exec(ctx, query, courseID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		var exists bool

		err = q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists)
		if err != nil {
			return err
		}

		if !exists {
			return domain.ErrRecordNotFound
		}

		return domain.ErrNoSeatsAvailable
	}

	return nil
}

func releaseSeat(ctx context.Context, q querier, courseID int) error {
	query := `
		UPDATE courses
		SET available_seats = available_seats + 1, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, courseID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
