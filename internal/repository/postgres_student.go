package repository

import (
	"context"
	"errors"

	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStudentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStudentRepository(db *pgxpool.Pool) *PostgresStudentRepository {
	return &PostgresStudentRepository{
		db: db,
	}
}

func (p *PostgresStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		student.FirstName,
		student.LastName,
		student.Email,
		student.Password.Hash,
	).Scan(&student.ID, &student.CreatedAt, &student.Version)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrStudentAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresStudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return p.get(ctx, `WHERE email = $1`, email)
}

func (p *PostgresStudentRepository) GetById(ctx context.Context, id int) (*domain.Student, error) {
	return p.get(ctx, `WHERE id = $1`, id)
}

func (p *PostgresStudentRepository) get(ctx context.Context, where string, arg any) (*domain.Student, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, billing_customer_id, created_at, updated_at, version
		FROM students ` + where

	var student domain.Student

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.Password.Hash,
		&student.BillingCustomerID,
		&student.CreatedAt,
		&student.UpdatedAt,
		&student.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &student, nil
}

func (p *PostgresStudentRepository) SetBillingCustomerID(ctx context.Context, studentID int, customerID string) error {
	query := `
		UPDATE students
		SET billing_customer_id = $1, updated_at = NOW(), version = version + 1
		WHERE id = $2 AND billing_customer_id IS NULL
	`

	tag, err := p.db.Exec(ctx, query, customerID, studentID)
	if err != nil {
		return err
	}

	// Zero rows means either the student is gone or another request already
	// attached a billing profile; both surface as an edit conflict.
	if tag.RowsAffected() == 0 {
		return domain.ErrEditConflict
	}

	return nil
}
