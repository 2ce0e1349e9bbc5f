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

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

// CreateEnrollment writes the payment row, reserves the seat and opens the
// completion record in one transaction. The partial unique index on
// (student_id, course_id) for SUCCESS payments makes concurrent duplicate
// enrollments lose here even though the handler's pre-check passed before
// the external charge.
func (p *PostgresPaymentRepository) CreateEnrollment(
	ctx context.Context,
	payment *domain.Payment,
	completion *domain.CourseCompletion) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO payments (student_id, course_id, amount, currency, status, payment_intent_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			payment.StudentID,
			payment.CourseID,
			payment.Amount,
			payment.Currency,
			payment.Status,
			payment.PaymentIntentID,
		).Scan(&payment.ID, &payment.CreatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrAlreadyEnrolled
			}

			return err
		}

		err = reserveSeat(ctx, tx, payment.CourseID)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO course_completions (student_id, course_id, status)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		return tx.QueryRow(
			ctx,
			query,
			completion.StudentID,
			completion.CourseID,
			completion.Status,
		).Scan(&completion.ID, &completion.CreatedAt)
	})
}

func (p *PostgresPaymentRepository) HasSuccessfulPayment(ctx context.Context, studentID, courseID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE student_id = $1 AND course_id = $2 AND status = 'SUCCESS'
		)
	`

	var exists bool

	err := p.db.QueryRow(ctx, query, studentID, courseID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresPaymentRepository) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	query := `
		SELECT id, student_id, course_id, amount, currency, status, payment_intent_id, created_at
		FROM payments
		WHERE id = $1
	`

	var payment domain.Payment

	err := p.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.StudentID,
		&payment.CourseID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.PaymentIntentID,
		&payment.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &payment, nil
}

func (p *PostgresPaymentRepository) GetDetailById(ctx context.Context, id int) (*domain.PaymentDetail, error) {
	query := `
		SELECT
			p.id, p.student_id, p.course_id, p.amount, p.currency, p.status, p.payment_intent_id, p.created_at,
			c.title,
			s.email
		FROM payments p
		JOIN courses c ON p.course_id = c.id
		JOIN students s ON p.student_id = s.id
		WHERE p.id = $1
	`

	var detail domain.PaymentDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.StudentID,
		&detail.CourseID,
		&detail.Amount,
		&detail.Currency,
		&detail.Status,
		&detail.PaymentIntentID,
		&detail.CreatedAt,
		&detail.CourseTitle,
		&detail.StudentEmail,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &detail, nil
}

func (p *PostgresPaymentRepository) GetAllByStudentId(
	ctx context.Context,
	studentID int,
	pagination domain.Pagination) ([]domain.Payment, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id, student_id, course_id, amount, currency, status, payment_intent_id, created_at
		FROM payments
		WHERE student_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, studentID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	totalRecords := 0

	for rows.Next() {
		var payment domain.Payment

		err := rows.Scan(
			&totalRecords,
			&payment.ID,
			&payment.StudentID,
			&payment.CourseID,
			&payment.Amount,
			&payment.Currency,
			&payment.Status,
			&payment.PaymentIntentID,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return payments, metadata, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
