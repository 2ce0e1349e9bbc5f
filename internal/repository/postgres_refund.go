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

type PostgresRefundRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRefundRepository(db *pgxpool.Pool) *PostgresRefundRepository {
	return &PostgresRefundRepository{
		db: db,
	}
}

func (p *PostgresRefundRepository) Create(ctx context.Context, refund *domain.Refund) error {
	query := `
		INSERT INTO refunds (payment_id, reason, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		refund.PaymentID,
		refund.Reason,
		refund.Status,
	).Scan(&refund.ID, &refund.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return domain.ErrRefundAlreadyRequested
			case pgerrcode.ForeignKeyViolation:
				return domain.ErrRecordNotFound
			}
		}

		return err
	}

	return nil
}

func (p *PostgresRefundRepository) GetById(ctx context.Context, id int) (*domain.Refund, error) {
	query := `
		SELECT id, payment_id, reason, status, gateway_ref, created_at, updated_at, completed_at
		FROM refunds
		WHERE id = $1
	`

	var refund domain.Refund

	err := p.db.QueryRow(ctx, query, id).Scan(
		&refund.ID,
		&refund.PaymentID,
		&refund.Reason,
		&refund.Status,
		&refund.GatewayRef,
		&refund.CreatedAt,
		&refund.UpdatedAt,
		&refund.CompletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &refund, nil
}

func (p *PostgresRefundRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Refund, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id, payment_id, reason, status, gateway_ref, created_at, updated_at, completed_at
		FROM refunds
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	refunds := make([]domain.Refund, 0)
	totalRecords := 0

	for rows.Next() {
		var refund domain.Refund

		err := rows.Scan(
			&totalRecords,
			&refund.ID,
			&refund.PaymentID,
			&refund.Reason,
			&refund.Status,
			&refund.GatewayRef,
			&refund.CreatedAt,
			&refund.UpdatedAt,
			&refund.CompletedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		refunds = append(refunds, refund)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return refunds, metadata, nil
}

// Approve moves a PENDING refund to APPROVED and gives the seat back to the
// course in the same transaction. The status predicate makes the terminal
// transition single-shot: a concurrent confirm loses with an edit conflict.
func (p *PostgresRefundRepository) Approve(ctx context.Context, refundID int, gatewayRef string, courseID int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE refunds
			SET status = 'APPROVED', gateway_ref = $1, completed_at = NOW(), updated_at = NOW()
			WHERE id = $2 AND status = 'PENDING'
		`

		tag, err := tx.Exec(ctx, query, gatewayRef, refundID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrEditConflict
		}

		return releaseSeat(ctx, tx, courseID)
	})
}

func (p *PostgresRefundRepository) Reject(ctx context.Context, refundID int) error {
	query := `
		UPDATE refunds
		SET status = 'REJECTED', completed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`

	tag, err := p.db.Exec(ctx, query, refundID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEditConflict
	}

	return nil
}
