package domain

import (
	"context"
	"time"
)

type RefundStatus string

const (
	RefundStatusPending  RefundStatus = "PENDING"
	RefundStatusApproved RefundStatus = "APPROVED"
	RefundStatusRejected RefundStatus = "REJECTED"
)

// Refund is a request to reverse exactly one payment. It is created PENDING
// and moves to APPROVED or REJECTED once, after which no further transitions
// are permitted.
type Refund struct {
	ID          int
	PaymentID   int
	Reason      *string
	Status      RefundStatus
	GatewayRef  *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	CompletedAt *time.Time
}

func (r *Refund) IsTerminal() bool {
	return r.Status == RefundStatusApproved || r.Status == RefundStatusRejected
}

type RefundRepository interface {
	Create(ctx context.Context, refund *Refund) error
	GetById(ctx context.Context, id int) (*Refund, error)
	GetAll(ctx context.Context, pagination Pagination) ([]Refund, *Metadata, error)

	// Approve records a successful gateway refund and releases the course
	// seat in the same transaction.
	Approve(ctx context.Context, refundID int, gatewayRef string, courseID int) error

	// Reject marks the refund as failed at the gateway. Terminal.
	Reject(ctx context.Context, refundID int) error
}
