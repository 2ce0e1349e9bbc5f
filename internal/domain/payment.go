package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment is the immutable record of one charge attempt's outcome. At most
// one SUCCESS payment may exist per (student, course) pair; the storage layer
// enforces this with a partial unique index, since the pre-check in the
// enrollment flow and the eventual write are separated by a slow external
// call.
type Payment struct {
	ID              int
	StudentID       int
	CourseID        int
	Amount          decimal.Decimal
	Currency        string
	Status          PaymentStatus
	PaymentIntentID *string
	CreatedAt       time.Time
}

// PaymentDetail joins a payment with the display fields of its course.
type PaymentDetail struct {
	Payment
	CourseTitle  string
	StudentEmail string
}

type PaymentRepository interface {
	// CreateEnrollment performs the single local transaction of a paid
	// enrollment: the payment row, the seat decrement and the initial
	// completion row commit or roll back together. It must only be called
	// after the external charge has succeeded.
	CreateEnrollment(ctx context.Context, payment *Payment, completion *CourseCompletion) error

	HasSuccessfulPayment(ctx context.Context, studentID, courseID int) (bool, error)
	GetById(ctx context.Context, id int) (*Payment, error)
	GetDetailById(ctx context.Context, id int) (*PaymentDetail, error)
	GetAllByStudentId(ctx context.Context, studentID int, pagination Pagination) ([]Payment, *Metadata, error)
}
