package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Course struct {
	ID             int
	Title          string
	Price          decimal.Decimal
	AvailableSeats int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CourseRepository is the seat ledger. ReserveSeat must be a single atomic
// conditional update ("decrement where available_seats > 0"), never a
// read-then-write pair: under concurrent callers no more seats may be taken
// than were available at call time.
type CourseRepository interface {
	GetById(ctx context.Context, id int) (*Course, error)
	ReserveSeat(ctx context.Context, courseID int) error
	ReleaseSeat(ctx context.Context, courseID int) error
}
