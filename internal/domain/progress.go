package domain

import (
	"context"
	"fmt"
	"time"
)

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "NOT_STARTED"
	ProgressInProgress ProgressStatus = "IN_PROGRESS"
	ProgressCompleted  ProgressStatus = "COMPLETED"
)

func (s ProgressStatus) Valid() bool {
	switch s {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	}
	return false
}

// IllegalTransitionError names the rejected source/target pair of a course
// completion transition.
type IllegalTransitionError struct {
	From ProgressStatus
	To   ProgressStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal course progress transition from %s to %s", e.From, e.To)
}

// CourseCompletion tracks a student's advancement through one course.
// Created NOT_STARTED through the standalone progress endpoint, or directly
// IN_PROGRESS when opened by the paid enrollment flow.
type CourseCompletion struct {
	ID          int
	StudentID   int
	CourseID    int
	Status      ProgressStatus
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Transition advances the completion to target. Legal moves are
// NOT_STARTED→IN_PROGRESS and IN_PROGRESS→COMPLETED; a same-state target is
// a no-op success so clients are not penalized for re-sending the current
// status. On the move into COMPLETED the CompletedAt timestamp is set and is
// immutable thereafter.
func (c *CourseCompletion) Transition(target ProgressStatus, now time.Time) error {
	if target == c.Status {
		return nil
	}

	legal := (c.Status == ProgressNotStarted && target == ProgressInProgress) ||
		(c.Status == ProgressInProgress && target == ProgressCompleted)

	if !legal {
		return &IllegalTransitionError{From: c.Status, To: target}
	}

	c.Status = target
	if target == ProgressCompleted {
		c.CompletedAt = &now
	}

	return nil
}

type CompletionRepository interface {
	Create(ctx context.Context, completion *CourseCompletion) error
	GetById(ctx context.Context, id int) (*CourseCompletion, error)
	Update(ctx context.Context, completion *CourseCompletion) error
}
