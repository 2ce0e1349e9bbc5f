package mocks

import (
	"context"

	"github.com/courseloop/course-enrollment-system/internal/domain"
)

type MockCourseRepo struct {
	domain.CourseRepository
	GetByIdFunc     func(ctx context.Context, id int) (*domain.Course, error)
	ReserveSeatFunc func(ctx context.Context, courseID int) error
	ReleaseSeatFunc func(ctx context.Context, courseID int) error
}

func (m *MockCourseRepo) GetById(ctx context.Context, id int) (*domain.Course, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockCourseRepo) ReserveSeat(ctx context.Context, courseID int) error {
	return m.ReserveSeatFunc(ctx, courseID)
}

func (m *MockCourseRepo) ReleaseSeat(ctx context.Context, courseID int) error {
	return m.ReleaseSeatFunc(ctx, courseID)
}
