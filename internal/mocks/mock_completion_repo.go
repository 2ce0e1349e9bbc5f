package mocks

import (
	"context"

	"github.com/courseloop/course-enrollment-system/internal/domain"
)

type MockCompletionRepo struct {
	domain.CompletionRepository
	CreateFunc  func(ctx context.Context, completion *domain.CourseCompletion) error
	GetByIdFunc func(ctx context.Context, id int) (*domain.CourseCompletion, error)
	UpdateFunc  func(ctx context.Context, completion *domain.CourseCompletion) error
}

func (m *MockCompletionRepo) Create(ctx context.Context, completion *domain.CourseCompletion) error {
	return m.CreateFunc(ctx, completion)
}

func (m *MockCompletionRepo) GetById(ctx context.Context, id int) (*domain.CourseCompletion, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockCompletionRepo) Update(ctx context.Context, completion *domain.CourseCompletion) error {
	return m.UpdateFunc(ctx, completion)
}
