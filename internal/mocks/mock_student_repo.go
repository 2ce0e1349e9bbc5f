package mocks

import (
	"context"

	"github.com/courseloop/course-enrollment-system/internal/domain"
)

type MockStudentRepo struct {
	domain.StudentRepository
	CreateFunc               func(ctx context.Context, student *domain.Student) error
	GetByEmailFunc           func(ctx context.Context, email string) (*domain.Student, error)
	GetByIdFunc              func(ctx context.Context, id int) (*domain.Student, error)
	SetBillingCustomerIDFunc func(ctx context.Context, studentID int, customerID string) error
}

func (m *MockStudentRepo) Create(ctx context.Context, student *domain.Student) error {
	return m.CreateFunc(ctx, student)
}

func (m *MockStudentRepo) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockStudentRepo) GetById(ctx context.Context, id int) (*domain.Student, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockStudentRepo) SetBillingCustomerID(ctx context.Context, studentID int, customerID string) error {
	return m.SetBillingCustomerIDFunc(ctx, studentID, customerID)
}
