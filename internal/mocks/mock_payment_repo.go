package mocks

import (
	"context"

	"github.com/courseloop/course-enrollment-system/internal/domain"
)

type MockPaymentRepo struct {
	domain.PaymentRepository
	CreateEnrollmentFunc     func(ctx context.Context, payment *domain.Payment, completion *domain.CourseCompletion) error
	HasSuccessfulPaymentFunc func(ctx context.Context, studentID, courseID int) (bool, error)
	GetByIdFunc              func(ctx context.Context, id int) (*domain.Payment, error)
	GetDetailByIdFunc        func(ctx context.Context, id int) (*domain.PaymentDetail, error)
	GetAllByStudentIdFunc    func(ctx context.Context, studentID int, pagination domain.Pagination) ([]domain.Payment, *domain.Metadata, error)
}

func (m *MockPaymentRepo) CreateEnrollment(ctx context.Context, payment *domain.Payment, completion *domain.CourseCompletion) error {
	return m.CreateEnrollmentFunc(ctx, payment, completion)
}

func (m *MockPaymentRepo) HasSuccessfulPayment(ctx context.Context, studentID, courseID int) (bool, error) {
	return m.HasSuccessfulPaymentFunc(ctx, studentID, courseID)
}

func (m *MockPaymentRepo) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockPaymentRepo) GetDetailById(ctx context.Context, id int) (*domain.PaymentDetail, error) {
	return m.GetDetailByIdFunc(ctx, id)
}

func (m *MockPaymentRepo) GetAllByStudentId(ctx context.Context, studentID int, pagination domain.Pagination) ([]domain.Payment, *domain.Metadata, error) {
	return m.GetAllByStudentIdFunc(ctx, studentID, pagination)
}
