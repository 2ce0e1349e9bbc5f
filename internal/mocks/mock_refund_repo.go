package mocks

import (
	"context"

	"github.com/courseloop/course-enrollment-system/internal/domain"
)

type MockRefundRepo struct {
	domain.RefundRepository
	CreateFunc  func(ctx context.Context, refund *domain.Refund) error
	GetByIdFunc func(ctx context.Context, id int) (*domain.Refund, error)
	GetAllFunc  func(ctx context.Context, pagination domain.Pagination) ([]domain.Refund, *domain.Metadata, error)
	ApproveFunc func(ctx context.Context, refundID int, gatewayRef string, courseID int) error
	RejectFunc  func(ctx context.Context, refundID int) error
}

func (m *MockRefundRepo) Create(ctx context.Context, refund *domain.Refund) error {
	return m.CreateFunc(ctx, refund)
}

func (m *MockRefundRepo) GetById(ctx context.Context, id int) (*domain.Refund, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockRefundRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Refund, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockRefundRepo) Approve(ctx context.Context, refundID int, gatewayRef string, courseID int) error {
	return m.ApproveFunc(ctx, refundID, gatewayRef, courseID)
}

func (m *MockRefundRepo) Reject(ctx context.Context, refundID int) error {
	return m.RejectFunc(ctx, refundID)
}
