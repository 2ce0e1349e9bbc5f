package mocks

import (
	"context"

	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentGateway struct {
	mock.Mock
	domain.PaymentGateway
}

func (m *MockPaymentGateway) CreateCustomer(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) AttachPaymentMethod(ctx context.Context, customerRef, methodRef string) (string, error) {
	args := m.Called(ctx, customerRef, methodRef)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) ListPaymentMethods(ctx context.Context, customerRef string) ([]domain.CardSummary, error) {
	args := m.Called(ctx, customerRef)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.CardSummary), args.Error(1)
}

func (m *MockPaymentGateway) ChargeAndConfirm(ctx context.Context, req domain.ChargeRequest) (*domain.Charge, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Charge), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, chargeRef, idempotencyKey string) (string, error) {
	args := m.Called(ctx, chargeRef, idempotencyKey)
	return args.String(0), args.Error(1)
}
