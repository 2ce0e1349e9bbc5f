package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/courseloop/course-enrollment-system/internal/domain"
)

// MockGateway is an in-process stand-in for the real payment processor. It
// honors idempotency keys the same way the processor does: a repeated call
// with a known key returns the stored result without moving money again.
type MockGateway struct {
	mu sync.Mutex

	chargeErr error
	refundErr error

	customers int
	charges   map[string]string
	refunds   map[string]string
	cards     map[string][]domain.CardSummary
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		charges: make(map[string]string),
		refunds: make(map[string]string),
		cards:   make(map[string][]domain.CardSummary),
	}
}

func (m *MockGateway) CreateCustomer(ctx context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.customers++
	return fmt.Sprintf("cus_test_%d", m.customers), nil
}

func (m *MockGateway) AttachPaymentMethod(ctx context.Context, customerRef, methodRef string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cards[customerRef] = append(m.cards[customerRef], domain.CardSummary{Brand: "visa", Last4: "4242"})
	return methodRef, nil
}

func (m *MockGateway) ListPaymentMethods(ctx context.Context, customerRef string) ([]domain.CardSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.CardSummary(nil), m.cards[customerRef]...), nil
}

func (m *MockGateway) ChargeAndConfirm(ctx context.Context, req domain.ChargeRequest) (*domain.Charge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.chargeErr != nil {
		return nil, m.chargeErr
	}

	ref, ok := m.charges[req.IdempotencyKey]
	if !ok {
		ref = fmt.Sprintf("pi_test_%d", len(m.charges)+1)
		m.charges[req.IdempotencyKey] = ref
	}

	return &domain.Charge{ProviderRef: ref, Status: "succeeded"}, nil
}

func (m *MockGateway) Refund(ctx context.Context, chargeRef, idempotencyKey string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.refundErr != nil {
		return "", m.refundErr
	}

	ref, ok := m.refunds[idempotencyKey]
	if !ok {
		ref = fmt.Sprintf("re_test_%d", len(m.refunds)+1)
		m.refunds[idempotencyKey] = ref
	}

	return ref, nil
}

// ChargeCount reports how many distinct charges the gateway holds, which is
// the amount of money actually moved regardless of how many calls were made.
func (m *MockGateway) ChargeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.charges)
}

func (m *MockGateway) RefundCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.refunds)
}

// SetChargeErr injects a failure into subsequent charge calls; pass nil to
// clear it.
func (m *MockGateway) SetChargeErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chargeErr = err
}

func (m *MockGateway) SetRefundErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.refundErr = err
}
