package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type GatewayErrorCode string

const (
	// GatewayDeclined covers card declines and invalid payment methods:
	// the gateway answered and said no.
	GatewayDeclined GatewayErrorCode = "declined"

	// GatewayUnavailable covers timeouts and transport failures. A timeout
	// on a charge means "unknown outcome": the caller must not retry the
	// charge automatically.
	GatewayUnavailable GatewayErrorCode = "unavailable"

	GatewayOther GatewayErrorCode = "other"
)

// GatewayError preserves the gateway's own message for operator diagnosis
// while mapping the failure to a stable internal code for client handling.
type GatewayError struct {
	Code    GatewayErrorCode
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error (%s): %s", e.Code, e.Message)
}

func AsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}

// Charge is the outcome of a successful charge-and-confirm call.
type Charge struct {
	ProviderRef string
	Status      string
}

type ChargeRequest struct {
	CustomerRef string
	MethodRef   string
	Amount      decimal.Decimal
	Currency    string
	Description string

	// IdempotencyKey makes a repeated charge call with the same key have no
	// additional effect on the gateway side.
	IdempotencyKey string
}

type CardSummary struct {
	Brand string
	Last4 string
}

// PaymentGateway is the capability surface consumed from the external
// payment processor. All calls are synchronous but may take seconds and are
// non-idempotent by default; only calls carrying an idempotency key are safe
// to repeat.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, email string) (string, error)
	AttachPaymentMethod(ctx context.Context, customerRef, methodRef string) (string, error)
	ListPaymentMethods(ctx context.Context, customerRef string) ([]CardSummary, error)
	ChargeAndConfirm(ctx context.Context, req ChargeRequest) (*Charge, error)
	Refund(ctx context.Context, chargeRef, idempotencyKey string) (string, error)
}
