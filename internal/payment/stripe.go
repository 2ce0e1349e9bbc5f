package payment

import (
	"context"
	"errors"

	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/paymentmethod"
	"github.com/stripe/stripe-go/v82/refund"
)

// StripeGateway implements domain.PaymentGateway against the Stripe API.
// Stripe types never leak past this package.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (s *StripeGateway) CreateCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx

	cust, err := customer.New(params)
	if err != nil {
		return "", toGatewayError(err)
	}

	return cust.ID, nil
}

func (s *StripeGateway) AttachPaymentMethod(ctx context.Context, customerRef, methodRef string) (string, error) {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerRef),
	}
	params.Context = ctx

	method, err := paymentmethod.Attach(methodRef, params)
	if err != nil {
		return "", toGatewayError(err)
	}

	return method.ID, nil
}

func (s *StripeGateway) ListPaymentMethods(ctx context.Context, customerRef string) ([]domain.CardSummary, error) {
	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerRef),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}
	params.Context = ctx

	cards := make([]domain.CardSummary, 0)

	iter := paymentmethod.List(params)
	for iter.Next() {
		method := iter.PaymentMethod()
		if method.Card == nil {
			continue
		}

		cards = append(cards, domain.CardSummary{
			Brand: string(method.Card.Brand),
			Last4: method.Card.Last4,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, toGatewayError(err)
	}

	return cards, nil
}

func (s *StripeGateway) ChargeAndConfirm(ctx context.Context, req domain.ChargeRequest) (*domain.Charge, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(toCents(req.Amount)),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerRef),
		PaymentMethod: stripe.String(req.MethodRef),
		Description:   stripe.String(req.Description),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.IdempotencyKey)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, toGatewayError(err)
	}

	return &domain.Charge{
		ProviderRef: intent.ID,
		Status:      string(intent.Status),
	}, nil
}

func (s *StripeGateway) Refund(ctx context.Context, chargeRef, idempotencyKey string) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(chargeRef),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey)

	ref, err := refund.New(params)
	if err != nil {
		return "", toGatewayError(err)
	}

	return ref.ID, nil
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func toGatewayError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		code := domain.GatewayOther

		switch stripeErr.Type {
		case stripe.ErrorTypeCard:
			code = domain.GatewayDeclined
		case stripe.ErrorTypeInvalidRequest:
			code = domain.GatewayDeclined
		case stripe.ErrorTypeAPI:
			code = domain.GatewayUnavailable
		}

		return &domain.GatewayError{Code: code, Message: stripeErr.Msg}
	}

	// Transport-level failures, including timeouts. The outcome of the call
	// is unknown; callers must not assume the operation did not happen.
	return &domain.GatewayError{Code: domain.GatewayUnavailable, Message: err.Error()}
}
