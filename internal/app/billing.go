package app

import (
	"errors"
	"net/http"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/domain"
)

// RegisterPaymentMethod attaches a payment method to the student's billing
// profile, creating the gateway customer first if the student has none. The
// billing-customer reference is attached lazily here, not at registration.
func (app *Application) RegisterPaymentMethod(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RegisterPaymentMethodRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	studentId := app.contextGetStudentId(r)
	student, err := app.studentRepo.GetById(r.Context(), studentId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !student.HasBillingProfile() {
		customerRef, err := app.gateway.CreateCustomer(r.Context(), student.Email)
		if err != nil {
			if gwErr, ok := domain.AsGatewayError(err); ok {
				app.gatewayErrorResponse(w, r, gwErr)
				return
			}

			app.serverErrorResponse(w, r, err)
			return
		}

		err = app.studentRepo.SetBillingCustomerID(r.Context(), student.ID, customerRef)
		if err != nil && !errors.Is(err, domain.ErrEditConflict) {
			app.serverErrorResponse(w, r, err)
			return
		}

		if errors.Is(err, domain.ErrEditConflict) {
			// A concurrent request won the attach; use the stored reference.
			logger.Warn("billing profile already attached by a concurrent request", "student_id", student.ID)

			student, err = app.studentRepo.GetById(r.Context(), student.ID)
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}
		} else {
			student.BillingCustomerID = &customerRef
		}
	}

	_, err = app.gateway.AttachPaymentMethod(r.Context(), *student.BillingCustomerID, input.PaymentMethodId)
	if err != nil {
		if gwErr, ok := domain.AsGatewayError(err); ok {
			app.gatewayErrorResponse(w, r, gwErr)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeEnvelope(w, r, http.StatusOK, "Payment method registered successfully", nil)
}

func (app *Application) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	studentId := app.contextGetStudentId(r)

	student, err := app.studentRepo.GetById(r.Context(), studentId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !student.HasBillingProfile() {
		app.badRequestResponse(w, r, domain.ErrBillingProfileMissing)
		return
	}

	cards, err := app.gateway.ListPaymentMethods(r.Context(), *student.BillingCustomerID)
	if err != nil {
		if gwErr, ok := domain.AsGatewayError(err); ok {
			app.gatewayErrorResponse(w, r, gwErr)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeEnvelope(w, r, http.StatusOK, "Payment methods retrieved successfully", toPaymentMethodResponses(cards))
}

func toPaymentMethodResponses(cards []domain.CardSummary) []api.PaymentMethodResponse {
	methods := make([]api.PaymentMethodResponse, len(cards))

	for i, card := range cards {
		methods[i] = api.PaymentMethodResponse{
			Brand: card.Brand,
			Last4: card.Last4,
		}
	}

	return methods
}
