package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *Application) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	studentId := app.contextGetStudentId(r)
	pagination := app.readPagination(r)

	payments, metadata, err := app.paymentRepo.GetAllByStudentId(r.Context(), studentId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PaymentHistoryResponse{
		Payments: toPaymentResponses(payments),
		Metadata: toApiMetadata(metadata),
	}

	app.writeEnvelope(w, r, http.StatusOK, "Payment history retrieved successfully", resp)
}

func (app *Application) GetPaymentDetails(w http.ResponseWriter, r *http.Request) {
	paymentId, err := strconv.Atoi(chi.URLParam(r, "paymentId"))
	if err != nil || paymentId < 1 {
		app.badRequestResponse(w, r, errors.New("invalid payment ID"))
		return
	}

	studentId := app.contextGetStudentId(r)

	detail, err := app.paymentRepo.GetDetailById(r.Context(), paymentId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// Payments are only visible to their owner.
	if detail.StudentID != studentId {
		app.notFoundResponse(w, r)
		return
	}

	student, err := app.studentRepo.GetById(r.Context(), studentId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	cards := make([]domain.CardSummary, 0)
	if student.HasBillingProfile() {
		cards, err = app.gateway.ListPaymentMethods(r.Context(), *student.BillingCustomerID)
		if err != nil {
			if gwErr, ok := domain.AsGatewayError(err); ok {
				app.gatewayErrorResponse(w, r, gwErr)
				return
			}

			app.serverErrorResponse(w, r, err)
			return
		}
	}

	resp := api.PaymentDetailsResponse{
		Payment:      toPaymentResponse(detail.Payment),
		CourseTitle:  detail.CourseTitle,
		StudentEmail: detail.StudentEmail,
		Cards:        toPaymentMethodResponses(cards),
	}

	app.writeEnvelope(w, r, http.StatusOK, "Payment details retrieved successfully", resp)
}

func toPaymentResponse(payment domain.Payment) api.PaymentResponse {
	return api.PaymentResponse{
		Id:              payment.ID,
		CourseId:        payment.CourseID,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		Status:          string(payment.Status),
		PaymentIntentId: payment.PaymentIntentID,
		CreatedAt:       payment.CreatedAt,
	}
}

func toPaymentResponses(payments []domain.Payment) []api.PaymentResponse {
	responses := make([]api.PaymentResponse, len(payments))

	for i, payment := range payments {
		responses[i] = toPaymentResponse(payment)
	}

	return responses
}
