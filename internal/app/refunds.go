package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *Application) CreateRefund(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateRefundRequest

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

	payment, err := app.paymentRepo.GetById(r.Context(), input.PaymentId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("payment not found with ID: %d", input.PaymentId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if payment.Status != domain.PaymentStatusSuccess {
		app.badRequestResponse(w, r, domain.ErrPaymentNotRefundable)
		return
	}

	refund := domain.Refund{
		PaymentID: payment.ID,
		Reason:    input.Reason,
		Status:    domain.RefundStatusPending,
	}

	err = app.refundRepo.Create(r.Context(), &refund)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRefundAlreadyRequested):
			logger.Warn("duplicate refund request", "payment_id", payment.ID)
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeEnvelope(w, r, http.StatusCreated, "Refund request created successfully", toRefundResponse(&refund))
}

// ConfirmRefund drives a PENDING refund through the gateway. The gateway
// call happens outside any local transaction and carries an idempotency key
// derived from the payment id, so retries cannot refund twice. Confirming an
// already APPROVED refund returns the stored terminal state without a
// gateway call; a REJECTED refund cannot be confirmed.
func (app *Application) ConfirmRefund(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	refundId, err := strconv.Atoi(chi.URLParam(r, "refundId"))
	if err != nil || refundId < 1 {
		app.badRequestResponse(w, r, errors.New("invalid refund ID"))
		return
	}

	refund, err := app.refundRepo.GetById(r.Context(), refundId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("refund not found with ID: %d", refundId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	switch refund.Status {
	case domain.RefundStatusApproved:
		app.writeEnvelope(w, r, http.StatusOK, "Refund already approved", toRefundResponse(refund))
		return
	case domain.RefundStatusRejected:
		app.badRequestResponse(w, r, fmt.Errorf("refund %d is already REJECTED and cannot be confirmed", refund.ID))
		return
	}

	payment, err := app.paymentRepo.GetById(r.Context(), refund.PaymentID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if payment.PaymentIntentID == nil {
		app.serverErrorResponse(w, r, fmt.Errorf("payment %d has no charge reference", payment.ID))
		return
	}

	gatewayRef, err := app.gateway.Refund(r.Context(), *payment.PaymentIntentID, refundIdempotencyKey(payment.ID))
	if err != nil {
		if rejectErr := app.refundRepo.Reject(r.Context(), refund.ID); rejectErr != nil {
			logger.Error("failed to mark refund as rejected", "error", rejectErr, "refund_id", refund.ID)
		}

		if gwErr, ok := domain.AsGatewayError(err); ok {
			app.gatewayErrorResponse(w, r, gwErr)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.refundRepo.Approve(r.Context(), refund.ID, gatewayRef, payment.CourseID)
	if err != nil {
		if errors.Is(err, domain.ErrEditConflict) {
			// A concurrent confirm reached the terminal state first; the
			// idempotency key guarantees only one gateway-side refund exists.
			refund, err = app.refundRepo.GetById(r.Context(), refund.ID)
			if err == nil && refund.Status == domain.RefundStatusApproved {
				app.writeEnvelope(w, r, http.StatusOK, "Refund already approved", toRefundResponse(refund))
				return
			}
		}

		// The gateway-side refund exists but the local record is still
		// PENDING. Logged for the out-of-band consistency sweep.
		logger.Error("refund status write failed after successful gateway refund",
			"error", err,
			"reconciliation_required", true,
			"refund_id", refund.ID,
			"gateway_refund_ref", gatewayRef,
		)

		app.errorResponse(w, r, http.StatusInternalServerError,
			"The refund was issued but its status could not be recorded, our team has been notified", nil)
		return
	}

	refund, err = app.refundRepo.GetById(r.Context(), refund.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeEnvelope(w, r, http.StatusOK, "Refund approved successfully", toRefundResponse(refund))
}

func (app *Application) GetRefunds(w http.ResponseWriter, r *http.Request) {
	pagination := app.readPagination(r)

	refunds, metadata, err := app.refundRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.RefundListResponse{
		Refunds:  toRefundResponses(refunds),
		Metadata: toApiMetadata(metadata),
	}

	app.writeEnvelope(w, r, http.StatusOK, "Refunds retrieved successfully", resp)
}

func (app *Application) GetRefundById(w http.ResponseWriter, r *http.Request) {
	refundId, err := strconv.Atoi(chi.URLParam(r, "refundId"))
	if err != nil || refundId < 1 {
		app.badRequestResponse(w, r, errors.New("invalid refund ID"))
		return
	}

	refund, err := app.refundRepo.GetById(r.Context(), refundId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("refund not found with ID: %d", refundId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeEnvelope(w, r, http.StatusOK, "Refund retrieved successfully", toRefundResponse(refund))
}

func toRefundResponse(refund *domain.Refund) api.RefundResponse {
	return api.RefundResponse{
		Id:          refund.ID,
		PaymentId:   refund.PaymentID,
		Reason:      refund.Reason,
		Status:      string(refund.Status),
		CompletedAt: refund.CompletedAt,
		CreatedAt:   refund.CreatedAt,
	}
}

func toRefundResponses(refunds []domain.Refund) []api.RefundResponse {
	responses := make([]api.RefundResponse, len(refunds))

	for i := range refunds {
		responses[i] = toRefundResponse(&refunds[i])
	}

	return responses
}
