package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/google/uuid"
)

// idempotencyNamespace seeds the deterministic (v5) idempotency keys passed
// to the gateway, so a repeated charge or refund call can never move money
// twice.
var idempotencyNamespace = uuid.MustParse("9f2c1c9e-8a4b-4c6d-9b3e-2f1a7d5e8c40")

func enrollmentIdempotencyKey(studentID, courseID int) string {
	return uuid.NewSHA1(idempotencyNamespace, fmt.Appendf(nil, "enroll:%d:%d", studentID, courseID)).String()
}

func refundIdempotencyKey(paymentID int) string {
	return uuid.NewSHA1(idempotencyNamespace, fmt.Appendf(nil, "refund:%d", paymentID)).String()
}

// CreateEnrollment coordinates a paid enrollment: eligibility checks first,
// then the external charge, then one local transaction writing the payment
// row, the seat decrement and the initial completion record. The gateway is
// never called while a local transaction is open.
func (app *Application) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateEnrollmentRequest

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

	enrolled, err := app.paymentRepo.HasSuccessfulPayment(r.Context(), studentId, input.CourseId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if enrolled {
		logger.Warn("enrollment attempt for already enrolled course", "course_id", input.CourseId)
		app.editConflictResponseWithErr(w, r, domain.ErrAlreadyEnrolled)
		return
	}

	student, err := app.studentRepo.GetById(r.Context(), studentId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !student.HasBillingProfile() {
		app.badRequestResponse(w, r, domain.ErrBillingProfileMissing)
		return
	}

	course, err := app.courseRepo.GetById(r.Context(), input.CourseId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("course not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if course.AvailableSeats == 0 {
		app.editConflictResponseWithErr(w, r, domain.ErrNoSeatsAvailable)
		return
	}

	if !input.Amount.Equal(course.Price) {
		app.badRequestResponse(w, r, fmt.Errorf("amount does not match the course price"))
		return
	}

	methodRef, err := app.gateway.AttachPaymentMethod(r.Context(), *student.BillingCustomerID, input.PaymentMethodId)
	if err != nil {
		if gwErr, ok := domain.AsGatewayError(err); ok {
			app.gatewayErrorResponse(w, r, gwErr)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	charge, err := app.gateway.ChargeAndConfirm(r.Context(), domain.ChargeRequest{
		CustomerRef:    *student.BillingCustomerID,
		MethodRef:      methodRef,
		Amount:         course.Price,
		Currency:       "usd",
		Description:    fmt.Sprintf("Payment for course: %s", course.Title),
		IdempotencyKey: enrollmentIdempotencyKey(studentId, course.ID),
	})
	if err != nil {
		// No local writes on any charge failure. A transport failure means
		// the outcome is unknown; the client checks enrollment status before
		// retrying manually.
		if gwErr, ok := domain.AsGatewayError(err); ok {
			app.gatewayErrorResponse(w, r, gwErr)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	payment := domain.Payment{
		StudentID:       studentId,
		CourseID:        course.ID,
		Amount:          course.Price,
		Currency:        "USD",
		Status:          domain.PaymentStatusSuccess,
		PaymentIntentID: &charge.ProviderRef,
	}

	// Completions opened by a paid enrollment start directly IN_PROGRESS;
	// the standalone progress endpoint creates them NOT_STARTED.
	completion := domain.CourseCompletion{
		StudentID: studentId,
		CourseID:  course.ID,
		Status:    domain.ProgressInProgress,
	}

	err = app.paymentRepo.CreateEnrollment(r.Context(), &payment, &completion)
	if err != nil {
		// A concurrent duplicate request won the insert. The idempotency key
		// guarantees the gateway charged only once, so the winner's record
		// covers this charge.
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			logger.Warn("concurrent duplicate enrollment detected", "course_id", course.ID)
			app.editConflictResponseWithErr(w, r, domain.ErrAlreadyEnrolled)
			return
		}

		// The student has been charged but holds no enrollment. This must
		// never be swallowed: the charge reference is logged so an operator
		// or a reconciliation sweep can complete the write or refund the
		// stray charge.
		logger.Error("enrollment write failed after successful charge",
			"error", err,
			"reconciliation_required", true,
			"student_id", studentId,
			"course_id", course.ID,
			"payment_intent_id", charge.ProviderRef,
		)

		app.errorResponse(w, r, http.StatusInternalServerError,
			"Your payment was processed but the enrollment could not be recorded, our team has been notified", nil)
		return
	}

	go func(ctx context.Context) {
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending enrollment mail", "panic", err)
			}
		}()

		data := map[string]any{
			"firstName":   student.FirstName,
			"courseTitle": course.Title,
			"amount":      payment.Amount.StringFixed(2),
		}

		err := app.mailer.Send(student.Email, "enrollment_confirmation.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send enrollment confirmation email", "error", err)
		}
	}(r.Context())

	resp := api.EnrollmentResponse{
		PaymentId:     payment.ID,
		TransactionId: charge.ProviderRef,
		Status:        charge.Status,
	}

	app.writeEnvelope(w, r, http.StatusCreated, "Enrollment completed successfully", resp)
}
