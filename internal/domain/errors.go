package domain

import "errors"

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrEditConflict           = errors.New("edit conflict")
	ErrStudentAlreadyExists   = errors.New("student already exists with this email")
	ErrAlreadyEnrolled        = errors.New("student is already enrolled in this course")
	ErrNoSeatsAvailable       = errors.New("no seats available for this course")
	ErrBillingProfileMissing  = errors.New("student has no billing profile, payment details must be registered first")
	ErrPaymentNotRefundable   = errors.New("only successful payments can be refunded")
	ErrRefundAlreadyRequested = errors.New("an active refund already exists for this payment")
)
