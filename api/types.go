// Package api defines the request and response shapes of the HTTP surface.
// Every operation has an explicit, validated struct; handlers never accept
// loosely typed payloads.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response is the success envelope returned by every endpoint.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// ErrorResponse is the error envelope. No stack traces leak to clients; the
// request id ties the response to server-side logs.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Path    string `json:"path"`
	Details any    `json:"details,omitempty"`
}

type ValidationIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type RegisterStudentRequest struct {
	FirstName string `json:"firstName" validate:"required,alpha,max=50"`
	LastName  string `json:"lastName" validate:"required,alpha,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type StudentResponse struct {
	Id             int       `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	BillingProfile bool      `json:"billingProfile"`
	CreatedAt      time.Time `json:"createdAt"`
}

type RegisterPaymentMethodRequest struct {
	PaymentMethodId string `json:"paymentMethodId" validate:"required,max=255"`
}

type PaymentMethodResponse struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

type CreateEnrollmentRequest struct {
	CourseId        int             `json:"courseId" validate:"required,gt=0"`
	PaymentMethodId string          `json:"paymentMethodId" validate:"required,max=255"`
	Amount          decimal.Decimal `json:"amount" validate:"required,amount"`
}

type EnrollmentResponse struct {
	PaymentId     int    `json:"paymentId"`
	TransactionId string `json:"transactionId"`
	Status        string `json:"status"`
}

type PaymentResponse struct {
	Id              int             `json:"id"`
	CourseId        int             `json:"courseId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	PaymentIntentId *string         `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type PaymentHistoryResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Metadata Metadata          `json:"metadata"`
}

type PaymentDetailsResponse struct {
	Payment      PaymentResponse         `json:"payment"`
	CourseTitle  string                  `json:"courseTitle"`
	StudentEmail string                  `json:"studentEmail"`
	Cards        []PaymentMethodResponse `json:"cards"`
}

type CreateRefundRequest struct {
	PaymentId int     `json:"paymentId" validate:"required,gt=0"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type RefundResponse struct {
	Id          int        `json:"id"`
	PaymentId   int        `json:"paymentId"`
	Reason      *string    `json:"reason,omitempty"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type RefundListResponse struct {
	Refunds  []RefundResponse `json:"refunds"`
	Metadata Metadata         `json:"metadata"`
}

type CreateProgressRequest struct {
	CourseId int `json:"courseId" validate:"required,gt=0"`
}

type UpdateProgressRequest struct {
	Status string `json:"status" validate:"required,progress_status"`
}

type ProgressResponse struct {
	Id          int        `json:"id"`
	StudentId   int        `json:"studentId"`
	CourseId    int        `json:"courseId"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type HealthcheckResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}
