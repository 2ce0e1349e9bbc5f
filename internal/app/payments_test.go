package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/courseloop/course-enrollment-system/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentHistoryTestSuite struct {
	suite.Suite
	app         *Application
	studentRepo *mocks.MockStudentRepo
	paymentRepo *mocks.MockPaymentRepo
	gateway     *mocks.MockPaymentGateway
}

func (s *PaymentHistoryTestSuite) SetupTest() {
	s.studentRepo = &mocks.MockStudentRepo{}
	s.paymentRepo = &mocks.MockPaymentRepo{}
	s.gateway = new(mocks.MockPaymentGateway)

	s.app = newTestApplication(func(a *Application) {
		a.studentRepo = s.studentRepo
		a.paymentRepo = s.paymentRepo
		a.gateway = s.gateway
	})
}

func TestPaymentHistorySuite(t *testing.T) {
	suite.Run(t, new(PaymentHistoryTestSuite))
}

func (s *PaymentHistoryTestSuite) TestGetPaymentHistory() {
	s.paymentRepo.GetAllByStudentIdFunc = func(ctx context.Context, studentID int, pagination domain.Pagination) ([]domain.Payment, *domain.Metadata, error) {
		s.Equal(1, studentID)
		s.Equal(2, pagination.Page)
		s.Equal(5, pagination.PageSize)

		payments := []domain.Payment{
			{ID: 42, CourseID: 7, Amount: decimal.NewFromInt(50), Currency: "USD", Status: domain.PaymentStatusSuccess},
		}
		return payments, domain.NewMetadata(6, pagination.Page, pagination.PageSize), nil
	}

	w, r := executeRequest(s.T(), http.MethodGet, "/payments?page=2&pageSize=5", nil)
	r = withStudentId(r, 1)

	s.app.GetPaymentHistory(w, r)

	s.Equal(http.StatusOK, w.Code)

	var resp api.PaymentHistoryResponse
	decodeEnvelope(s.T(), w, &resp)

	s.Len(resp.Payments, 1)
	s.Equal(42, resp.Payments[0].Id)
	s.Equal(2, resp.Metadata.CurrentPage)
	s.Equal(2, resp.Metadata.LastPage)
	s.Equal(6, resp.Metadata.TotalRecords)
}

func (s *PaymentHistoryTestSuite) TestGetPaymentDetails() {
	detail := func() *domain.PaymentDetail {
		return &domain.PaymentDetail{
			Payment: domain.Payment{
				ID:        42,
				StudentID: 1,
				CourseID:  7,
				Amount:    decimal.NewFromInt(50),
				Currency:  "USD",
				Status:    domain.PaymentStatusSuccess,
			},
			CourseTitle:  "Distributed Systems",
			StudentEmail: "ada@example.com",
		}
	}

	tests := []struct {
		name           string
		paymentId      string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail when payment id is not a number",
			paymentId:      "abc",
			setupMocks:     func() {},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid payment ID",
		},
		{
			name:      "should fail when payment does not exist",
			paymentId: "42",
			setupMocks: func() {
				s.paymentRepo.GetDetailByIdFunc = func(ctx context.Context, id int) (*domain.PaymentDetail, error) {
					return nil, domain.ErrRecordNotFound
				}
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested resource not found",
		},
		{
			name:      "should hide payments belonging to another student",
			paymentId: "42",
			setupMocks: func() {
				s.paymentRepo.GetDetailByIdFunc = func(ctx context.Context, id int) (*domain.PaymentDetail, error) {
					d := detail()
					d.StudentID = 2
					return d, nil
				}
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested resource not found",
		},
		{
			name:      "should return payment details with the registered cards",
			paymentId: "42",
			setupMocks: func() {
				s.paymentRepo.GetDetailByIdFunc = func(ctx context.Context, id int) (*domain.PaymentDetail, error) {
					return detail(), nil
				}
				s.studentRepo.GetByIdFunc = func(ctx context.Context, id int) (*domain.Student, error) {
					return &domain.Student{ID: 1, Email: "ada@example.com", BillingCustomerID: ptr("cus_123")}, nil
				}
				s.gateway.On("ListPaymentMethods", mock.Anything, "cus_123").
					Return([]domain.CardSummary{{Brand: "visa", Last4: "4242"}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMocks()

			w, r := executeRequest(s.T(), http.MethodGet, "/payments/"+tt.paymentId, nil)
			r = withStudentId(r, 1)
			r = withURLParam(r, "paymentId", tt.paymentId)

			s.app.GetPaymentDetails(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				var resp api.PaymentDetailsResponse
				decodeEnvelope(s.T(), w, &resp)

				s.Equal(42, resp.Payment.Id)
				s.Equal("Distributed Systems", resp.CourseTitle)
				s.Equal("ada@example.com", resp.StudentEmail)
				s.Len(resp.Cards, 1)
			}

			s.gateway.AssertExpectations(s.T())
		})
	}
}
