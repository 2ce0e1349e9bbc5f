package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("course-enrollment-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/students", app.RegisterStudent)
	r.Post("/auth/login", app.Login)
	r.Post("/auth/logout", app.Logout)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Get("/students/me", app.GetCurrentStudent)

		r.Route("/billing/payment-methods", func(r chi.Router) {
			r.Post("/", app.RegisterPaymentMethod)
			r.Get("/", app.GetPaymentMethods)
		})

		r.Post("/enrollments", app.CreateEnrollment)
		r.Get("/payments", app.GetPaymentHistory)
		r.Get("/payments/{paymentId}", app.GetPaymentDetails)

		r.Route("/refunds", func(r chi.Router) {
			r.Post("/", app.CreateRefund)
			r.Get("/", app.GetRefunds)
			r.Get("/{refundId}", app.GetRefundById)
			r.Post("/{refundId}/confirm", app.ConfirmRefund)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Post("/", app.CreateCourseProgress)
			r.Patch("/{progressId}", app.UpdateCourseProgress)
		})
	})

	return r
}
