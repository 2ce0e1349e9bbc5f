package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/domain"
)

func (app *Application) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RegisterStudentRequest

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

	student := domain.Student{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}

	err = student.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.studentRepo.Create(r.Context(), &student)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStudentAlreadyExists):
			logger.Warn("registration attempt for existing email")
			// do not reveal the existence of the email to avoid user enumeration attacks
			app.badRequestResponse(w, r, fmt.Errorf("invalid input data"))
		default:
			logger.Error("failed to create student", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	go func(ctx context.Context) {
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending welcome mail", "panic", err)
			}
		}()

		data := map[string]any{
			"firstName": student.FirstName,
		}

		err := app.mailer.Send(student.Email, "student_welcome.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send welcome email", "error", err)
		}
	}(r.Context())

	app.writeEnvelope(w, r, http.StatusCreated, "Student registered successfully", toStudentResponse(&student))
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	studentId := app.sessionManager.GetInt(r.Context(), SessionKeyStudentId.String())
	if studentId != 0 {
		app.writeEnvelope(w, r, http.StatusOK, "You are already logged in", nil)
		return
	}

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	student, err := app.studentRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("login attempt for non-existent student")
			app.invalidCredentialsResponse(w, r)
		default:
			logger.Error("failed to get student by email during login", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	matches, err := student.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !matches {
		logger.Warn("login failed due to incorrect password")
		app.invalidCredentialsResponse(w, r)
		return
	}

	// Renew the session token after the privilege level change to prevent
	// session fixation attacks.
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyStudentId.String(), student.ID)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	studentId := app.sessionManager.GetInt(r.Context(), SessionKeyStudentId.String())
	if studentId == 0 {
		app.notFoundResponse(w, r)
		return
	}

	app.sessionManager.Destroy(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetCurrentStudent(w http.ResponseWriter, r *http.Request) {
	studentId := app.contextGetStudentId(r)

	student, err := app.studentRepo.GetById(r.Context(), studentId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.logger.Error("student ID in session but not found in DB", "studentId", studentId)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeEnvelope(w, r, http.StatusOK, "Student retrieved successfully", toStudentResponse(student))
}

func toStudentResponse(student *domain.Student) api.StudentResponse {
	return api.StudentResponse{
		Id:             student.ID,
		FirstName:      student.FirstName,
		LastName:       student.LastName,
		Email:          student.Email,
		BillingProfile: student.HasBillingProfile(),
		CreatedAt:      student.CreatedAt,
	}
}
