package app

import (
	"net/http"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/domain"
	appvalidator "github.com/courseloop/course-enrollment-system/internal/validator"
	"github.com/go-playground/validator/v10"
)

const ErrInternalServer = "The server encountered a problem and could not process your request"

func (app *Application) logError(r *http.Request, err error) {
	logger := app.contextGetLogger(r)
	logger.Error(err.Error(), "method", r.Method, "uri", r.URL.RequestURI())
}

// The errorResponse() method is a generic helper for sending the error
// envelope to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, details any) {
	resp := api.ErrorResponse{
		Success: false,
		Message: message,
		Error: &api.ErrorDetail{
			Path:    r.URL.Path,
			Details: details,
		},
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer, nil)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "The requested resource not found", nil)
}

func (app *Application) notFoundResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusNotFound, err.Error(), nil)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error(), nil)
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, "You must be authenticated to access this resource", nil)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		app.serverErrorResponse(w, r, err)
		return
	}

	issues := make([]api.ValidationIssue, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		issues = append(issues, api.ValidationIssue{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	app.errorResponse(w, r, http.StatusUnprocessableEntity, "Validation failed", issues)
}

// gatewayErrorResponse maps a payment gateway failure onto the error
// taxonomy: declines come back 402 with the gateway's own message, transport
// failures 502 with a stable message (the outcome of the call is unknown and
// the client must not blindly retry).
func (app *Application) gatewayErrorResponse(w http.ResponseWriter, r *http.Request, gwErr *domain.GatewayError) {
	logger := app.contextGetLogger(r)

	switch gwErr.Code {
	case domain.GatewayDeclined:
		logger.Warn("payment gateway declined the request", "gateway_message", gwErr.Message)
		app.errorResponse(w, r, http.StatusPaymentRequired, gwErr.Message, nil)
	case domain.GatewayUnavailable:
		logger.Error("payment gateway unavailable", "gateway_message", gwErr.Message)
		app.errorResponse(w, r, http.StatusBadGateway,
			"The payment provider could not be reached, check your enrollment status before retrying", nil)
	default:
		logger.Error("payment gateway error", "gateway_message", gwErr.Message)
		app.errorResponse(w, r, http.StatusBadGateway, gwErr.Message, nil)
	}
}
