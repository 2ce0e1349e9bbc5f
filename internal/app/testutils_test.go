package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/mailer"
	"github.com/courseloop/course-enrollment-system/internal/mocks"
	"github.com/courseloop/course-enrollment-system/internal/validator"
	"github.com/go-chi/chi/v5"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:         Config{Env: "test"},
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:         mailer.NewMockMailer(),
		studentRepo:    &mocks.MockStudentRepo{},
		courseRepo:     &mocks.MockCourseRepo{},
		paymentRepo:    &mocks.MockPaymentRepo{},
		refundRepo:     &mocks.MockRefundRepo{},
		completionRepo: &mocks.MockCompletionRepo{},
		gateway:        &mocks.MockPaymentGateway{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withStudentId injects an authenticated student into the request context the
// same way requireAuthentication does.
func withStudentId(r *http.Request, studentId int) *http.Request {
	ctx := context.WithValue(r.Context(), SessionKeyStudentId, studentId)
	return r.WithContext(ctx)
}

// withURLParam binds a chi route parameter on the request so handlers can be
// invoked without a router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func setupTestSession(t *testing.T, app *Application, r *http.Request, studentId int) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyStudentId.String(), studentId)

	return r.WithContext(ctx)
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp struct {
			Error struct {
				Details []api.ValidationIssue `json:"details"`
			} `json:"error"`
		}
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, issue := range validationResp.Error.Details {
			errorSet[issue.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if errorResp.Success {
			t.Error("Expected success to be false in error response")
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

// decodeEnvelope unmarshals the success envelope and re-decodes its data
// payload into out.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, out any) api.Response {
	t.Helper()

	var resp api.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response envelope: %v", err)
	}

	if out != nil && resp.Data != nil {
		raw, err := json.Marshal(resp.Data)
		if err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("Failed to decode response data: %v", err)
		}
	}

	return resp
}

func ptr[T any](v T) *T {
	return &v
}
