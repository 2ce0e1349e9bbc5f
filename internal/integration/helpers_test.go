package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":   {},
	"requestId":   {},
	"createdAt":   {},
	"completedAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	t.Helper()

	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func (a *TestApp) do(t testing.TB, method, url string, body string, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := prepareRequest(method, url, reader, nil, cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.App.Routes().ServeHTTP(rec, req)

	return rec.Result()
}

// authenticatedStudentCookies registers the student if needed and logs in,
// returning the session cookies of an authenticated request.
func (a *TestApp) authenticatedStudentCookies(t testing.TB, email string) []*http.Cookie {
	t.Helper()

	registerBody := fmt.Sprintf(
		`{"firstName": "Test", "lastName": "Student", "email": %q, "password": %q}`,
		email, TestStudentPassword,
	)

	res := a.do(t, http.MethodPost, "/students", registerBody, nil)
	res.Body.Close()
	require.Contains(t, []int{http.StatusCreated, http.StatusBadRequest}, res.StatusCode)

	loginBody := fmt.Sprintf(`{"email": %q, "password": %q}`, email, TestStudentPassword)

	res = a.do(t, http.MethodPost, "/auth/login", loginBody, nil)
	res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	return res.Cookies()
}

// registerPaymentMethod gives the student a billing profile and a stored card.
func (a *TestApp) registerPaymentMethod(t testing.TB, cookies []*http.Cookie) {
	t.Helper()

	res := a.do(t, http.MethodPost, "/billing/payment-methods", `{"paymentMethodId": "pm_test_visa"}`, cookies)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func createCourse(t testing.TB, db *pgxpool.Pool, title string, price decimal.Decimal, seats int) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO courses (title, price, available_seats) VALUES ($1, $2, $3) RETURNING id`,
		title, price, seats,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func availableSeats(t testing.TB, db *pgxpool.Pool, courseID int) int {
	t.Helper()

	var seats int
	err := db.QueryRow(context.Background(),
		`SELECT available_seats FROM courses WHERE id = $1`, courseID,
	).Scan(&seats)
	require.NoError(t, err)

	return seats
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)

	return count
}
