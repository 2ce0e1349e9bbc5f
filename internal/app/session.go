package app

import (
	"log/slog"
	"net/http"
)

type sessionKey string

const (
	SessionKeyStudentId = sessionKey("studentID")
)

type contextKey string

const loggerContextKey = contextKey("logger")

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetStudentId(r *http.Request) int {
	studentId, ok := r.Context().Value(SessionKeyStudentId).(int)
	if !ok {
		panic("missing student id from context")
	}

	return studentId
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
