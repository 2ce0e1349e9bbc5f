package integration_test

import (
	"io"
	"log/slog"

	"github.com/courseloop/course-enrollment-system/internal/app"
	"github.com/courseloop/course-enrollment-system/internal/mailer"
	"github.com/courseloop/course-enrollment-system/internal/payment"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestApp struct {
	App     *app.Application
	DB      *pgxpool.Pool
	Gateway *payment.MockGateway
	Mailer  *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockMailer := mailer.NewMockMailer()
	gateway := payment.NewMockGateway()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application := app.NewApplication(cfg, logger, db, redisClient, gateway, mockMailer)

	return &TestApp{
		App:     application,
		DB:      db,
		Gateway: gateway,
		Mailer:  mockMailer,
	}, nil
}
