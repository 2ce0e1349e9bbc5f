package app

import (
	"net/http"

	"github.com/courseloop/course-enrollment-system/api"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthcheckResponse{
		Status:      "UP",
		Version:     version,
		Environment: app.config.Env,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
