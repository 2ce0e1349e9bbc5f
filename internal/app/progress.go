package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/courseloop/course-enrollment-system/api"
	"github.com/courseloop/course-enrollment-system/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *Application) CreateCourseProgress(w http.ResponseWriter, r *http.Request) {
	studentId := app.contextGetStudentId(r)

	var input api.CreateProgressRequest

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

	_, err = app.courseRepo.GetById(r.Context(), input.CourseId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("course not found with ID: %d", input.CourseId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	completion := domain.CourseCompletion{
		StudentID: studentId,
		CourseID:  input.CourseId,
		Status:    domain.ProgressNotStarted,
	}

	err = app.completionRepo.Create(r.Context(), &completion)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeEnvelope(w, r, http.StatusCreated, "Course progress created successfully", toProgressResponse(&completion))
}

func (app *Application) UpdateCourseProgress(w http.ResponseWriter, r *http.Request) {
	studentId := app.contextGetStudentId(r)

	progressId, err := strconv.Atoi(chi.URLParam(r, "progressId"))
	if err != nil || progressId < 1 {
		app.badRequestResponse(w, r, errors.New("invalid progress ID"))
		return
	}

	var input api.UpdateProgressRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	completion, err := app.completionRepo.GetById(r.Context(), progressId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("course progress not found with ID: %d", progressId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if completion.StudentID != studentId {
		app.notFoundResponse(w, r)
		return
	}

	previous := completion.Status

	err = completion.Transition(domain.ProgressStatus(input.Status), time.Now())
	if err != nil {
		var transitionErr *domain.IllegalTransitionError
		if errors.As(err, &transitionErr) {
			app.badRequestResponse(w, r, transitionErr)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	// A same-state target changes nothing, so skip the write.
	if completion.Status != previous {
		err = app.completionRepo.Update(r.Context(), completion)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.notFoundResponseWithErr(w, r, fmt.Errorf("course progress not found with ID: %d", progressId))
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}
	}

	app.writeEnvelope(w, r, http.StatusOK, "Course progress updated successfully", toProgressResponse(completion))
}

func toProgressResponse(completion *domain.CourseCompletion) api.ProgressResponse {
	return api.ProgressResponse{
		Id:          completion.ID,
		StudentId:   completion.StudentID,
		CourseId:    completion.CourseID,
		Status:      string(completion.Status),
		CompletedAt: completion.CompletedAt,
		CreatedAt:   completion.CreatedAt,
	}
}
