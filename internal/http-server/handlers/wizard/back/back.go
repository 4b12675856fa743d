package back

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"salon-service/api"
	"salon-service/pkg/response"
	"salon-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BackStepper interface {
	WizardBack(ctx context.Context, id string) (*api.WizardStateResponse, error)
}

type Response struct {
	response.Response
	Wizard api.WizardStateResponse `json:"wizard"`
}

func New(log *slog.Logger, stepper BackStepper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.wizard.back.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		state, err := stepper.WizardBack(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("wizard session not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "wizard session not found"))
			return
		}

		if errors.Is(err, response.ErrInvalidTransition) {
			log.Error("back is not allowed at the current step")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.INVALID_TRANSITION), "back is not allowed at the current step"))
			return
		}

		if err != nil {
			log.Error("Failed to step back", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to step back"))
			return
		}

		render.JSON(w, r, Response{Wizard: *state})
	}
}
