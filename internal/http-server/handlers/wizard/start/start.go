package start

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"salon-service/api"
	"salon-service/pkg/response"
	"salon-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type WizardStarter interface {
	StartWizard(ctx context.Context, req *api.WizardStartRequest) (*api.WizardStateResponse, error)
}

type Request struct {
	api.WizardStartRequest
}

type Response struct {
	response.Response
	Wizard api.WizardStateResponse `json:"wizard"`
}

func New(log *slog.Logger, starter WizardStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.wizard.start.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		if req.UserID == "" {
			log.Error("user_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "user_id is required"))
			return
		}

		state, err := starter.StartWizard(r.Context(), &req.WizardStartRequest)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("preselected service not found", slog.String("service_id", req.ServiceID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "service not found"))
			return
		}

		if err != nil {
			log.Error("Failed to start wizard", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to start wizard"))
			return
		}

		log.Info("Wizard started", slog.String("wizard_id", state.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Wizard: *state})
	}
}
