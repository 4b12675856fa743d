package selectservice

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

type ServiceSelector interface {
	WizardSelectService(ctx context.Context, id, serviceID string) (*api.WizardStateResponse, error)
}

type Request struct {
	api.WizardServiceRequest
}

type Response struct {
	response.Response
	Wizard api.WizardStateResponse `json:"wizard"`
}

func New(log *slog.Logger, selector ServiceSelector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.wizard.selectservice.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if req.ServiceID == "" {
			log.Error("service_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "service_id is required"))
			return
		}

		state, err := selector.WizardSelectService(r.Context(), id, req.ServiceID)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("wizard session or service not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "wizard session or service not found"))
			return
		}

		if errors.Is(err, response.ErrInvalidTransition) {
			log.Error("service selection is not allowed at the current step")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.INVALID_TRANSITION), "service selection is not allowed at the current step"))
			return
		}

		if err != nil {
			log.Error("Failed to select service", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to select service"))
			return
		}

		render.JSON(w, r, Response{Wizard: *state})
	}
}
