package contact

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
	"github.com/go-playground/validator/v10"
)

type ContactSetter interface {
	WizardSetContact(ctx context.Context, id string, req *api.WizardContactRequest) (*api.WizardStateResponse, error)
}

type Request struct {
	api.WizardContactRequest
}

type Response struct {
	response.Response
	Wizard api.WizardStateResponse `json:"wizard"`
}

func New(log *slog.Logger, setter ContactSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.wizard.contact.New"

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

		state, err := setter.WizardSetContact(r.Context(), id, &req.WizardContactRequest)

		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			log.Error("invalid contact info", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("wizard session not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "wizard session not found"))
			return
		}

		if errors.Is(err, response.ErrInvalidTransition) {
			log.Error("contact info is not allowed at the current step")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.INVALID_TRANSITION), "contact info is not allowed at the current step"))
			return
		}

		if err != nil {
			log.Error("Failed to set contact info", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to set contact info"))
			return
		}

		render.JSON(w, r, Response{Wizard: *state})
	}
}
