package confirm

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

type WizardConfirmer interface {
	WizardConfirm(ctx context.Context, id string) (*api.WizardStateResponse, error)
}

type Response struct {
	response.Response
	Wizard api.WizardStateResponse `json:"wizard"`
}

func New(log *slog.Logger, confirmer WizardConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.wizard.confirm.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		state, err := confirmer.WizardConfirm(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("wizard session not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "wizard session not found"))
			return
		}

		if errors.Is(err, response.ErrInvalidTransition) {
			log.Error("confirm is not allowed at the current step")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.INVALID_TRANSITION), "confirm is not allowed at the current step"))
			return
		}

		if errors.Is(err, response.ErrCreateInFlight) {
			log.Error("booking create already in flight", slog.String("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "booking create already in flight"))
			return
		}

		if errors.Is(err, response.ErrSlotNotAvailable) {
			log.Error("slot is no longer available")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.SLOT_NOT_AVAILABLE), "slot is no longer available"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("slot is locked by another request")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "slot is locked by another request"))
			return
		}

		if errors.Is(err, response.ErrStorageUnavailable) {
			log.Error("storage unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(string(response.STORAGE_UNAVAILABLE), "storage is unavailable, please retry"))
			return
		}

		if err != nil {
			log.Error("Failed to confirm booking", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to confirm booking"))
			return
		}

		log.Info("Wizard confirmed", slog.String("wizard_id", id))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Wizard: *state})
	}
}
