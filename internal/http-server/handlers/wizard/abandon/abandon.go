package abandon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"salon-service/pkg/response"
	"salon-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type WizardAbandoner interface {
	AbandonWizard(ctx context.Context, id string) error
}

func New(log *slog.Logger, abandoner WizardAbandoner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.wizard.abandon.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		err := abandoner.AbandonWizard(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("wizard session not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "wizard session not found"))
			return
		}

		if err != nil {
			log.Error("Failed to abandon wizard", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to abandon wizard"))
			return
		}

		log.Info("Wizard abandoned", slog.String("wizard_id", id))

		render.JSON(w, r, response.Response{})
	}
}
