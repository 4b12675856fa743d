package get

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

type ServiceProvider interface {
	Services(ctx context.Context) []*api.ServiceResponse
	ServiceByID(ctx context.Context, id string) (*api.ServiceResponse, error)
}

type Response struct {
	response.Response
	Service  *api.ServiceResponse   `json:"service,omitempty"`
	Services []*api.ServiceResponse `json:"services,omitempty"`
}

func New(log *slog.Logger, provider ServiceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.services.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			render.JSON(w, r, Response{Services: provider.Services(r.Context())})
			return
		}

		service, err := provider.ServiceByID(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("service not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "service not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get service", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get service"))
			return
		}

		render.JSON(w, r, Response{Service: service})
	}
}
