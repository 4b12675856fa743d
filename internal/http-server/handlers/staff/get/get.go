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
	"github.com/go-chi/render"
)

type StaffProvider interface {
	StaffForService(ctx context.Context, serviceID string) ([]*api.StaffResponse, error)
}

type Response struct {
	response.Response
	Staff []*api.StaffResponse `json:"staff"`
}

func New(log *slog.Logger, provider StaffProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.staff.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		serviceID := r.URL.Query().Get("service_id")

		staff, err := provider.StaffForService(r.Context(), serviceID)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("service not found", slog.String("service_id", serviceID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "service not found"))
			return
		}

		if err != nil {
			log.Error("Failed to list staff", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list staff"))
			return
		}

		render.JSON(w, r, Response{Staff: staff})
	}
}
