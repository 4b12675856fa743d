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

type SlotProvider interface {
	AvailableSlots(ctx context.Context, serviceID, staffID, date string) (*api.SlotsResponse, error)
}

type Response struct {
	response.Response
	api.SlotsResponse
}

func New(log *slog.Logger, provider SlotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()
		serviceID := q.Get("service_id")
		staffID := q.Get("staff_id")
		date := q.Get("date")

		if serviceID == "" || staffID == "" || date == "" {
			log.Error("missing query params")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "service_id, staff_id and date are required"))
			return
		}

		slots, err := provider.AvailableSlots(r.Context(), serviceID, staffID, date)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("service or staff not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "service or staff not found"))
			return
		}

		if errors.Is(err, response.ErrStaffNotEligible) {
			log.Error("staff does not perform the service")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "staff member does not perform this service"))
			return
		}

		if errors.Is(err, response.ErrPastDate) {
			log.Error("date is in the past", slog.String("date", date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.PAST_DATE), "date is in the past"))
			return
		}

		if errors.Is(err, response.ErrBeyondHorizon) {
			log.Error("date is beyond the booking horizon", slog.String("date", date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BEYOND_HORIZON), "date is beyond the booking horizon"))
			return
		}

		if errors.Is(err, response.ErrValidation) {
			log.Error("invalid date", slog.String("date", date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_ERROR), "invalid date format, expected YYYY-MM-DD"))
			return
		}

		if err != nil {
			log.Error("Failed to compute slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to compute slots"))
			return
		}

		// пустой список слотов — обычный ответ, а не ошибка
		render.JSON(w, r, Response{SlotsResponse: *slots})
	}
}
