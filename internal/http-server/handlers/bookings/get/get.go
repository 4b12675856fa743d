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

type BookingProvider interface {
	GetBooking(ctx context.Context, id string) (*api.BookingResponse, error)
	ListBookings(ctx context.Context, userID string) ([]*api.BookingResponse, error)
}

type Response struct {
	response.Response
	Booking  *api.BookingResponse   `json:"booking,omitempty"`
	Bookings []*api.BookingResponse `json:"bookings,omitempty"`
}

func New(log *slog.Logger, provider BookingProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			booking, err := provider.GetBooking(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("booking not found", slog.String("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get booking", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get booking"))
				return
			}

			render.JSON(w, r, Response{Booking: booking})
			return
		}

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			log.Error("user_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "user_id is required"))
			return
		}

		bookings, err := provider.ListBookings(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list bookings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list bookings"))
			return
		}

		render.JSON(w, r, Response{Bookings: bookings})
	}
}
