package create

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
	"github.com/go-playground/validator/v10"
)

type BookingCreator interface {
	CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error)
}

type Request struct {
	api.BookingRequest
}

type Response struct {
	response.Response
	Booking api.BookingResponse `json:"booking,omitempty"`
}

func New(log *slog.Logger, creator BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.create.New"

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

		if req.ServiceID == "" || req.StaffID == "" || req.Date == "" || req.Time == "" {
			log.Error("booking selection is incomplete")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "service_id, staff_id, date and time are required"))
			return
		}

		booking, err := creator.CreateBooking(r.Context(), &req.BookingRequest)

		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			log.Error("invalid contact info", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}

		if errors.Is(err, response.ErrValidation) {
			log.Error("invalid request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_ERROR), "invalid booking request"))
			return
		}

		if errors.Is(err, response.ErrPastDate) {
			log.Error("date is in the past")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.PAST_DATE), "date is in the past"))
			return
		}

		if errors.Is(err, response.ErrBeyondHorizon) {
			log.Error("date is beyond the booking horizon")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BEYOND_HORIZON), "date is beyond the booking horizon"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if errors.Is(err, response.ErrStaffNotEligible) {
			log.Error("staff does not perform the service")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "staff member does not perform this service"))
			return
		}

		if errors.Is(err, response.ErrSlotNotAvailable) {
			log.Error("slot is not available")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.SLOT_NOT_AVAILABLE), "slot is not available"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("resource is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "resource is locked"))
			return
		}

		if errors.Is(err, response.ErrStorageUnavailable) {
			log.Error("storage unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(string(response.STORAGE_UNAVAILABLE), "storage is unavailable, please retry"))
			return
		}

		if err != nil {
			log.Error("Failed to create booking", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create booking"))
			return
		}

		log.Info("Booking created", slog.Any("booking", booking))

		w.WriteHeader(http.StatusCreated)
		responseOK(w, r, booking)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, booking *api.BookingResponse) {
	render.JSON(w, r, Response{
		Booking: *booking,
	})
}
