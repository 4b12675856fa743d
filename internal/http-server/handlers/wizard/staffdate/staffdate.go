package staffdate

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

type StaffDateSetter interface {
	WizardSetStaffDate(ctx context.Context, id string, req *api.WizardStaffDateRequest) (*api.WizardStateResponse, error)
}

type Request struct {
	api.WizardStaffDateRequest
}

type Response struct {
	response.Response
	Wizard api.WizardStateResponse `json:"wizard"`
}

func New(log *slog.Logger, setter StaffDateSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.wizard.staffdate.New"

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

		if req.StaffID == "" || req.Date == "" {
			log.Error("staff_id or date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "staff_id and date are required"))
			return
		}

		state, err := setter.WizardSetStaffDate(r.Context(), id, &req.WizardStaffDateRequest)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("wizard session or staff not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "wizard session or staff not found"))
			return
		}

		if errors.Is(err, response.ErrStaffNotEligible) {
			log.Error("staff does not perform the selected service")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "staff member does not perform the selected service"))
			return
		}

		if errors.Is(err, response.ErrSlotNotAvailable) {
			log.Error("slot is not available", slog.String("time", req.Time))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.SLOT_NOT_AVAILABLE), "slot is not available"))
			return
		}

		if errors.Is(err, response.ErrPastDate) {
			log.Error("date is in the past", slog.String("date", req.Date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.PAST_DATE), "date is in the past"))
			return
		}

		if errors.Is(err, response.ErrBeyondHorizon) {
			log.Error("date is beyond the booking horizon", slog.String("date", req.Date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BEYOND_HORIZON), "date is beyond the booking horizon"))
			return
		}

		if errors.Is(err, response.ErrValidation) {
			log.Error("invalid date", slog.String("date", req.Date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_ERROR), "invalid date format, expected YYYY-MM-DD"))
			return
		}

		if errors.Is(err, response.ErrInvalidTransition) {
			log.Error("staff and date selection is not allowed at the current step")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.INVALID_TRANSITION), "staff and date selection is not allowed at the current step"))
			return
		}

		if err != nil {
			log.Error("Failed to set staff and date", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to set staff and date"))
			return
		}

		render.JSON(w, r, Response{Wizard: *state})
	}
}
