package create

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salon-service/api"
	"salon-service/pkg/response"
)

type stubCreator struct {
	booking *api.BookingResponse
	err     error
}

func (s *stubCreator) CreateBooking(_ context.Context, _ *api.BookingRequest) (*api.BookingResponse, error) {
	return s.booking, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func validBody() []byte {
	b, _ := json.Marshal(api.BookingRequest{
		UserID:        "user-1",
		ServiceID:     "haircut-women",
		StaffID:       "stylist-1",
		Date:          "2025-05-02",
		Time:          "11:00",
		ClientName:    "Мария",
		ClientPhone:   "+79001234567",
		ClientEmail:   "maria@example.com",
		PaymentMethod: "online",
	})
	return b
}

func TestCreateBookingOK(t *testing.T) {
	creator := &stubCreator{booking: &api.BookingResponse{
		ID:        "BK-abc12345",
		UserID:    "user-1",
		ServiceID: "haircut-women",
		StaffID:   "stylist-1",
		Date:      "2025-05-02",
		Time:      "11:00",
		Price:     2375,
		Status:    "confirmed",
		CreatedAt: time.Now(),
	}}

	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(validBody()))
	resp := httptest.NewRecorder()
	New(discardLogger(), creator).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var body Response
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Booking.ID != "BK-abc12345" {
		t.Errorf("expected booking id BK-abc12345, got %q", body.Booking.ID)
	}
	if body.Booking.Price != 2375 {
		t.Errorf("expected price 2375, got %d", body.Booking.Price)
	}
}

func TestCreateBookingMissingFields(t *testing.T) {
	b, _ := json.Marshal(api.BookingRequest{UserID: "user-1", ServiceID: "haircut-women"})

	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(b))
	resp := httptest.NewRecorder()
	New(discardLogger(), &stubCreator{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateBookingBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader([]byte("{not json")))
	resp := httptest.NewRecorder()
	New(discardLogger(), &stubCreator{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateBookingErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"slot taken", response.ErrSlotNotAvailable, http.StatusConflict, "SLOT_NOT_AVAILABLE"},
		{"not found", response.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"past date", response.ErrPastDate, http.StatusBadRequest, "PAST_DATE"},
		{"beyond horizon", response.ErrBeyondHorizon, http.StatusBadRequest, "BEYOND_HORIZON"},
		{"locked", response.ErrLocked, http.StatusLocked, "LOCKED"},
		{"staff not eligible", response.ErrStaffNotEligible, http.StatusConflict, "CONFLICT"},
		{"storage down", response.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creator := &stubCreator{err: fmt.Errorf("service.CreateBooking: %w", tc.err)}

			req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(validBody()))
			resp := httptest.NewRecorder()
			New(discardLogger(), creator).ServeHTTP(resp, req)

			if resp.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, resp.Code)
			}
			if !bytes.Contains(resp.Body.Bytes(), []byte(tc.wantBody)) {
				t.Errorf("expected body to contain %q, got %s", tc.wantBody, resp.Body.String())
			}
		})
	}
}
