package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-service/internal/models"
	"salon-service/pkg/response"
)

func testBooking(id, userID, date, timeStr string) *models.Booking {
	return &models.Booking{
		ID:              id,
		UserID:          userID,
		ServiceID:       "haircut-women",
		ServiceName:     "Женская стрижка",
		StaffID:         "stylist-1",
		StaffName:       "Анна Петрова",
		Date:            date,
		Time:            timeStr,
		DurationMinutes: 60,
		Price:           2375,
		Status:          models.BookingConfirmed,
		PaymentMethod:   models.PaymentOnline,
		PaymentStatus:   models.PaymentPaid,
		CreatedAt:       time.Now(),
	}
}

func TestCreateAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	b := testBooking("BK-1", "user-1", "2025-05-05", "10:00")
	if err := s.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	got, err := s.GetBooking(ctx, "BK-1")
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if got.Price != 2375 || got.ServiceName != "Женская стрижка" {
		t.Fatalf("unexpected booking: %+v", got)
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	s := New()
	ctx := context.Background()

	b := testBooking("BK-1", "user-1", "2025-05-05", "10:00")
	if err := s.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if err := s.CreateBooking(ctx, b); !errors.Is(err, response.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate id, got %v", err)
	}
}

func TestSnapshotImmutability(t *testing.T) {
	s := New()
	ctx := context.Background()

	b := testBooking("BK-1", "user-1", "2025-05-05", "10:00")
	if err := s.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// мутация исходной структуры после create не должна менять запись
	b.Price = 1
	b.ServiceName = "changed"

	got, err := s.GetBooking(ctx, "BK-1")
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if got.Price != 2375 || got.ServiceName != "Женская стрижка" {
		t.Fatalf("stored booking mutated after create: %+v", got)
	}

	// мутация возвращённой копии тоже не влияет на хранилище
	got.Price = 2

	again, _ := s.GetBooking(ctx, "BK-1")
	if again.Price != 2375 {
		t.Fatalf("stored booking mutated through returned copy: %+v", again)
	}
}

func TestListByUser_SortedByDate(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.CreateBooking(ctx, testBooking("BK-2", "user-1", "2025-05-20", "11:00"))
	_ = s.CreateBooking(ctx, testBooking("BK-1", "user-1", "2025-05-05", "10:00"))
	_ = s.CreateBooking(ctx, testBooking("BK-3", "user-2", "2025-05-01", "09:00"))

	got, err := s.ListBookingsByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListBookingsByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings for user-1, got %d", len(got))
	}
	if got[0].ID != "BK-1" || got[1].ID != "BK-2" {
		t.Fatalf("expected date-ascending order, got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestCancel(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.CreateBooking(ctx, testBooking("BK-1", "user-1", "2025-05-05", "10:00"))

	got, err := s.CancelBooking(ctx, "BK-1")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if got.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled status, got %s", got.Status)
	}

	// повторная отмена существующей записи допустима (статусных ограничений нет)
	if _, err := s.CancelBooking(ctx, "BK-1"); err != nil {
		t.Fatalf("second cancel on existing booking: %v", err)
	}

	// запись не удалена
	if _, err := s.GetBooking(ctx, "BK-1"); err != nil {
		t.Fatalf("booking must survive cancellation: %v", err)
	}
}

func TestCancel_CompletedAllowed(t *testing.T) {
	s := New()
	ctx := context.Background()

	b := testBooking("BK-1", "user-1", "2025-05-05", "10:00")
	b.Status = models.BookingCompleted
	_ = s.CreateBooking(ctx, b)

	got, err := s.CancelBooking(ctx, "BK-1")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if got.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
}

func TestCancel_NotFound(t *testing.T) {
	s := New()

	if _, err := s.CancelBooking(context.Background(), "BK-missing"); !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
