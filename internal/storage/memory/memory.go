package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"salon-service/internal/models"
	"salon-service/pkg/response"
)

// Storage — мок-хранилище записей в памяти. Мутации только в CreateBooking и
// CancelBooking, обе атомарны под мьютексом. Записи никогда не удаляются:
// отмена — мягкая смена статуса.
type Storage struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking
}

func New() *Storage {
	return &Storage{bookings: make(map[string]*models.Booking)}
}

func (s *Storage) CreateBooking(_ context.Context, booking *models.Booking) error {
	const op = "storage.memory.CreateBooking"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; ok {
		return fmt.Errorf("%s: %w", op, response.ErrConflict)
	}

	// храним копию: последующие изменения каталога или аргумента
	// не должны менять уже созданную запись
	b := *booking
	s.bookings[b.ID] = &b

	return nil
}

func (s *Storage) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	const op = "storage.memory.GetBooking"

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	cp := *b
	return &cp, nil
}

func (s *Storage) ListBookingsByUser(_ context.Context, userID string) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			cp := *b
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})

	return result, nil
}

func (s *Storage) ListBookingsByStaffDate(_ context.Context, staffID, date string) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Booking, 0)
	for _, b := range s.bookings {
		if b.StaffID == staffID && b.Date == date {
			cp := *b
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Time < result[j].Time })

	return result, nil
}

// CancelBooking переводит запись в cancelled без проверки текущего статуса —
// отменить можно и завершённую запись.
func (s *Storage) CancelBooking(_ context.Context, id string) (*models.Booking, error) {
	const op = "storage.memory.CancelBooking"

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	b.Status = models.BookingCancelled

	cp := *b
	return &cp, nil
}
