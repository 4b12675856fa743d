package notify

import (
	"context"

	"salon-service/internal/models"
)

// Notifier — канал уведомлений о событиях записи. Отправка не должна влиять
// на исход самой операции: ошибки уведомления только логируются вызывающим.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *models.Booking) error
	BookingCancelled(ctx context.Context, booking *models.Booking) error
}

// Noop используется, когда канал уведомлений не настроен.
type Noop struct{}

func (Noop) BookingCreated(_ context.Context, _ *models.Booking) error {
	return nil
}

func (Noop) BookingCancelled(_ context.Context, _ *models.Booking) error {
	return nil
}
