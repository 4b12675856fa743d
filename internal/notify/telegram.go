package notify

import (
	"context"
	"fmt"

	"salon-service/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram шлёт уведомления о новых и отменённых записях в чат салона.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	const op = "notify.NewTelegram"

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) BookingCreated(_ context.Context, booking *models.Booking) error {
	const op = "notify.Telegram.BookingCreated"

	text := fmt.Sprintf(
		"🆕 Новая запись %s\n%s — %s\n%s %s, %d мин\nКлиент: %s, %s\nОплата: %s (%s), %d ₽",
		booking.ID,
		booking.ServiceName, booking.StaffName,
		booking.Date, booking.Time, booking.DurationMinutes,
		booking.ClientName, booking.ClientPhone,
		booking.PaymentMethod, booking.PaymentStatus, booking.Price,
	)

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (t *Telegram) BookingCancelled(_ context.Context, booking *models.Booking) error {
	const op = "notify.Telegram.BookingCancelled"

	text := fmt.Sprintf(
		"❌ Отмена записи %s\n%s — %s\n%s %s\nКлиент: %s",
		booking.ID,
		booking.ServiceName, booking.StaffName,
		booking.Date, booking.Time,
		booking.ClientName,
	)

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
