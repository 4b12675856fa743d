package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"salon-service/internal/models"
	"salon-service/pkg/response"

	_ "github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) CreateBooking(ctx context.Context, booking *models.Booking) error {
	const op = "storage.postgres.CreateBooking"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (
			id, user_id, service_id, service_name, staff_id, staff_name,
			date, time, duration_minutes, price, status,
			payment_method, payment_status,
			client_name, client_phone, client_email, comments, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		booking.ID, booking.UserID, booking.ServiceID, booking.ServiceName,
		booking.StaffID, booking.StaffName,
		booking.Date, booking.Time, booking.DurationMinutes, booking.Price, booking.Status,
		booking.PaymentMethod, booking.PaymentStatus,
		booking.ClientName, booking.ClientPhone, booking.ClientEmail, booking.Comments, booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

const bookingColumns = `
	id, user_id, service_id, service_name, staff_id, staff_name,
	date, time, duration_minutes, price, status,
	payment_method, payment_status,
	client_name, client_phone, client_email, comments, created_at`

func scanBooking(row interface {
	Scan(dest ...any) error
}) (*models.Booking, error) {
	var b models.Booking

	err := row.Scan(
		&b.ID, &b.UserID, &b.ServiceID, &b.ServiceName, &b.StaffID, &b.StaffName,
		&b.Date, &b.Time, &b.DurationMinutes, &b.Price, &b.Status,
		&b.PaymentMethod, &b.PaymentStatus,
		&b.ClientName, &b.ClientPhone, &b.ClientEmail, &b.Comments, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (s *Storage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.postgres.GetBooking"

	row := s.db.QueryRowContext(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE id=$1`, id)

	b, err := scanBooking(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func (s *Storage) ListBookingsByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	const op = "storage.postgres.ListBookingsByUser"

	rows, err := s.db.QueryContext(ctx,
		`SELECT`+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY date, time`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *Storage) ListBookingsByStaffDate(ctx context.Context, staffID, date string) ([]*models.Booking, error) {
	const op = "storage.postgres.ListBookingsByStaffDate"

	rows, err := s.db.QueryContext(ctx,
		`SELECT`+bookingColumns+` FROM bookings WHERE staff_id=$1 AND date=$2 ORDER BY time`, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// CancelBooking выполняет read-check-then-write одной транзакцией.
// Статус меняется на cancelled без ограничений на текущий статус.
func (s *Storage) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.postgres.CancelBooking"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE id=$1 FOR UPDATE`, id)

	b, err := scanBooking(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, models.BookingCancelled, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	b.Status = models.BookingCancelled

	return b, nil
}
