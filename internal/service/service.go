package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-service/api"
	"salon-service/internal/config"
	"salon-service/internal/lock"
	"salon-service/internal/models"
	"salon-service/internal/notify"
	"salon-service/internal/schedule"
	"salon-service/internal/wizard"
	"salon-service/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Service struct {
	store    Store
	catalog  Catalog
	locker   lock.Locker
	notifier notify.Notifier
	slots    *schedule.Generator
	sessions *wizard.Sessions

	horizonDays     int
	discountPercent int

	now func() time.Time
}

// Store — граница с хранилищем записей. Каждая операция — один запрос-ответ,
// без повторов на этом уровне.
type Store interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]*models.Booking, error)
	ListBookingsByStaffDate(ctx context.Context, staffID, date string) ([]*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
}

// Catalog — читающая граница со справочником: услуги и мастера задаются
// извне, сервис записи их не изменяет.
type Catalog interface {
	Services() []models.Service
	ServiceByID(id string) (*models.Service, error)
	Staff() []models.StaffMember
	StaffByID(id string) (*models.StaffMember, error)
	StaffForService(serviceID string) []models.StaffMember
}

var validate = validator.New()

func NewService(store Store, catalog Catalog, locker lock.Locker, notifier notify.Notifier, cfg config.Booking) *Service {
	return &Service{
		store:           store,
		catalog:         catalog,
		locker:          locker,
		notifier:        notifier,
		slots:           schedule.New(cfg.SlotStepMinutes),
		sessions:        wizard.NewSessions(),
		horizonDays:     cfg.HorizonDays,
		discountPercent: cfg.OnlineDiscountPercent,
		now:             time.Now,
	}
}

// Catalog

func (s *Service) Services(_ context.Context) []*api.ServiceResponse {
	services := s.catalog.Services()

	result := make([]*api.ServiceResponse, 0, len(services))
	for i := range services {
		result = append(result, toServiceResponse(&services[i]))
	}

	return result
}

func (s *Service) ServiceByID(_ context.Context, id string) (*api.ServiceResponse, error) {
	const op = "service.ServiceByID"

	svc, err := s.catalog.ServiceByID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toServiceResponse(svc), nil
}

// StaffForService возвращает мастеров, выполняющих услугу; при пустом
// serviceID — всех мастеров.
func (s *Service) StaffForService(_ context.Context, serviceID string) ([]*api.StaffResponse, error) {
	const op = "service.StaffForService"

	var staff []models.StaffMember
	if serviceID == "" {
		staff = s.catalog.Staff()
	} else {
		if _, err := s.catalog.ServiceByID(serviceID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		staff = s.catalog.StaffForService(serviceID)
	}

	result := make([]*api.StaffResponse, 0, len(staff))
	for i := range staff {
		result = append(result, toStaffResponse(&staff[i]))
	}

	return result, nil
}

// Slots

// AvailableSlots отдаёт свободные времена начала для (услуга, мастер, дата).
// Уже занятые не-отменённые записи этого мастера на эту дату вычитаются.
// Пустой список — это состояние, а не ошибка.
func (s *Service) AvailableSlots(ctx context.Context, serviceID, staffID, date string) (*api.SlotsResponse, error) {
	const op = "service.AvailableSlots"

	slots, err := s.availableSlots(ctx, serviceID, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.SlotsResponse{
		ServiceID: serviceID,
		StaffID:   staffID,
		Date:      date,
		Slots:     slots,
	}, nil
}

func (s *Service) availableSlots(ctx context.Context, serviceID, staffID, date string) ([]string, error) {
	svc, err := s.catalog.ServiceByID(serviceID)
	if err != nil {
		return nil, err
	}

	staff, err := s.catalog.StaffByID(staffID)
	if err != nil {
		return nil, err
	}

	if !staff.Performs(serviceID) {
		return nil, response.ErrStaffNotEligible
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", response.ErrValidation)
	}

	now := s.now()
	if err := s.checkHorizon(day, now); err != nil {
		return nil, err
	}

	slots, err := s.slots.Slots(schedule.Request{Service: *svc, Staff: *staff, Date: day}, now)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookedTimes(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	free := make([]string, 0, len(slots))
	for _, slot := range slots {
		if _, busy := booked[slot]; !busy {
			free = append(free, slot)
		}
	}

	return free, nil
}

// bookedTimes собирает занятые времена мастера на дату; отменённые записи
// не считаются.
func (s *Service) bookedTimes(ctx context.Context, staffID, date string) (map[string]struct{}, error) {
	bookings, err := s.store.ListBookingsByStaffDate(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		booked[b.Time] = struct{}{}
	}

	return booked, nil
}

func (s *Service) checkHorizon(day, now time.Time) error {
	horizon := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, s.horizonDays)
	if day.After(horizon) {
		return response.ErrBeyondHorizon
	}

	return nil
}

// Bookings

func (s *Service) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	const op = "service.CreateBooking"

	draft := wizard.Draft{
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		Date:          req.Date,
		Time:          req.Time,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		Comments:      req.Comments,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
	}

	// прямой путь без мастера проверяет контактные данные по тем же правилам
	if err := validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc, err := s.catalog.ServiceByID(draft.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	price := wizard.ResolvePrice(svc.Price, draft.PaymentMethod, s.discountPercent)

	booking, err := s.createFromDraft(ctx, req.UserID, draft, price)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBookingResponse(booking), nil
}

// createFromDraft — единая точка создания записи для мастера и прямого API.
// Проверка доступности и вставка выполняются под блокировкой ключа
// (мастер, дата, время), чтобы не потерять обновление при одновременных
// попытках занять один слот.
func (s *Service) createFromDraft(ctx context.Context, userID string, draft wizard.Draft, price int) (*models.Booking, error) {
	const op = "service.createFromDraft"

	svc, err := s.catalog.ServiceByID(draft.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	staff, err := s.catalog.StaffByID(draft.StaffID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lockKey := fmt.Sprintf("slot:%s:%s:%s", draft.StaffID, draft.Date, draft.Time)

	locked, err := s.locker.Lock(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	// доступность проверяется уже под блокировкой
	slots, err := s.availableSlots(ctx, draft.ServiceID, draft.StaffID, draft.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !contains(slots, draft.Time) {
		return nil, fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
	}

	status := models.BookingPending
	paymentStatus := models.PaymentUnpaid
	if draft.PaymentMethod == models.PaymentOnline {
		// онлайн-оплата считается синхронно успешной
		status = models.BookingConfirmed
		paymentStatus = models.PaymentPaid
	}

	booking := &models.Booking{
		ID:              newBookingID(),
		UserID:          userID,
		ServiceID:       svc.ID,
		ServiceName:     svc.Title,
		StaffID:         staff.ID,
		StaffName:       staff.Name,
		Date:            draft.Date,
		Time:            draft.Time,
		DurationMinutes: svc.DurationMinutes,
		Price:           price,
		Status:          status,
		PaymentMethod:   draft.PaymentMethod,
		PaymentStatus:   paymentStatus,
		ClientName:      draft.ClientName,
		ClientPhone:     draft.ClientPhone,
		ClientEmail:     draft.ClientEmail,
		Comments:        draft.Comments,
		CreatedAt:       s.now(),
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, response.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
		}
		return nil, fmt.Errorf("%s: %w: %s", op, response.ErrStorageUnavailable, err)
	}

	_ = s.notifier.BookingCreated(ctx, booking)

	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	const op = "service.GetBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBookingResponse(booking), nil
}

func (s *Service) ListBookings(ctx context.Context, userID string) ([]*api.BookingResponse, error) {
	const op = "service.ListBookings"

	bookings, err := s.store.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, toBookingResponse(booking))
	}

	return result, nil
}

func (s *Service) CancelBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	const op = "service.CancelBooking"

	booking, err := s.store.CancelBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.notifier.BookingCancelled(ctx, booking)

	return toBookingResponse(booking), nil
}

func newBookingID() string {
	return "BK-" + uuid.NewString()[:8]
}

func contains(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}

func toServiceResponse(svc *models.Service) *api.ServiceResponse {
	return &api.ServiceResponse{
		ID:              svc.ID,
		Title:           svc.Title,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
		Category:        svc.Category,
	}
}

func toStaffResponse(staff *models.StaffMember) *api.StaffResponse {
	return &api.StaffResponse{
		ID:         staff.ID,
		Name:       staff.Name,
		Position:   staff.Position,
		ServiceIDs: staff.ServiceIDs,
		WorkDays:   staff.WorkDays,
		WorkHours: api.WorkHours{
			Start: staff.WorkHours.Start,
			End:   staff.WorkHours.End,
		},
	}
}

func toBookingResponse(booking *models.Booking) *api.BookingResponse {
	return &api.BookingResponse{
		ID:              booking.ID,
		UserID:          booking.UserID,
		ServiceID:       booking.ServiceID,
		ServiceName:     booking.ServiceName,
		StaffID:         booking.StaffID,
		StaffName:       booking.StaffName,
		Date:            booking.Date,
		Time:            booking.Time,
		DurationMinutes: booking.DurationMinutes,
		Price:           booking.Price,
		Status:          string(booking.Status),
		PaymentMethod:   string(booking.PaymentMethod),
		PaymentStatus:   string(booking.PaymentStatus),
		ClientName:      booking.ClientName,
		ClientPhone:     booking.ClientPhone,
		ClientEmail:     booking.ClientEmail,
		Comments:        booking.Comments,
		CreatedAt:       booking.CreatedAt,
	}
}
