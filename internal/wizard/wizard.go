package wizard

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"salon-service/internal/models"
	"salon-service/pkg/response"

	"github.com/go-playground/validator/v10"
)

// Step — шаг мастера записи. Переходы строго линейные, без ветвлений.
type Step int

const (
	StepServiceSelection Step = iota
	StepStaffAndDate
	StepContactInfo
	StepSummary
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepServiceSelection:
		return "service_selection"
	case StepStaffAndDate:
		return "staff_and_date"
	case StepContactInfo:
		return "contact_info"
	case StepSummary:
		return "summary"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// Draft — черновик записи, накапливается по шагам. Никогда не сохраняется
// частично: в хранилище попадает только при финальном подтверждении.
type Draft struct {
	ServiceID     string
	StaffID       string
	Date          string // "2006-01-02"
	Time          string // "15:04"
	ClientName    string               `validate:"required,min=2"`
	ClientPhone   string               `validate:"required,min=5"`
	ClientEmail   string               `validate:"required,email"`
	Comments      string               `validate:"-"`
	PaymentMethod models.PaymentMethod `validate:"required,oneof=online cash"`
}

// Catalog — читающая граница со справочником услуг и мастеров.
type Catalog interface {
	ServiceByID(id string) (*models.Service, error)
	StaffByID(id string) (*models.StaffMember, error)
}

// CreateFunc выполняет сохранение брони на переходе Summary -> Confirmation.
type CreateFunc func(ctx context.Context, draft Draft, price int) (*models.Booking, error)

var validate = validator.New()

type Wizard struct {
	id     string
	userID string

	catalog         Catalog
	discountPercent int

	mu            sync.Mutex
	step          Step
	draft         Draft
	price         int
	priceResolved bool
	creating      bool
	booking       *models.Booking
}

func New(id, userID string, catalog Catalog, discountPercent int) *Wizard {
	return &Wizard{
		id:              id,
		userID:          userID,
		catalog:         catalog,
		discountPercent: discountPercent,
		step:            StepServiceSelection,
	}
}

// Prefill подставляет контактные данные из профиля пользователя.
func (w *Wizard) Prefill(name, phone, email string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.draft.ClientName = name
	w.draft.ClientPhone = phone
	w.draft.ClientEmail = email
}

// WithService — вход в мастер с предвыбранной услугой: сразу на выбор
// мастера и даты.
func (w *Wizard) WithService(serviceID string) error {
	const op = "wizard.WithService"

	if _, err := w.catalog.ServiceByID(serviceID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.draft.ServiceID = serviceID
	w.step = StepStaffAndDate

	return nil
}

func (w *Wizard) ID() string     { return w.id }
func (w *Wizard) UserID() string { return w.userID }

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.step
}

func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.draft
}

// Price возвращает итоговую цену и признак того, что она уже рассчитана
// (рассчитывается один раз, на переходе к Summary).
func (w *Wizard) Price() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.price, w.priceResolved
}

func (w *Wizard) Booking() *models.Booking {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.booking
}

// SetService выбирает услугу. Смена услуги сбрасывает мастера, дату и время:
// у другой услуги другая длительность и другой список мастеров.
func (w *Wizard) SetService(serviceID string) error {
	const op = "wizard.SetService"

	if _, err := w.catalog.ServiceByID(serviceID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepServiceSelection {
		return fmt.Errorf("%s: %w", op, response.ErrInvalidTransition)
	}

	if w.draft.ServiceID != serviceID {
		w.draft.StaffID = ""
		w.draft.Date = ""
		w.draft.Time = ""
	}
	w.draft.ServiceID = serviceID

	return nil
}

// SetStaffAndDate выбирает мастера, дату и, опционально, время. Смена мастера
// или даты сбрасывает время: прежние слоты больше не действительны.
func (w *Wizard) SetStaffAndDate(staffID, date, timeStr string) error {
	const op = "wizard.SetStaffAndDate"

	staff, err := w.catalog.StaffByID(staffID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%s: invalid date: %w", op, response.ErrValidation)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepStaffAndDate {
		return fmt.Errorf("%s: %w", op, response.ErrInvalidTransition)
	}

	if !staff.Performs(w.draft.ServiceID) {
		return fmt.Errorf("%s: %w", op, response.ErrStaffNotEligible)
	}

	if w.draft.StaffID != staffID || w.draft.Date != date {
		w.draft.Time = ""
	}
	w.draft.StaffID = staffID
	w.draft.Date = date

	if timeStr != "" {
		if _, err := time.Parse("15:04", timeStr); err != nil {
			return fmt.Errorf("%s: invalid time: %w", op, response.ErrValidation)
		}
		w.draft.Time = timeStr
	}

	return nil
}

// SetContact сохраняет контактные данные; проверка формата откладывается до
// перехода вперёд.
func (w *Wizard) SetContact(name, phone, email, comments string, paymentMethod models.PaymentMethod) error {
	const op = "wizard.SetContact"

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepContactInfo {
		return fmt.Errorf("%s: %w", op, response.ErrInvalidTransition)
	}

	w.draft.ClientName = name
	w.draft.ClientPhone = phone
	w.draft.ClientEmail = email
	w.draft.Comments = comments
	w.draft.PaymentMethod = paymentMethod

	return nil
}

// Next — переход вперёд. Каждый переход проверяет свои предусловия сам,
// независимо от того, что уже проверяла форма.
func (w *Wizard) Next() error {
	const op = "wizard.Next"

	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepServiceSelection:
		if w.draft.ServiceID == "" {
			return fmt.Errorf("%s: service is not chosen: %w", op, response.ErrValidation)
		}
		if _, err := w.catalog.ServiceByID(w.draft.ServiceID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		w.step = StepStaffAndDate

	case StepStaffAndDate:
		if w.draft.StaffID == "" || w.draft.Date == "" || w.draft.Time == "" {
			return fmt.Errorf("%s: staff, date and time must be chosen: %w", op, response.ErrValidation)
		}
		staff, err := w.catalog.StaffByID(w.draft.StaffID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if !staff.Performs(w.draft.ServiceID) {
			return fmt.Errorf("%s: %w", op, response.ErrStaffNotEligible)
		}
		w.step = StepContactInfo

	case StepContactInfo:
		if err := validate.Struct(w.draft); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		svc, err := w.catalog.ServiceByID(w.draft.ServiceID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		w.price = ResolvePrice(svc.Price, w.draft.PaymentMethod, w.discountPercent)
		w.priceResolved = true
		w.step = StepSummary

	default:
		// Summary -> Confirmation только через Confirm, Confirmation — терминальный
		return fmt.Errorf("%s: %w", op, response.ErrInvalidTransition)
	}

	return nil
}

// Back — шаг назад. Данные черновика сохраняются; цена будет рассчитана
// заново при повторном переходе к Summary.
func (w *Wizard) Back() error {
	const op = "wizard.Back"

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepServiceSelection || w.step == StepConfirmation {
		return fmt.Errorf("%s: %w", op, response.ErrInvalidTransition)
	}

	if w.step == StepSummary {
		w.priceResolved = false
	}
	w.step--

	return nil
}

// Confirm создаёт бронь через create. При ошибке черновик сохраняется и
// мастер остаётся на Summary — пользователь может повторить без перезаполнения.
// Повторный Confirm во время выполнения create отклоняется.
func (w *Wizard) Confirm(ctx context.Context, create CreateFunc) (*models.Booking, error) {
	const op = "wizard.Confirm"

	w.mu.Lock()
	if w.step != StepSummary {
		w.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, response.ErrInvalidTransition)
	}
	if w.creating {
		w.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, response.ErrCreateInFlight)
	}
	w.creating = true
	draft := w.draft
	price := w.price
	w.mu.Unlock()

	booking, err := create(ctx, draft, price)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.creating = false
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w.booking = booking
	w.step = StepConfirmation

	return booking, nil
}

// ResolvePrice применяет скидку за онлайн-оплату; при оплате на месте цена
// не меняется.
func ResolvePrice(base int, method models.PaymentMethod, discountPercent int) int {
	if method != models.PaymentOnline {
		return base
	}

	return int(math.Round(float64(base) * float64(100-discountPercent) / 100))
}
