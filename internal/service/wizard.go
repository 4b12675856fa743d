package service

import (
	"context"
	"fmt"

	"salon-service/api"
	"salon-service/internal/models"
	"salon-service/internal/wizard"
	"salon-service/pkg/response"

	"github.com/google/uuid"
)

// Мастер записи: сервис владеет сессиями и подкладывает в переходы
// вычисление слотов и создание брони.

func (s *Service) StartWizard(ctx context.Context, req *api.WizardStartRequest) (*api.WizardStateResponse, error) {
	const op = "service.StartWizard"

	w := wizard.New(newWizardID(), req.UserID, s.catalog, s.discountPercent)
	w.Prefill(req.ClientName, req.ClientPhone, req.ClientEmail)

	if req.ServiceID != "" {
		if err := w.WithService(req.ServiceID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	s.sessions.Put(w)

	return s.wizardState(ctx, w), nil
}

func (s *Service) WizardState(ctx context.Context, id string) (*api.WizardStateResponse, error) {
	const op = "service.WizardState"

	w, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.wizardState(ctx, w), nil
}

// WizardSelectService выбирает услугу и переходит к выбору мастера и даты.
func (s *Service) WizardSelectService(ctx context.Context, id, serviceID string) (*api.WizardStateResponse, error) {
	const op = "service.WizardSelectService"

	w, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := w.SetService(serviceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := w.Next(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.wizardState(ctx, w), nil
}

// WizardSetStaffDate выбирает мастера и дату; при указанном времени проверяет
// его по актуальным слотам и переходит к контактным данным. Без времени —
// остаётся на шаге и возвращает доступные слоты.
func (s *Service) WizardSetStaffDate(ctx context.Context, id string, req *api.WizardStaffDateRequest) (*api.WizardStateResponse, error) {
	const op = "service.WizardSetStaffDate"

	w, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := w.SetStaffAndDate(req.StaffID, req.Date, req.Time); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.Time != "" {
		draft := w.Draft()
		slots, err := s.availableSlots(ctx, draft.ServiceID, draft.StaffID, draft.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !contains(slots, req.Time) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
		}
		if err := w.Next(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return s.wizardState(ctx, w), nil
}

// WizardSetContact сохраняет контактные данные и переходит к сводке;
// на этом переходе рассчитывается итоговая цена.
func (s *Service) WizardSetContact(ctx context.Context, id string, req *api.WizardContactRequest) (*api.WizardStateResponse, error) {
	const op = "service.WizardSetContact"

	w, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := w.SetContact(req.ClientName, req.ClientPhone, req.ClientEmail, req.Comments, models.PaymentMethod(req.PaymentMethod)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := w.Next(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.wizardState(ctx, w), nil
}

func (s *Service) WizardBack(ctx context.Context, id string) (*api.WizardStateResponse, error) {
	const op = "service.WizardBack"

	w, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := w.Back(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.wizardState(ctx, w), nil
}

// WizardConfirm создаёт запись из накопленного черновика. При ошибке
// хранилища черновик сохраняется и подтверждение можно повторить.
func (s *Service) WizardConfirm(ctx context.Context, id string) (*api.WizardStateResponse, error) {
	const op = "service.WizardConfirm"

	w, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = w.Confirm(ctx, func(ctx context.Context, draft wizard.Draft, price int) (*models.Booking, error) {
		return s.createFromDraft(ctx, w.UserID(), draft, price)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.wizardState(ctx, w), nil
}

// AbandonWizard удаляет сессию: черновик просто отбрасывается, в хранилище
// ещё ничего не попало.
func (s *Service) AbandonWizard(_ context.Context, id string) error {
	const op = "service.AbandonWizard"

	if _, err := s.sessions.Get(id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.sessions.Delete(id)

	return nil
}

func (s *Service) wizardState(ctx context.Context, w *wizard.Wizard) *api.WizardStateResponse {
	draft := w.Draft()

	state := &api.WizardStateResponse{
		ID:     w.ID(),
		UserID: w.UserID(),
		Step:   w.Step().String(),
		Draft: api.WizardDraft{
			ServiceID:     draft.ServiceID,
			StaffID:       draft.StaffID,
			Date:          draft.Date,
			Time:          draft.Time,
			ClientName:    draft.ClientName,
			ClientPhone:   draft.ClientPhone,
			ClientEmail:   draft.ClientEmail,
			Comments:      draft.Comments,
			PaymentMethod: string(draft.PaymentMethod),
		},
	}

	if price, ok := w.Price(); ok {
		state.Price = &price
	}

	// на шаге выбора даты показываем актуальные слоты, чтобы устаревшие
	// варианты не предлагались
	if w.Step() == wizard.StepStaffAndDate && draft.StaffID != "" && draft.Date != "" {
		if slots, err := s.availableSlots(ctx, draft.ServiceID, draft.StaffID, draft.Date); err == nil {
			state.AvailableSlots = slots
		}
	}

	if booking := w.Booking(); booking != nil {
		state.Booking = toBookingResponse(booking)
	}

	return state
}

func newWizardID() string {
	return "WZ-" + uuid.NewString()[:8]
}
