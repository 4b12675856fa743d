package wizard

import (
	"context"
	"errors"
	"testing"

	"salon-service/internal/catalog"
	"salon-service/internal/models"
	"salon-service/pkg/response"
)

const (
	testDate = "2025-05-05" // Monday, stylist-1 working day
	testTime = "10:00"
)

func newTestWizard(t *testing.T) *Wizard {
	t.Helper()
	return New("wz-1", "user-1", catalog.New(), 5)
}

func fillToSummary(t *testing.T, w *Wizard, method models.PaymentMethod) {
	t.Helper()

	if err := w.SetService("haircut-women"); err != nil {
		t.Fatalf("SetService: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next to staff_and_date: %v", err)
	}
	if err := w.SetStaffAndDate("stylist-1", testDate, testTime); err != nil {
		t.Fatalf("SetStaffAndDate: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next to contact_info: %v", err)
	}
	if err := w.SetContact("Анна", "+79991234567", "anna@example.com", "", method); err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next to summary: %v", err)
	}
}

func stubCreate(b *models.Booking, err error) CreateFunc {
	return func(_ context.Context, _ Draft, _ int) (*models.Booking, error) {
		return b, err
	}
}

func TestWizard_Monotonicity(t *testing.T) {
	w := newTestWizard(t)

	// Summary недостижим без прохождения предыдущих шагов
	if _, err := w.Confirm(context.Background(), stubCreate(nil, nil)); !errors.Is(err, response.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from initial step, got %v", err)
	}

	if err := w.Next(); !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected ErrValidation without chosen service, got %v", err)
	}

	if err := w.SetContact("a", "b", "c", "", models.PaymentCash); !errors.Is(err, response.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for SetContact at step 0, got %v", err)
	}

	if got := w.Step(); got != StepServiceSelection {
		t.Fatalf("step changed on failed transitions: %s", got)
	}
}

func TestWizard_FullFlowOnline(t *testing.T) {
	w := newTestWizard(t)
	fillToSummary(t, w, models.PaymentOnline)

	price, ok := w.Price()
	if !ok {
		t.Fatal("price must be resolved at summary")
	}
	if price != 2375 {
		t.Fatalf("expected online price 2375, got %d", price)
	}

	booking := &models.Booking{ID: "BK-test", Status: models.BookingConfirmed}
	got, err := w.Confirm(context.Background(), stubCreate(booking, nil))
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got.ID != "BK-test" {
		t.Fatalf("unexpected booking: %+v", got)
	}
	if w.Step() != StepConfirmation {
		t.Fatalf("expected confirmation step, got %s", w.Step())
	}

	// терминальный шаг
	if err := w.Back(); !errors.Is(err, response.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on Back from confirmation, got %v", err)
	}
}

func TestWizard_CashPriceUnchanged(t *testing.T) {
	w := newTestWizard(t)
	fillToSummary(t, w, models.PaymentCash)

	price, ok := w.Price()
	if !ok || price != 2500 {
		t.Fatalf("expected cash price 2500, got %d (resolved=%v)", price, ok)
	}
}

func TestWizard_ServiceChangeClearsStaffDateTime(t *testing.T) {
	w := newTestWizard(t)

	if err := w.SetService("haircut-women"); err != nil {
		t.Fatalf("SetService: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := w.SetStaffAndDate("stylist-1", testDate, testTime); err != nil {
		t.Fatalf("SetStaffAndDate: %v", err)
	}

	if err := w.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if err := w.SetService("styling"); err != nil {
		t.Fatalf("SetService (new): %v", err)
	}

	d := w.Draft()
	if d.StaffID != "" || d.Date != "" || d.Time != "" {
		t.Fatalf("expected staff/date/time cleared after service change, got %+v", d)
	}
	if d.ServiceID != "styling" {
		t.Fatalf("expected new service kept, got %q", d.ServiceID)
	}
}

func TestWizard_StaffOrDateChangeClearsTime(t *testing.T) {
	w := newTestWizard(t)

	if err := w.SetService("haircut-women"); err != nil {
		t.Fatalf("SetService: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := w.SetStaffAndDate("stylist-1", testDate, testTime); err != nil {
		t.Fatalf("SetStaffAndDate: %v", err)
	}

	// другой мастер — время сбрасывается
	if err := w.SetStaffAndDate("stylist-4", testDate, ""); err != nil {
		t.Fatalf("SetStaffAndDate (staff change): %v", err)
	}
	if d := w.Draft(); d.Time != "" {
		t.Fatalf("expected time cleared after staff change, got %q", d.Time)
	}

	if err := w.SetStaffAndDate("stylist-4", testDate, testTime); err != nil {
		t.Fatalf("SetStaffAndDate: %v", err)
	}

	// другая дата — время сбрасывается
	if err := w.SetStaffAndDate("stylist-4", "2025-05-07", ""); err != nil {
		t.Fatalf("SetStaffAndDate (date change): %v", err)
	}
	if d := w.Draft(); d.Time != "" {
		t.Fatalf("expected time cleared after date change, got %q", d.Time)
	}
}

func TestWizard_StaffNotEligible(t *testing.T) {
	w := newTestWizard(t)

	// stylist-2 (барбер) не выполняет женскую стрижку
	if err := w.SetService("haircut-women"); err != nil {
		t.Fatalf("SetService: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := w.SetStaffAndDate("stylist-2", testDate, testTime); !errors.Is(err, response.ErrStaffNotEligible) {
		t.Fatalf("expected ErrStaffNotEligible, got %v", err)
	}
}

func TestWizard_ContactValidation(t *testing.T) {
	w := newTestWizard(t)

	if err := w.SetService("haircut-women"); err != nil {
		t.Fatalf("SetService: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := w.SetStaffAndDate("stylist-1", testDate, testTime); err != nil {
		t.Fatalf("SetStaffAndDate: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}

	if err := w.SetContact("Анна", "+79991234567", "not-an-email", "", models.PaymentOnline); err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	if err := w.Next(); err == nil {
		t.Fatal("expected validation error for malformed email")
	}

	// ошибка локальна: шаг не изменился, черновик сохранён
	if w.Step() != StepContactInfo {
		t.Fatalf("step must stay at contact_info, got %s", w.Step())
	}
	if d := w.Draft(); d.ClientName != "Анна" {
		t.Fatalf("draft must be preserved, got %+v", d)
	}

	// исправили — проходит
	if err := w.SetContact("Анна", "+79991234567", "anna@example.com", "", models.PaymentOnline); err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next after fix: %v", err)
	}
}

func TestWizard_ConfirmFailureKeepsDraft(t *testing.T) {
	w := newTestWizard(t)
	fillToSummary(t, w, models.PaymentOnline)

	storeErr := response.ErrStorageUnavailable
	if _, err := w.Confirm(context.Background(), stubCreate(nil, storeErr)); !errors.Is(err, response.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	if w.Step() != StepSummary {
		t.Fatalf("expected to stay at summary after failed create, got %s", w.Step())
	}
	if d := w.Draft(); d.ClientEmail != "anna@example.com" {
		t.Fatalf("draft must be preserved after failed create, got %+v", d)
	}

	// повтор после восстановления хранилища
	booking := &models.Booking{ID: "BK-retry"}
	if _, err := w.Confirm(context.Background(), stubCreate(booking, nil)); err != nil {
		t.Fatalf("retry Confirm: %v", err)
	}
	if w.Step() != StepConfirmation {
		t.Fatalf("expected confirmation after retry, got %s", w.Step())
	}
}

func TestWizard_SingleInFlightCreate(t *testing.T) {
	w := newTestWizard(t)
	fillToSummary(t, w, models.PaymentCash)

	entered := make(chan struct{})
	release := make(chan struct{})

	slowCreate := func(_ context.Context, _ Draft, _ int) (*models.Booking, error) {
		close(entered)
		<-release
		return &models.Booking{ID: "BK-slow"}, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := w.Confirm(context.Background(), slowCreate)
		done <- err
	}()

	<-entered
	if _, err := w.Confirm(context.Background(), stubCreate(nil, nil)); !errors.Is(err, response.ErrCreateInFlight) {
		t.Fatalf("expected ErrCreateInFlight, got %v", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
}

func TestWizard_PreselectedService(t *testing.T) {
	w := newTestWizard(t)

	if err := w.WithService("haircut-men"); err != nil {
		t.Fatalf("WithService: %v", err)
	}
	if w.Step() != StepStaffAndDate {
		t.Fatalf("expected staff_and_date after preselected service, got %s", w.Step())
	}
	if d := w.Draft(); d.ServiceID != "haircut-men" {
		t.Fatalf("expected preselected service in draft, got %+v", d)
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions()
	w := New("wz-42", "user-1", catalog.New(), 5)

	s.Put(w)
	got, err := s.Get("wz-42")
	if err != nil || got != w {
		t.Fatalf("Get: %v %v", got, err)
	}

	s.Delete("wz-42")
	if _, err := s.Get("wz-42"); !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
