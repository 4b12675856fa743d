package schedule

import (
	"fmt"
	"time"

	"salon-service/internal/models"
	"salon-service/pkg/response"
)

// Request — входные данные одного расчёта слотов.
type Request struct {
	Service models.Service
	Staff   models.StaffMember
	Date    time.Time // только дата, время игнорируется
}

// Generator вычисляет доступные времена начала для пары (услуга, мастер)
// на конкретную дату. Чистая функция от входа и текущего времени: ничего
// не сохраняет, пересчитывается при каждом вызове.
type Generator struct {
	step time.Duration
}

func New(stepMinutes int) *Generator {
	if stepMinutes <= 0 {
		stepMinutes = 30
	}

	return &Generator{step: time.Duration(stepMinutes) * time.Minute}
}

// Slots возвращает времена начала в формате "HH:MM" по возрастанию.
// Дата в прошлом относительно now — ошибка; выходной день мастера или
// услуга длиннее рабочего дня — пустой результат.
func (g *Generator) Slots(req Request, now time.Time) ([]string, error) {
	const op = "schedule.Slots"

	loc := now.Location()
	date := truncateToDate(req.Date, loc)
	today := truncateToDate(now, loc)

	if date.Before(today) {
		return nil, fmt.Errorf("%s: %w", op, response.ErrPastDate)
	}

	if !req.Staff.WorksOn(date.Weekday()) {
		return []string{}, nil
	}

	startClock, err := time.Parse("15:04", req.Staff.WorkHours.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid work start: %w", op, err)
	}

	endClock, err := time.Parse("15:04", req.Staff.WorkHours.End)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid work end: %w", op, err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), startClock.Hour(), startClock.Minute(), 0, 0, loc)
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), endClock.Hour(), endClock.Minute(), 0, 0, loc)

	// если конец <= старт -> пусто
	if !dayEnd.After(dayStart) {
		return []string{}, nil
	}

	dur := time.Duration(req.Service.DurationMinutes) * time.Minute
	if dur <= 0 {
		return nil, fmt.Errorf("%s: invalid service duration: %d", op, req.Service.DurationMinutes)
	}

	// генерируем слоты: условие cur + dur <= dayEnd
	slots := []string{}
	for cur := dayStart; !cur.Add(dur).After(dayEnd); cur = cur.Add(g.step) {
		slots = append(slots, cur.Format("15:04"))
	}

	return slots, nil
}

// truncateToDate возвращает дату с нулевым временем в указанной локации
func truncateToDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
