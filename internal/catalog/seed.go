package catalog

import "salon-service/internal/models"

func seedServices() []models.Service {
	return []models.Service{
		{ID: "haircut-women", Title: "Женская стрижка", DurationMinutes: 60, Price: 2500, Category: "haircuts"},
		{ID: "haircut-men", Title: "Мужская стрижка", DurationMinutes: 45, Price: 1800, Category: "mens"},
		{ID: "coloring-single", Title: "Окрашивание в один тон", DurationMinutes: 120, Price: 4500, Category: "coloring"},
		{ID: "balayage", Title: "Балаяж", DurationMinutes: 180, Price: 7500, Category: "coloring"},
		{ID: "styling", Title: "Укладка", DurationMinutes: 45, Price: 1800, Category: "styling"},
		{ID: "treatment-mask", Title: "Глубокое питание", DurationMinutes: 60, Price: 2200, Category: "treatments"},
		{ID: "extensions", Title: "Наращивание волос", DurationMinutes: 240, Price: 15000, Category: "extensions"},
		{ID: "beard-trim", Title: "Моделирование бороды", DurationMinutes: 30, Price: 1200, Category: "mens"},
	}
}

func seedStaff() []models.StaffMember {
	return []models.StaffMember{
		{
			ID:         "stylist-1",
			Name:       "Анна Петрова",
			Position:   "Стилист-колорист",
			ServiceIDs: []string{"haircut-women", "coloring-single", "balayage", "styling", "treatment-mask"},
			WorkDays:   []int{1, 2, 3, 4, 5}, // Пн-Пт
			WorkHours:  models.WorkHours{Start: "10:00", End: "19:00"},
		},
		{
			ID:         "stylist-2",
			Name:       "Иван Соколов",
			Position:   "Барбер",
			ServiceIDs: []string{"haircut-men", "beard-trim"},
			WorkDays:   []int{1, 2, 3, 5, 6}, // Пн, Вт, Ср, Пт, Сб
			WorkHours:  models.WorkHours{Start: "11:00", End: "20:00"},
		},
		{
			ID:         "stylist-3",
			Name:       "Елена Смирнова",
			Position:   "Мастер по наращиванию",
			ServiceIDs: []string{"haircut-women", "styling", "extensions"},
			WorkDays:   []int{2, 3, 4, 5, 6}, // Вт-Сб
			WorkHours:  models.WorkHours{Start: "09:00", End: "18:00"},
		},
		{
			ID:         "stylist-4",
			Name:       "Мария Иванова",
			Position:   "Старший стилист",
			ServiceIDs: []string{"haircut-women", "coloring-single", "balayage", "styling", "treatment-mask"},
			WorkDays:   []int{1, 3, 4, 6, 0}, // Пн, Ср, Чт, Сб, Вс
			WorkHours:  models.WorkHours{Start: "10:00", End: "19:00"},
		},
	}
}
