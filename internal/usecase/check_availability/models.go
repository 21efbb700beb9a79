package check_availability

import "time"

// Request модель запроса проверки доступности
type Request struct {
	CarID     string
	StartDate time.Time
	EndDate   time.Time
}

// Period занятый интервал [Start, End)
type Period struct {
	Start time.Time
	End   time.Time
}

// Response модель ответа
// Available ложно, если автомобиль снят с аренды или есть пересекающиеся бронирования
type Response struct {
	CarID       string
	Available   bool
	Unavailable bool // Автомобиль снят с аренды в каталоге
	Conflicts   []Period
}
