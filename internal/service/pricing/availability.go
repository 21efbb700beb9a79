package pricing

import (
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// Overlaps проверяет пересечение интервалов [s1, e1) и [s2, e2)
// Интервалы, касающиеся границей, не пересекаются
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return e1.After(s2) && s1.Before(e2)
}

// FindConflicts возвращает бронирования, которые занимают автомобиль в [start, end)
// Бронирование excludeID (например, продлеваемое) не учитывается
func FindConflicts(bookings []*domain.Booking, start, end time.Time, excludeID string) []*domain.Booking {
	conflicts := make([]*domain.Booking, 0)

	for _, booking := range bookings {
		if booking.ID == excludeID || !booking.BlocksCar() {
			continue
		}
		if Overlaps(booking.StartDate, booking.EndDate, start, end) {
			conflicts = append(conflicts, booking)
		}
	}

	return conflicts
}
