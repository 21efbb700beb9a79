package finalize_booking

import (
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
)

// Request запрос на финализацию повторяет запрос на создание; статус из запроса игнорируется
type Request = create_booking.Request

// Response модель ответа с финализированным бронированием
type Response struct {
	Booking      *domain.Booking
	PointsEarned int // 0, если начисление не удалось
}
