package extend_booking

import (
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// Request модель запроса на продление
type Request struct {
	Principal  domain.Principal
	BookingID  string
	NewEndDate time.Time
}

// Response модель ответа с результатом продления
type Response struct {
	PreviousEndDate time.Time
	NewEndDate      time.Time
	AdditionalDays  int
	AdditionalCost  float64 // Полная доплата: база и дополнительные расходы
	InvoiceID       string
	Booking         *domain.Booking
}
