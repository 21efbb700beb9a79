package cancel_booking

import "github.com/m04kA/SMC-CarRentalService/internal/domain"

// Request модель запроса на отмену
type Request struct {
	Principal          domain.Principal
	BookingID          string
	CancellationReason *string
}

// Response модель ответа с суммами штрафа и возврата
type Response struct {
	CancellationFee float64
	RefundAmount    float64
	Booking         *domain.Booking
}
