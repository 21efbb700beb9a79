package process_payment

import "github.com/m04kA/SMC-CarRentalService/internal/domain"

// maxPaymentMethodLength ограничение длины названия способа оплаты
const maxPaymentMethodLength = 50

// Request модель запроса на оплату
type Request struct {
	Principal     domain.Principal
	BookingID     string
	PaymentMethod string
}

// Response модель ответа с результатом оплаты
type Response struct {
	InvoiceID    string
	Status       domain.BookingStatus
	PointsEarned int // 0, если начисление не удалось
	Booking      *domain.Booking
}
