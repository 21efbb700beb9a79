package process_payment

import "github.com/m04kA/SMC-CarRentalService/internal/domain"

// ProcessPaymentRequest HTTP request model
type ProcessPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// ProcessPaymentResponse HTTP response model
type ProcessPaymentResponse struct {
	InvoiceID    string               `json:"invoiceId"`
	Status       domain.BookingStatus `json:"status"`
	PointsEarned int                  `json:"pointsEarned"`
}
