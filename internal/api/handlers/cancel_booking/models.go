package cancel_booking

import "github.com/m04kA/SMC-CarRentalService/internal/domain"

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	CancellationFee float64         `json:"cancellationFee"`
	RefundAmount    float64         `json:"refundAmount"`
	Booking         *domain.Booking `json:"booking"`
}
