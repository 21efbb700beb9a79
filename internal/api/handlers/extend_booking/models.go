package extend_booking

import (
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	extendBooking "github.com/m04kA/SMC-CarRentalService/internal/usecase/extend_booking"
)

// ExtendBookingRequest HTTP request model
type ExtendBookingRequest struct {
	NewEndDate string `json:"newEndDate"`
}

// ExtendBookingResponse HTTP response model
type ExtendBookingResponse struct {
	PreviousEndDate string          `json:"previousEndDate"`
	NewEndDate      string          `json:"newEndDate"`
	AdditionalDays  int             `json:"additionalDays"`
	AdditionalCost  float64         `json:"additionalCost"`
	InvoiceID       string          `json:"invoiceId"`
	Booking         *domain.Booking `json:"booking"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *extendBooking.Response) *ExtendBookingResponse {
	return &ExtendBookingResponse{
		PreviousEndDate: resp.PreviousEndDate.Format(time.RFC3339),
		NewEndDate:      resp.NewEndDate.Format(time.RFC3339),
		AdditionalDays:  resp.AdditionalDays,
		AdditionalCost:  resp.AdditionalCost,
		InvoiceID:       resp.InvoiceID,
		Booking:         resp.Booking,
	}
}
