package finalize_booking

import "github.com/m04kA/SMC-CarRentalService/internal/domain"

// FinalizeBookingResponse HTTP response model
type FinalizeBookingResponse struct {
	BookingID    string          `json:"bookingId"`
	Booking      *domain.Booking `json:"booking"`
	PointsEarned int             `json:"pointsEarned"`
}
