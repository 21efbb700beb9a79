package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	createBooking "github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CarID              string   `json:"carId"`
	StartDate          string   `json:"startDate"` // "2024-06-01" или RFC3339
	EndDate            string   `json:"endDate"`
	InsuranceOption    string   `json:"insuranceOption,omitempty"`
	AdditionalDrivers  int      `json:"additionalDrivers,omitempty"`
	AdditionalServices []string `json:"additionalServices,omitempty"`
	PickupLocation     string   `json:"pickupLocation"`
	ReturnLocation     string   `json:"returnLocation"`
	Status             *string  `json:"status,omitempty"`
	TotalPrice         *float64 `json:"totalPrice,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingID string          `json:"bookingId"`
	Booking   *domain.Booking `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(principal domain.Principal) (*createBooking.Request, error) {
	start, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := handlers.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	req := &createBooking.Request{
		Principal:          principal,
		CarID:              r.CarID,
		StartDate:          start,
		EndDate:            end,
		InsuranceOption:    domain.InsuranceOption(r.InsuranceOption),
		AdditionalDrivers:  r.AdditionalDrivers,
		AdditionalServices: r.AdditionalServices,
		PickupLocation:     r.PickupLocation,
		ReturnLocation:     r.ReturnLocation,
		TotalPrice:         r.TotalPrice,
	}
	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		req.Status = &status
	}

	return req, nil
}
