package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-CarRentalService/internal/usecase/check_availability"
)

// PeriodResponse занятый интервал
type PeriodResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CarID     string           `json:"carId"`
	Available bool             `json:"available"`
	OffRent   bool             `json:"offRent,omitempty"`
	Conflicts []PeriodResponse `json:"conflicts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := make([]PeriodResponse, 0, len(resp.Conflicts))
	for _, p := range resp.Conflicts {
		conflicts = append(conflicts, PeriodResponse{
			StartDate: p.Start.Format(time.RFC3339),
			EndDate:   p.End.Format(time.RFC3339),
		})
	}

	return &AvailabilityResponse{
		CarID:     resp.CarID,
		Available: resp.Available,
		OffRent:   resp.Unavailable,
		Conflicts: conflicts,
	}
}
