package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if strings.TrimSpace(req.CarID) == "" {
		return fmt.Errorf("%w: carId is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if !req.EndDate.After(req.StartDate) {
		return ErrInvalidDates
	}

	if req.StartDate.Before(now) {
		return ErrStartInPast
	}

	if err := validateLocation("pickupLocation", req.PickupLocation); err != nil {
		return err
	}
	if err := validateLocation("returnLocation", req.ReturnLocation); err != nil {
		return err
	}

	if req.AdditionalDrivers < 0 || req.AdditionalDrivers > domain.MaxAdditionalDrivers {
		return fmt.Errorf("%w: additionalDrivers must be between 0 and %d", ErrInvalidInput, domain.MaxAdditionalDrivers)
	}

	if req.InsuranceOption != "" && !req.InsuranceOption.IsValid() {
		return fmt.Errorf("%w: unknown insuranceOption %q", ErrInvalidInput, req.InsuranceOption)
	}

	if req.Status != nil && *req.Status != domain.StatusPending && *req.Status != domain.StatusConfirmed {
		return fmt.Errorf("%w: status must be %s or %s", ErrInvalidInput, domain.StatusPending, domain.StatusConfirmed)
	}

	if req.TotalPrice != nil && *req.TotalPrice <= 0 {
		return fmt.Errorf("%w: totalPrice must be positive", ErrInvalidInput)
	}

	return nil
}

func validateLocation(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if len(value) > domain.MaxLocationLength {
		return fmt.Errorf("%w: %s is too long", ErrInvalidInput, field)
	}
	return nil
}
