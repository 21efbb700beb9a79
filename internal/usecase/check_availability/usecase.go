package check_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

// UseCase use case проверки доступности автомобиля на период
type UseCase struct {
	bookingRepo BookingRepository
	carRepo     CarRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, carRepo CarRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		logger:      logger,
	}
}

// Execute проверяет, есть ли подтвержденные или активные бронирования, пересекающие [start, end)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: car=%s, period=%s - %s",
		req.CarID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if strings.TrimSpace(req.CarID) == "" {
		return nil, fmt.Errorf("%w: carId is required", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	car, err := uc.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("CheckAvailability: car id=%s not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get car id=%s: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByFilter(ctx, domain.BookingFilter{
		CarID:    ptr.Ptr(req.CarID),
		Statuses: domain.BlockingStatuses,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for car=%s: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	conflicts := pricing.FindConflicts(bookings, req.StartDate, req.EndDate, "")

	periods := make([]Period, 0, len(conflicts))
	for _, booking := range conflicts {
		periods = append(periods, Period{Start: booking.StartDate, End: booking.EndDate})
	}

	resp := &Response{
		CarID:       car.ID,
		Available:   car.Available && len(periods) == 0,
		Unavailable: !car.Available,
		Conflicts:   periods,
	}

	uc.logger.Info("CheckAvailability: car=%s available=%t, conflicts=%d", car.ID, resp.Available, len(periods))
	return resp, nil
}
