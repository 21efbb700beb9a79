package finalize_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

// UseCase use case финализации: создание бронирования сразу в статусе finalized
type UseCase struct {
	creator    BookingCreator
	awarder    PointsAwarder
	calculator *pricing.Calculator
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(creator BookingCreator, awarder PointsAwarder, calculator *pricing.Calculator, logger Logger) *UseCase {
	return &UseCase{
		creator:    creator,
		awarder:    awarder,
		calculator: calculator,
		logger:     logger,
	}
}

// Execute создает бронирование, записывая его сразу со статусом finalized, и начисляет баллы
// Ошибки создания возвращаются как есть (ошибки пакета create_booking)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FinalizeBooking: user=%s, car=%s", req.Principal.ID, req.CarID)

	createReq := *req
	createReq.Status = nil

	created, err := uc.creator.Execute(ctx, &createReq, create_booking.WithBeforeSave(func(booking *domain.Booking, now time.Time) {
		booking.Status = domain.StatusFinalized
		booking.FinalizedAt = ptr.Ptr(now.UTC())
	}))
	if err != nil {
		uc.logger.Warn("FinalizeBooking: create failed: %v", err)
		return nil, err
	}

	booking := created.Booking

	// Начисление баллов не влияет на результат финализации
	points := uc.calculator.FinalizePoints(booking.TotalPrice, booking.CreatedAt, booking.StartDate)
	if err := uc.awarder.Award(ctx, booking.UserID, points, fmt.Sprintf("Finalized booking %s", booking.ID)); err != nil {
		uc.logger.Error("FinalizeBooking: failed to award %d points for booking id=%s: %v", points, booking.ID, err)
		points = 0
	}

	uc.logger.Info("FinalizeBooking: booking id=%s finalized, points=%d", booking.ID, points)

	return &Response{
		Booking:      booking,
		PointsEarned: points,
	}, nil
}
