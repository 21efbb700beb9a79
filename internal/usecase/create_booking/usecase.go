package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo         BookingRepository
	carRepo             CarRepository
	txManager           TransactionManager
	calculator          *pricing.Calculator
	enforceAvailability bool
	timeProvider        TimeProvider
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	txManager TransactionManager,
	calculator *pricing.Calculator,
	enforceAvailability bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:         bookingRepo,
		carRepo:             carRepo,
		txManager:           txManager,
		calculator:          calculator,
		enforceAvailability: enforceAvailability,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка занятости и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request, opts ...ExecuteOption) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, car=%s, period=%s - %s",
		req.Principal.ID, req.CarID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	var options executeOptions
	for _, opt := range opts {
		opt(&options)
	}

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем автомобиль
	car, err := uc.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("CreateBooking: car id=%s not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("CreateBooking: failed to get car id=%s: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	if !car.Available {
		uc.logger.Warn("CreateBooking: car id=%s is not available for rent", req.CarID)
		return nil, ErrCarUnavailable
	}

	// 3. Считаем стоимость
	breakdown, err := uc.calculator.Quote(car.PricePerDay, req.StartDate, req.EndDate, pricing.Options{
		Insurance:         req.InsuranceOption,
		AdditionalDrivers: req.AdditionalDrivers,
		ServiceIDs:        req.AdditionalServices,
		PickupLocation:    strings.TrimSpace(req.PickupLocation),
		ReturnLocation:    strings.TrimSpace(req.ReturnLocation),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking := newBooking(req, car, breakdown, now)

	if req.TotalPrice != nil {
		if req.Principal.IsAdmin {
			booking.BasePrice, booking.AdditionalCosts = pricing.SplitPrecomputed(*req.TotalPrice)
			booking.TotalPrice = pricing.Round2(*req.TotalPrice)
			uc.logger.Info("CreateBooking: using precomputed totalPrice=%.2f from admin=%s", booking.TotalPrice, req.Principal.ID)
		} else {
			uc.logger.Warn("CreateBooking: ignoring precomputed totalPrice from non-admin user=%s", req.Principal.ID)
		}
	}

	// 4. Проверяем занятость и сохраняем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if uc.enforceAvailability {
			bookings, err := uc.bookingRepo.GetByFilter(txCtx, domain.BookingFilter{
				CarID:    ptr.Ptr(req.CarID),
				Statuses: domain.BlockingStatuses,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get bookings for car=%s: %v", req.CarID, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			if conflicts := pricing.FindConflicts(bookings, req.StartDate, req.EndDate, ""); len(conflicts) > 0 {
				uc.logger.Warn("CreateBooking: car=%s has %d conflicting bookings, first id=%s",
					req.CarID, len(conflicts), conflicts[0].ID)
				return ErrCarBooked
			}
		}

		if options.beforeSave != nil {
			options.beforeSave(booking, now)
		}

		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, docstore.ErrVersionConflict) {
			uc.logger.Warn("CreateBooking: transaction conflict for car=%s: %v", req.CarID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s, total=%.2f",
		booking.ID, booking.Status, booking.TotalPrice)

	return &Response{Booking: booking}, nil
}

func newBooking(req *Request, car *domain.Car, breakdown *pricing.Breakdown, now time.Time) *domain.Booking {
	status := domain.StatusConfirmed
	if req.Status != nil {
		status = *req.Status
	}

	insurance := req.InsuranceOption
	if insurance == "" {
		insurance = domain.InsuranceNone
	}

	now = now.UTC()

	return &domain.Booking{
		ID:                 uuid.NewString(),
		UserID:             req.Principal.ID,
		CarID:              car.ID,
		StartDate:          req.StartDate.UTC(),
		EndDate:            req.EndDate.UTC(),
		DurationDays:       breakdown.DurationDays,
		BasePrice:          breakdown.BasePrice,
		AdditionalCosts:    breakdown.AdditionalCosts,
		TotalPrice:         breakdown.TotalPrice,
		InsuranceOption:    insurance,
		AdditionalDrivers:  req.AdditionalDrivers,
		AdditionalServices: breakdown.Services,
		PickupLocation:     strings.TrimSpace(req.PickupLocation),
		ReturnLocation:     strings.TrimSpace(req.ReturnLocation),
		Status:             status,
		ExtensionHistory:   []domain.ExtensionRecord{},
		CarMake:            car.Make,
		CarModel:           car.Model,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
