package extend_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

// UseCase use case для продления бронирования
type UseCase struct {
	bookingRepo         BookingRepository
	carRepo             CarRepository
	invoiceRepo         InvoiceRepository
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
	invoiceRepo InvoiceRepository,
	txManager TransactionManager,
	calculator *pricing.Calculator,
	enforceAvailability bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:         bookingRepo,
		carRepo:             carRepo,
		invoiceRepo:         invoiceRepo,
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

// Execute продлевает бронирование и выставляет счет на доплату
// Бронирование и счет записываются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExtendBooking: booking=%s, user=%s, newEndDate=%s",
		req.BookingID, req.Principal.ID, req.NewEndDate.Format(domain.DateFormat))

	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if req.NewEndDate.IsZero() {
		return nil, fmt.Errorf("%w: newEndDate is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now().UTC()
	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем бронирование и проверяем права и статус
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ExtendBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ExtendBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.IsAccessibleBy(req.Principal) {
			uc.logger.Warn("ExtendBooking: access denied for user=%s to booking id=%s", req.Principal.ID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeExtended() {
			uc.logger.Warn("ExtendBooking: booking id=%s cannot be extended, status=%s", booking.ID, booking.Status)
			return ErrCannotExtend
		}

		if !req.NewEndDate.After(booking.EndDate) {
			uc.logger.Warn("ExtendBooking: new end date %s is not after %s",
				req.NewEndDate.Format(time.RFC3339), booking.EndDate.Format(time.RFC3339))
			return ErrInvalidEndDate
		}

		// 2. Считаем доплату по текущей цене автомобиля
		car, err := uc.carRepo.GetByID(txCtx, booking.CarID)
		if err != nil {
			if errors.Is(err, carRepo.ErrCarNotFound) {
				uc.logger.Warn("ExtendBooking: car id=%s of booking id=%s not found", booking.CarID, booking.ID)
				return ErrCarNotFound
			}
			uc.logger.Error("ExtendBooking: failed to get car id=%s: %v", booking.CarID, err)
			return fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
		}

		serviceIDs := make([]string, 0, len(booking.AdditionalServices))
		for _, service := range booking.AdditionalServices {
			serviceIDs = append(serviceIDs, service.ID)
		}

		extension, err := uc.calculator.QuoteExtension(car.PricePerDay, booking.StartDate, booking.EndDate, req.NewEndDate, booking.DurationDays, pricing.Options{
			Insurance:         booking.InsuranceOption,
			AdditionalDrivers: booking.AdditionalDrivers,
			ServiceIDs:        serviceIDs,
		})
		if err != nil {
			uc.logger.Error("ExtendBooking: pricing failed for booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
		}

		// 3. Проверяем, что автомобиль свободен на период продления
		if uc.enforceAvailability {
			bookings, err := uc.bookingRepo.GetByFilter(txCtx, domain.BookingFilter{
				CarID:    ptr.Ptr(booking.CarID),
				Statuses: domain.BlockingStatuses,
			})
			if err != nil {
				uc.logger.Error("ExtendBooking: failed to get bookings for car=%s: %v", booking.CarID, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			if conflicts := pricing.FindConflicts(bookings, booking.EndDate, req.NewEndDate, booking.ID); len(conflicts) > 0 {
				uc.logger.Warn("ExtendBooking: extension of booking id=%s conflicts with booking id=%s",
					booking.ID, conflicts[0].ID)
				return ErrCarBooked
			}
		}

		// 4. Счет на доплату
		invoice := newExtensionInvoice(booking, extension, now)

		// 5. Применяем продление к бронированию
		previousEndDate := booking.EndDate
		applyExtension(booking, extension, req.NewEndDate.UTC(), invoice.ID, now)

		if err := uc.invoiceRepo.Create(txCtx, invoice); err != nil {
			uc.logger.Error("ExtendBooking: failed to create invoice for booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrConcurrentModification) {
				uc.logger.Warn("ExtendBooking: booking id=%s was modified concurrently", booking.ID)
				return ErrConcurrentUpdate
			}
			uc.logger.Error("ExtendBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		resp = &Response{
			PreviousEndDate: previousEndDate,
			NewEndDate:      booking.EndDate,
			AdditionalDays:  extension.DurationDays,
			AdditionalCost:  extension.TotalPrice,
			InvoiceID:       invoice.ID,
			Booking:         booking,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, docstore.ErrVersionConflict) {
			uc.logger.Warn("ExtendBooking: transaction conflict for booking=%s: %v", req.BookingID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("ExtendBooking: booking id=%s extended by %d days, additional cost=%.2f, invoice=%s",
		resp.Booking.ID, resp.AdditionalDays, resp.AdditionalCost, resp.InvoiceID)

	return resp, nil
}

func newExtensionInvoice(booking *domain.Booking, extension *pricing.Breakdown, now time.Time) *domain.Invoice {
	items := []domain.InvoiceItem{
		{
			Description: fmt.Sprintf("Extension: base rental, %d days", extension.DurationDays),
			Amount:      extension.BasePrice,
		},
	}
	if extension.AdditionalCosts > 0 {
		items = append(items, domain.InvoiceItem{
			Description: "Extension: additional costs",
			Amount:      extension.AdditionalCosts,
		})
	}

	return &domain.Invoice{
		ID:            uuid.NewString(),
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		Kind:          domain.InvoiceKindExtension,
		Amount:        extension.TotalPrice,
		Items:         items,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     now,
	}
}

// applyExtension сдвигает дату окончания и добавляет доплату к ценам бронирования
func applyExtension(booking *domain.Booking, extension *pricing.Breakdown, newEndDate time.Time, invoiceID string, now time.Time) {
	booking.ExtensionHistory = append(booking.ExtensionHistory, domain.ExtensionRecord{
		PreviousEndDate: booking.EndDate,
		NewEndDate:      newEndDate,
		AdditionalDays:  extension.DurationDays,
		AdditionalCost:  extension.TotalPrice,
		Date:            now,
		InvoiceID:       invoiceID,
	})

	servicePrices := make(map[string]float64, len(extension.Services))
	for _, service := range extension.Services {
		servicePrices[service.ID] = service.Price
	}
	for i := range booking.AdditionalServices {
		booking.AdditionalServices[i].Price = pricing.Round2(booking.AdditionalServices[i].Price + servicePrices[booking.AdditionalServices[i].ID])
	}

	booking.EndDate = newEndDate
	booking.DurationDays = pricing.DurationDays(booking.StartDate, newEndDate)
	booking.BasePrice = pricing.Round2(booking.BasePrice + extension.BasePrice)
	booking.AdditionalCosts = pricing.Round2(booking.AdditionalCosts + extension.AdditionalCosts)
	booking.TotalPrice = pricing.Round2(booking.BasePrice + booking.AdditionalCosts)
	booking.UpdatedAt = now
}
