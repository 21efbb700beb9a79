package process_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

// UseCase use case для оплаты бронирования
type UseCase struct {
	bookingRepo         BookingRepository
	invoiceRepo         InvoiceRepository
	awarder             PointsAwarder
	txManager           TransactionManager
	enforceAvailability bool
	timeProvider        TimeProvider
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	invoiceRepo InvoiceRepository,
	awarder PointsAwarder,
	txManager TransactionManager,
	enforceAvailability bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:         bookingRepo,
		invoiceRepo:         invoiceRepo,
		awarder:             awarder,
		txManager:           txManager,
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

// Execute подтверждает оплату, выставляет оплаченный счет и начисляет баллы
// Бронирование и счет записываются в одной транзакции, баллы начисляются после неё
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessPayment: booking=%s, user=%s, method=%s", req.BookingID, req.Principal.ID, req.PaymentMethod)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ProcessPayment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().UTC()
	method := strings.TrimSpace(req.PaymentMethod)

	var (
		booking *domain.Booking
		invoice *domain.Invoice
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ProcessPayment: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ProcessPayment: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.IsAccessibleBy(req.Principal) {
			uc.logger.Warn("ProcessPayment: access denied for user=%s to booking id=%s", req.Principal.ID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBePaid() {
			uc.logger.Warn("ProcessPayment: booking id=%s is not awaiting payment, status=%s", booking.ID, booking.Status)
			return ErrAlreadyPaid
		}

		// Неоплаченные бронирования не занимают автомобиль, поэтому даты перепроверяются при оплате
		if uc.enforceAvailability {
			bookings, err := uc.bookingRepo.GetByFilter(txCtx, domain.BookingFilter{
				CarID:    ptr.Ptr(booking.CarID),
				Statuses: domain.BlockingStatuses,
			})
			if err != nil {
				uc.logger.Error("ProcessPayment: failed to get bookings for car=%s: %v", booking.CarID, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			if conflicts := pricing.FindConflicts(bookings, booking.StartDate, booking.EndDate, booking.ID); len(conflicts) > 0 {
				uc.logger.Warn("ProcessPayment: booking id=%s conflicts with booking id=%s", booking.ID, conflicts[0].ID)
				return ErrCarBooked
			}
		}

		invoice = newBookingInvoice(booking, method, now)

		booking.Status = domain.StatusConfirmed
		booking.PaymentMethod = ptr.Ptr(method)
		booking.PaymentDate = ptr.Ptr(now)
		booking.UpdatedAt = now

		if err := uc.invoiceRepo.Create(txCtx, invoice); err != nil {
			uc.logger.Error("ProcessPayment: failed to create invoice for booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrConcurrentModification) {
				uc.logger.Warn("ProcessPayment: booking id=%s was modified concurrently", booking.ID)
				return ErrConcurrentUpdate
			}
			uc.logger.Error("ProcessPayment: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, docstore.ErrVersionConflict) {
			uc.logger.Warn("ProcessPayment: transaction conflict for booking=%s: %v", req.BookingID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	// Начисление баллов не влияет на результат оплаты
	points := pricing.PaymentPoints(booking.TotalPrice)
	if err := uc.awarder.Award(ctx, booking.UserID, points, fmt.Sprintf("Payment for booking %s", booking.ID)); err != nil {
		uc.logger.Error("ProcessPayment: failed to award %d points for booking id=%s: %v", points, booking.ID, err)
		points = 0
	}

	uc.logger.Info("ProcessPayment: booking id=%s paid, invoice=%s, points=%d", booking.ID, invoice.ID, points)

	return &Response{
		InvoiceID:    invoice.ID,
		Status:       booking.Status,
		PointsEarned: points,
		Booking:      booking,
	}, nil
}

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		return fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}
	if len(method) > maxPaymentMethodLength {
		return fmt.Errorf("%w: paymentMethod is too long", ErrInvalidInput)
	}

	return nil
}

// newBookingInvoice счет на полную стоимость: строка аренды и строка дополнительных расходов
func newBookingInvoice(booking *domain.Booking, method string, now time.Time) *domain.Invoice {
	return &domain.Invoice{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Kind:      domain.InvoiceKindBooking,
		Amount:    booking.TotalPrice,
		Items: []domain.InvoiceItem{
			{
				Description: fmt.Sprintf("Car rental %s %s, %d days", booking.CarMake, booking.CarModel, booking.DurationDays),
				Amount:      booking.BasePrice,
			},
			{
				Description: "Additional costs",
				Amount:      booking.AdditionalCosts,
			},
		},
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentMethod: ptr.Ptr(method),
		PaidAt:        ptr.Ptr(now),
		CreatedAt:     now,
	}
}
