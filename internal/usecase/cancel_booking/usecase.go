package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет бронирование и рассчитывает штраф по количеству суток до начала аренды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%s, user=%s", req.BookingID, req.Principal.ID)

	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason is too long (max %d)", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	now := uc.timeProvider.Now().UTC()
	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.IsAccessibleBy(req.Principal) {
			uc.logger.Warn("CancelBooking: access denied for user=%s to booking id=%s", req.Principal.ID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%s cannot be cancelled, status=%s", booking.ID, booking.Status)
			return ErrCannotCancel
		}

		quote := pricing.QuoteCancellation(booking.TotalPrice, booking.StartDate, now)
		uc.logger.Info("CancelBooking: booking id=%s, days until start=%.2f, fee=%d%%",
			booking.ID, quote.DaysUntilStart, quote.FeePercent)

		booking.Status = domain.StatusCancelled
		booking.CancellationFee = ptr.Ptr(quote.Fee)
		booking.RefundAmount = ptr.Ptr(quote.Refund)
		booking.CancelledAt = ptr.Ptr(now)
		booking.UpdatedAt = now
		if req.CancellationReason != nil && strings.TrimSpace(*req.CancellationReason) != "" {
			booking.CancellationReason = ptr.Ptr(strings.TrimSpace(*req.CancellationReason))
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrConcurrentModification) {
				uc.logger.Warn("CancelBooking: booking id=%s was modified concurrently", booking.ID)
				return ErrConcurrentUpdate
			}
			uc.logger.Error("CancelBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		resp = &Response{
			CancellationFee: quote.Fee,
			RefundAmount:    quote.Refund,
			Booking:         booking,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, docstore.ErrVersionConflict) {
			uc.logger.Warn("CancelBooking: transaction conflict for booking=%s: %v", req.BookingID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%s, fee=%.2f, refund=%.2f",
		resp.Booking.ID, resp.CancellationFee, resp.RefundAmount)

	return resp, nil
}
