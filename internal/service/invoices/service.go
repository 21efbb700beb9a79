package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
)

// Service сервис чтения счетов
type Service struct {
	bookingRepo BookingRepository
	invoiceRepo InvoiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(bookingRepo BookingRepository, invoiceRepo InvoiceRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// ListForBooking возвращает счета бронирования: основной и счета за продления
func (s *Service) ListForBooking(ctx context.Context, bookingID string, principal domain.Principal) ([]*domain.Invoice, error) {
	s.logger.Info("ListInvoices: booking=%s, user=%s", bookingID, principal.ID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ListInvoices: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ListInvoices: failed to get booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListForBooking - repository error: %v", ErrInternal, err)
	}

	if !booking.IsAccessibleBy(principal) {
		s.logger.Warn("ListInvoices: access denied for user=%s to booking id=%s", principal.ID, bookingID)
		return nil, ErrAccessDenied
	}

	invoices, err := s.invoiceRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListInvoices: failed to get invoices for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListForBooking - repository error: %v", ErrInternal, err)
	}

	return invoices, nil
}
