package get_booking_invoices

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type InvoiceService interface {
	ListForBooking(ctx context.Context, bookingID string, principal domain.Principal) ([]*domain.Invoice, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
