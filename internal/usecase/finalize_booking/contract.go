package finalize_booking

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
)

// BookingCreator создание бронирования, на котором строится финализация
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request, opts ...create_booking.ExecuteOption) (*create_booking.Response, error)
}

// PointsAwarder начисляет баллы лояльности
type PointsAwarder interface {
	Award(ctx context.Context, userID string, points int, description string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
