package upsert_car

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type CarService interface {
	Upsert(ctx context.Context, principal domain.Principal, car *domain.Car) (*domain.Car, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
