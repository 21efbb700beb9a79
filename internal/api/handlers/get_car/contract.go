package get_car

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type CarService interface {
	Get(ctx context.Context, id string) (*domain.Car, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
