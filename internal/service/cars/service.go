package cars

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
)

// Service сервис каталога автомобилей
type Service struct {
	carRepo      CarRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(carRepo CarRepository, logger Logger) *Service {
	return &Service{
		carRepo:      carRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get получает автомобиль по ID
func (s *Service) Get(ctx context.Context, id string) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			s.logger.Warn("GetCar: car id=%s not found", id)
			return nil, ErrCarNotFound
		}
		s.logger.Error("GetCar: repository error for car id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return car, nil
}

// Upsert создает или обновляет автомобиль в каталоге, доступно только администратору
func (s *Service) Upsert(ctx context.Context, principal domain.Principal, car *domain.Car) (*domain.Car, error) {
	s.logger.Info("UpsertCar: car id=%s by user=%s", car.ID, principal.ID)

	if !principal.IsAdmin {
		s.logger.Warn("UpsertCar: user=%s is not admin", principal.ID)
		return nil, ErrAccessDenied
	}

	if err := validateCar(car); err != nil {
		s.logger.Warn("UpsertCar: validation failed: %v", err)
		return nil, err
	}

	car.UpdatedAt = s.timeProvider.Now().UTC()

	if err := s.carRepo.Upsert(ctx, car); err != nil {
		s.logger.Error("UpsertCar: repository error for car id=%s: %v", car.ID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertCar: car id=%s saved, pricePerDay=%.2f, available=%t", car.ID, car.PricePerDay, car.Available)
	return car, nil
}

func validateCar(car *domain.Car) error {
	if strings.TrimSpace(car.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(car.Make) == "" || strings.TrimSpace(car.Model) == "" {
		return fmt.Errorf("%w: make and model are required", ErrInvalidInput)
	}
	if car.PricePerDay <= 0 {
		return fmt.Errorf("%w: pricePerDay must be positive", ErrInvalidInput)
	}
	return nil
}
