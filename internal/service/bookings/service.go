package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, администратор любое
func (s *Service) GetByID(ctx context.Context, id string, principal domain.Principal) (*domain.Booking, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, principal.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !booking.IsAccessibleBy(principal) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", principal.ID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) ([]*domain.Booking, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	if !req.Principal.IsAdmin && req.Principal.ID != req.UserID {
		s.logger.Warn("GetUserBookings: access denied for user=%s to bookings of user=%s", req.Principal.ID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingFilter{UserID: ptr.Ptr(req.UserID)}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return bookings, nil
}

// DeleteDraft удаляет бронирование в статусе Draft
// Удалить черновик может только его владелец
func (s *Service) DeleteDraft(ctx context.Context, req *models.DeleteBookingRequest) error {
	s.logger.Info("DeleteDraft: deleting booking id=%s by user=%s", req.BookingID, req.Principal.ID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: DeleteDraft - repository error: %v", ErrInternal, err)
		}

		if booking.UserID != req.Principal.ID {
			return ErrAccessDenied
		}

		if !booking.CanBeDeleted() {
			return ErrCannotDelete
		}

		if err := s.bookingRepo.Delete(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: DeleteDraft - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("DeleteDraft: failed to delete booking id=%s: %v", req.BookingID, err)
		} else {
			s.logger.Warn("DeleteDraft: booking id=%s not deleted: %v", req.BookingID, err)
		}
		return err
	}

	s.logger.Info("DeleteDraft: successfully deleted booking id=%s", req.BookingID)
	return nil
}
