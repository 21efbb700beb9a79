package models

import (
	"errors"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Principal domain.Principal
	UserID    string
	Status    *string // Фильтр по статусу (опционально)
}

// DeleteBookingRequest запрос на удаление черновика
type DeleteBookingRequest struct {
	Principal domain.Principal
	BookingID string
}

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusActive,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusFinalized,
		domain.StatusDraft:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
