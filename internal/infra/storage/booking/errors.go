package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBookingExists возвращается, когда бронирование с таким id уже существует
	ErrBookingExists = errors.New("booking.repository: booking already exists")

	// ErrConcurrentModification возвращается, когда бронирование изменили после чтения
	ErrConcurrentModification = errors.New("booking.repository: booking was modified concurrently")

	// ErrStore возвращается при ошибках документного хранилища
	ErrStore = errors.New("booking.repository: store error")

	// ErrDecode возвращается, если документ не удалось разобрать
	ErrDecode = errors.New("booking.repository: failed to decode document")
)
