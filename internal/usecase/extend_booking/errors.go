package extend_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("extend_booking: booking not found")

	// ErrCarNotFound возвращается, когда автомобиль бронирования пропал из каталога
	ErrCarNotFound = errors.New("extend_booking: car not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("extend_booking: access denied")

	// ErrCannotExtend возвращается, когда статус бронирования не допускает продления
	ErrCannotExtend = errors.New("extend_booking: booking cannot be extended")

	// ErrInvalidEndDate возвращается, когда новая дата окончания не позже текущей
	ErrInvalidEndDate = errors.New("extend_booking: new end date must be after current end date")

	// ErrCarBooked возвращается, когда на даты продления автомобиль уже забронирован
	ErrCarBooked = errors.New("extend_booking: car is already booked for the extension period")

	// ErrConcurrentUpdate возвращается, когда бронирование изменилось во время продления
	ErrConcurrentUpdate = errors.New("extend_booking: booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("extend_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("extend_booking: internal error")
)
