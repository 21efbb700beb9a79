package create_booking

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиля нет в каталоге
	ErrCarNotFound = errors.New("create_booking: car not found")

	// ErrCarUnavailable возвращается, когда автомобиль снят с аренды в каталоге
	ErrCarUnavailable = errors.New("create_booking: car is not available for rent")

	// ErrCarBooked возвращается, когда на выбранные даты автомобиль уже забронирован
	ErrCarBooked = errors.New("create_booking: car is already booked for these dates")

	// ErrInvalidDates возвращается, когда дата окончания не позже даты начала
	ErrInvalidDates = errors.New("create_booking: end date must be after start date")

	// ErrStartInPast возвращается, когда дата начала уже прошла
	ErrStartInPast = errors.New("create_booking: start date is in the past")

	// ErrConcurrentUpdate возвращается, когда параллельное бронирование того же автомобиля помешало записи
	ErrConcurrentUpdate = errors.New("create_booking: concurrent booking of the same car")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
