package process_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("process_payment: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("process_payment: access denied")

	// ErrAlreadyPaid возвращается, когда бронирование уже не ожидает оплаты
	ErrAlreadyPaid = errors.New("process_payment: booking is not awaiting payment")

	// ErrCarBooked возвращается, когда на даты бронирования автомобиль уже занят оплаченным бронированием
	ErrCarBooked = errors.New("process_payment: car is already booked for these dates")

	// ErrConcurrentUpdate возвращается, когда бронирование изменилось во время оплаты
	ErrConcurrentUpdate = errors.New("process_payment: booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("process_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_payment: internal error")
)
