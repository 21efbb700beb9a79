package check_availability

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиля нет в каталоге
	ErrCarNotFound = errors.New("check_availability: car not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
