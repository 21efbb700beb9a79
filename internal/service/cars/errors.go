package cars

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиля нет в каталоге
	ErrCarNotFound = errors.New("cars: car not found")

	// ErrAccessDenied возвращается, когда каталог меняет не администратор
	ErrAccessDenied = errors.New("cars: admin role required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cars: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cars: internal error")
)
