package car

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиля нет в каталоге
	ErrCarNotFound = errors.New("car.repository: car not found")

	// ErrStore возвращается при ошибках документного хранилища
	ErrStore = errors.New("car.repository: store error")

	// ErrDecode возвращается, если документ не удалось разобрать
	ErrDecode = errors.New("car.repository: failed to decode document")
)
