package loyalty

import "errors"

var (
	// ErrAccountNotFound возвращается, когда у пользователя нет счета баллов
	ErrAccountNotFound = errors.New("loyalty.repository: account not found")

	// ErrAccountExists возвращается, когда счет баллов пользователя уже создан
	ErrAccountExists = errors.New("loyalty.repository: account already exists")

	// ErrConcurrentModification возвращается, когда счет изменили после чтения
	ErrConcurrentModification = errors.New("loyalty.repository: account was modified concurrently")

	// ErrStore возвращается при ошибках документного хранилища
	ErrStore = errors.New("loyalty.repository: store error")

	// ErrDecode возвращается, если документ не удалось разобрать
	ErrDecode = errors.New("loyalty.repository: failed to decode document")
)
