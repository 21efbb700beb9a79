package loyalty

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном количестве баллов
	ErrInvalidInput = errors.New("loyalty: invalid input data")

	// ErrAccessDenied возвращается, когда пользователь запрашивает чужой счет
	ErrAccessDenied = errors.New("loyalty: access denied")

	// ErrInsufficientPoints возвращается, когда баллов на счете меньше, чем запрошено к списанию
	ErrInsufficientPoints = errors.New("loyalty: insufficient points")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("loyalty: internal error")
)
