package pricing

import "errors"

var (
	// ErrInvalidPeriod возвращается, если дата окончания не позже даты начала
	ErrInvalidPeriod = errors.New("pricing: end date must be after start date")

	// ErrUnknownService возвращается для услуги, которой нет в каталоге
	ErrUnknownService = errors.New("pricing: unknown additional service")

	// ErrInvalidInsurance возвращается для неизвестного уровня страховки
	ErrInvalidInsurance = errors.New("pricing: unknown insurance option")

	// ErrInvalidDrivers возвращается при отрицательном количестве дополнительных водителей
	ErrInvalidDrivers = errors.New("pricing: additional drivers must not be negative")
)
