package invoice

import "errors"

var (
	// ErrInvoiceNotFound возвращается, когда счет не найден
	ErrInvoiceNotFound = errors.New("invoice.repository: invoice not found")

	// ErrInvoiceExists возвращается, когда счет с таким id уже существует
	ErrInvoiceExists = errors.New("invoice.repository: invoice already exists")

	// ErrStore возвращается при ошибках документного хранилища
	ErrStore = errors.New("invoice.repository: store error")

	// ErrDecode возвращается, если документ не удалось разобрать
	ErrDecode = errors.New("invoice.repository: failed to decode document")
)
