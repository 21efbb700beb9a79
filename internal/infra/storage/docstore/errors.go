package docstore

import "errors"

var (
	// ErrNotFound возвращается, когда документ не найден
	ErrNotFound = errors.New("docstore: document not found")

	// ErrAlreadyExists возвращается при добавлении документа с существующим id
	ErrAlreadyExists = errors.New("docstore: document already exists")

	// ErrVersionConflict возвращается, если документ изменился после чтения
	ErrVersionConflict = errors.New("docstore: document version conflict")

	// ErrEncode возвращается при ошибке кодирования документа
	ErrEncode = errors.New("docstore: failed to encode document")

	// ErrDecode возвращается при ошибке декодирования документа
	ErrDecode = errors.New("docstore: failed to decode document")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("docstore: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса
	ErrExecQuery = errors.New("docstore: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("docstore: failed to scan row")
)
