package statistics

import "errors"

var (
	// ErrInvalidPeriod возвращается при неизвестном периоде выручки
	ErrInvalidPeriod = errors.New("invalid revenue period")

	// ErrAccessDenied возвращается, когда у актора нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
