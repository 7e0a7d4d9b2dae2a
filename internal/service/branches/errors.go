package branches

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrHasActiveAppointments возвращается при попытке удалить филиал
	// с активными будущими записями
	ErrHasActiveAppointments = errors.New("branch has active future appointments")

	// ErrAccountExists возвращается, когда учетная запись с таким email уже существует
	ErrAccountExists = errors.New("branch account already exists")

	// ErrAccessDenied возвращается, когда у актора нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
