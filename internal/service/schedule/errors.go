package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание на день не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrBranchNotFound возвращается, когда филиал не найден в бизнесе актора
	ErrBranchNotFound = errors.New("branch not found")

	// ErrAccessDenied возвращается, когда у актора нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
