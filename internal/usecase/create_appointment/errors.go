package create_appointment

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден в бизнесе актора
	ErrBranchNotFound = errors.New("branch not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotAvailableAtBranch возвращается, когда услуга недоступна в филиале
	ErrServiceNotAvailableAtBranch = errors.New("service is not available at this branch")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrEmployeeBranchMismatch возвращается, когда сотрудник работает в другом филиале
	ErrEmployeeBranchMismatch = errors.New("employee works at another branch")

	// ErrEmployeeCannotPerform возвращается, когда сотрудник не выполняет
	// одну из выбранных услуг
	ErrEmployeeCannotPerform = errors.New("employee does not perform all selected services")

	// ErrOutsideWorkingHours возвращается, когда запись не укладывается в рабочие часы
	ErrOutsideWorkingHours = errors.New("appointment is outside working hours")

	// ErrTimeConflict возвращается, когда время у сотрудника уже занято
	ErrTimeConflict = errors.New("employee already has an appointment at this time")

	// ErrAccessDenied возвращается, когда у актора нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
