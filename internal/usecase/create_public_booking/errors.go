package create_public_booking

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
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

	// ErrSlotTaken возвращается, когда выбранный слот уже занят
	ErrSlotTaken = errors.New("the selected slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
