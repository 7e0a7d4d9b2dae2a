package authservice

import "errors"

var (
	// ErrAccountExists возвращается, когда учетная запись с таким email уже существует
	ErrAccountExists = errors.New("account already exists")

	// ErrAccountNotFound возвращается, когда учетная запись не найдена
	ErrAccountNotFound = errors.New("account not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что AuthService недоступен: филиал сохраняется без учетной записи
	ErrServiceDegraded = errors.New("authservice unavailable: graceful degradation applied")
)
