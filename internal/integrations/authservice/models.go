package authservice

// Logger интерфейс логирования, реализуется pkg/logger
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Account учетная запись филиала в AuthService
type Account struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	BranchID int64  `json:"branch_id"`
}

// CreateAccountRequest запрос на создание учетной записи филиала
type CreateAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	BranchID int64  `json:"branch_id"`
}

// UpdatePasswordRequest запрос на смену пароля учетной записи
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// ErrorResponse модель ошибки от AuthService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
