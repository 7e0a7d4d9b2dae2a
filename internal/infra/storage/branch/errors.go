package branch

import "errors"

var (
	// ErrBranchNotFound филиал не найден
	ErrBranchNotFound = errors.New("branch not found")
	// ErrBusinessNotFound бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("failed to scan row")
)
