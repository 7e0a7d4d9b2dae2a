package staff

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) (*domain.Employee, error)
	GetByID(ctx context.Context, businessID, id int64) (*domain.Employee, error)
	GetByBranch(ctx context.Context, businessID, branchID int64) ([]*domain.Employee, error)
	GetByBusiness(ctx context.Context, businessID int64) ([]*domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, businessID, id int64) error
}

// ServiceRepository интерфейс репозитория услуг для проверки связей
type ServiceRepository interface {
	GetByIDs(ctx context.Context, businessID int64, ids []int64) ([]*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
