package branches

import (
	"context"
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/integrations/authservice"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error)
	Create(ctx context.Context, b *domain.Branch) (*domain.Branch, error)
	GetByID(ctx context.Context, businessID, id int64) (*domain.Branch, error)
	GetByIDPublic(ctx context.Context, id int64) (*domain.Branch, error)
	GetByBusiness(ctx context.Context, businessID int64) ([]*domain.Branch, error)
	Update(ctx context.Context, b *domain.Branch) error
	Delete(ctx context.Context, businessID, id int64) error
}

// AppointmentRepository интерфейс репозитория записей для проверок и каскада
type AppointmentRepository interface {
	CountActiveAfter(ctx context.Context, businessID, branchID int64, after time.Time) (int, error)
	DeleteByBranch(ctx context.Context, businessID, branchID int64) error
}

// ScheduleRepository интерфейс репозитория расписаний для каскада
type ScheduleRepository interface {
	DeleteByBranch(ctx context.Context, branchID int64) error
}

// EmployeeRepository интерфейс репозитория сотрудников для каскада
type EmployeeRepository interface {
	DeleteByBranch(ctx context.Context, businessID, branchID int64) error
}

// ServiceRepository интерфейс репозитория услуг для каскада
type ServiceRepository interface {
	DeleteByBranch(ctx context.Context, businessID, branchID int64) error
}

// AuthServiceClient интерфейс клиента AuthService для учетных записей филиалов
type AuthServiceClient interface {
	CreateAccountWithGracefulDegradation(ctx context.Context, req authservice.CreateAccountRequest) (*authservice.Account, error)
	UpdatePassword(ctx context.Context, email, password string) error
	DeleteAccount(ctx context.Context, email string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
