package create_public_booking

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	CreateServices(ctx context.Context, appointmentID int64, items []domain.AppointmentService) error
	GetWithFilter(ctx context.Context, filter domain.BranchAppointmentsFilter) ([]*domain.Appointment, error)
	CountOverlapping(ctx context.Context, filter domain.OverlapFilter) (int, error)
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Branch, error)
}

// ScheduleRepository интерфейс репозитория расписаний филиалов
type ScheduleRepository interface {
	GetByBranchAndDay(ctx context.Context, branchID int64, dayOfWeek int) (*domain.DaySchedule, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByIDs(ctx context.Context, businessID int64, ids []int64) ([]*domain.Service, error)
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Employee, error)
}

// ClientService интерфейс сервиса клиентов
// Поиск-или-создание по паре (бизнес, телефон) живет в сервисе клиентов;
// вложенный вызов переиспользует открытую сериализуемую транзакцию
type ClientService interface {
	FindOrCreate(ctx context.Context, businessID int64, branchID *int64, name, phone, platform string, chatID *string) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
