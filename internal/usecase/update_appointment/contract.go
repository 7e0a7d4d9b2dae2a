package update_appointment

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
	DeleteServices(ctx context.Context, appointmentID int64) error
	CreateServices(ctx context.Context, appointmentID int64, items []domain.AppointmentService) error
	CountOverlapping(ctx context.Context, filter domain.OverlapFilter) (int, error)
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
