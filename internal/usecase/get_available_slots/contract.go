package get_available_slots

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetWithFilter получает записи филиала на конкретную дату
	GetWithFilter(ctx context.Context, filter domain.BranchAppointmentsFilter) ([]*domain.Appointment, error)
}

// BranchRepository интерфейс репозитория филиалов
// Запрос фильтруется по business_id: чужой филиал выглядит как несуществующий
type BranchRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Branch, error)
}

// ScheduleRepository интерфейс репозитория расписаний филиалов
type ScheduleRepository interface {
	GetByBranchAndDay(ctx context.Context, branchID int64, dayOfWeek int) (*domain.DaySchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
