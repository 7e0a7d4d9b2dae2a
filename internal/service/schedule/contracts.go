package schedule

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
// Нужен, чтобы убедиться, что филиал принадлежит бизнесу актора
type BranchRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Branch, error)
}

// ScheduleRepository интерфейс репозитория расписаний филиалов
type ScheduleRepository interface {
	GetByBranch(ctx context.Context, branchID int64) ([]*domain.DaySchedule, error)
	GetByBranchAndDay(ctx context.Context, branchID int64, dayOfWeek int) (*domain.DaySchedule, error)
	GetOpenDays(ctx context.Context, branchID int64) ([]int, error)
	Upsert(ctx context.Context, sched *domain.DaySchedule) (*domain.DaySchedule, error)
	DeleteDay(ctx context.Context, branchID int64, dayOfWeek int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
