package statistics

import (
	"context"
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// StatsRepository интерфейс репозитория агрегатных запросов
type StatsRepository interface {
	CountAppointmentsByBranch(ctx context.Context, businessID int64) ([]domain.BranchCount, error)
	PopularServices(ctx context.Context, businessID int64, branchID *int64, limit uint64) ([]domain.ServiceCount, error)
	CompletedBetween(ctx context.Context, businessID int64, branchID *int64, from, to time.Time) ([]domain.RevenueRow, error)
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
