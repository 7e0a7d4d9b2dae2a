package branch_schedule

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBranchSchedule(ctx context.Context, actor domain.ActorContext, branchID int64) (*models.BranchScheduleResponse, error)
	UpsertDay(ctx context.Context, actor domain.ActorContext, branchID int64, req *models.UpsertDayRequest) (*models.DayScheduleResponse, error)
	DeleteDay(ctx context.Context, actor domain.ActorContext, branchID int64, dayOfWeek int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
