package get_public_open_days

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetOpenDays(ctx context.Context, branchID int64) (*models.OpenDaysResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
