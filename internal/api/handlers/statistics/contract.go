package statistics

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/statistics/models"
)

type StatisticsService interface {
	BranchCounts(ctx context.Context, actor domain.ActorContext) (*models.BranchCountsResponse, error)
	PopularServices(ctx context.Context, actor domain.ActorContext, limit uint64) (*models.PopularServicesResponse, error)
	Revenue(ctx context.Context, actor domain.ActorContext, rawPeriod string) (*models.RevenueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
