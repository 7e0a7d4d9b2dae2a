package manage_branches

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/branches/models"
)

type BranchService interface {
	GetBusiness(ctx context.Context, actor domain.ActorContext) (*models.BusinessResponse, error)
	Create(ctx context.Context, actor domain.ActorContext, req *models.CreateBranchRequest) (*models.BranchResponse, error)
	GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.BranchResponse, error)
	List(ctx context.Context, actor domain.ActorContext) (*models.BranchListResponse, error)
	Update(ctx context.Context, actor domain.ActorContext, id int64, req *models.UpdateBranchRequest) (*models.BranchResponse, error)
	Delete(ctx context.Context, actor domain.ActorContext, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
