package manage_services

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	Create(ctx context.Context, actor domain.ActorContext, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.ServiceResponse, error)
	GetForBranch(ctx context.Context, actor domain.ActorContext, branchID int64) (*models.ServiceListResponse, error)
	GetByBusiness(ctx context.Context, actor domain.ActorContext) (*models.ServiceListResponse, error)
	Update(ctx context.Context, actor domain.ActorContext, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
	Delete(ctx context.Context, actor domain.ActorContext, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
