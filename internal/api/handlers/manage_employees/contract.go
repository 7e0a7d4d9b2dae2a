package manage_employees

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/staff/models"
)

type StaffService interface {
	Create(ctx context.Context, actor domain.ActorContext, req *models.CreateEmployeeRequest) (*models.EmployeeResponse, error)
	GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.EmployeeResponse, error)
	GetByBranch(ctx context.Context, actor domain.ActorContext, branchID int64) (*models.EmployeeListResponse, error)
	GetByBusiness(ctx context.Context, actor domain.ActorContext) (*models.EmployeeListResponse, error)
	Update(ctx context.Context, actor domain.ActorContext, id int64, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error)
	Delete(ctx context.Context, actor domain.ActorContext, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
