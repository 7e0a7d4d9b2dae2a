package get_public_employees

import (
	"context"

	branchModels "github.com/kyros-barber/KB-BookingService/internal/service/branches/models"
	staffModels "github.com/kyros-barber/KB-BookingService/internal/service/staff/models"
)

type StaffService interface {
	GetPerformingAll(ctx context.Context, businessID, branchID int64, serviceIDs []int64) (*staffModels.EmployeeListResponse, error)
}

// BranchResolver определяет бизнес по ID филиала на публичном маршруте
type BranchResolver interface {
	PublicGetByID(ctx context.Context, id int64) (*branchModels.PublicBranchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
