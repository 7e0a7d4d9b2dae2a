package get_public_services

import (
	"context"

	branchModels "github.com/kyros-barber/KB-BookingService/internal/service/branches/models"
	catalogModels "github.com/kyros-barber/KB-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	PublicGetForBranch(ctx context.Context, businessID, branchID int64) (*catalogModels.ServiceListResponse, error)
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
