package get_public_branch

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/service/branches/models"
)

type BranchService interface {
	PublicGetByID(ctx context.Context, id int64) (*models.PublicBranchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
