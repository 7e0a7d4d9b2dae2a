package create_public_booking

import (
	"context"

	branchModels "github.com/kyros-barber/KB-BookingService/internal/service/branches/models"
	createPublicBooking "github.com/kyros-barber/KB-BookingService/internal/usecase/create_public_booking"
)

type CreatePublicBookingUseCase interface {
	Execute(ctx context.Context, req *createPublicBooking.Request) (*createPublicBooking.Response, error)
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
