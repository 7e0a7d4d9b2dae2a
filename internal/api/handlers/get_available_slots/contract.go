package get_available_slots

import (
	"context"

	branchModels "github.com/kyros-barber/KB-BookingService/internal/service/branches/models"
	getAvailableSlots "github.com/kyros-barber/KB-BookingService/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
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
