package create_appointment

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	createAppointment "github.com/kyros-barber/KB-BookingService/internal/usecase/create_appointment"
)

type CreateAppointmentUseCase interface {
	Execute(ctx context.Context, actor domain.ActorContext, req *createAppointment.Request) (*createAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
