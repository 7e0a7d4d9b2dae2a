package update_appointment

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	updateAppointment "github.com/kyros-barber/KB-BookingService/internal/usecase/update_appointment"
)

type UpdateAppointmentUseCase interface {
	Execute(ctx context.Context, actor domain.ActorContext, req *updateAppointment.Request) (*updateAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
