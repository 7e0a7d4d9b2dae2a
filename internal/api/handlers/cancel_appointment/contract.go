package cancel_appointment

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, actor domain.ActorContext, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
