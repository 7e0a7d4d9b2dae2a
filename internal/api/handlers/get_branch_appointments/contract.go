package get_branch_appointments

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetBranchAppointments(ctx context.Context, actor domain.ActorContext, req *models.GetBranchAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
