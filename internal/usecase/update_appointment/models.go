package update_appointment

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// Request модель запроса на изменение записи
type Request struct {
	AppointmentID int64

	Date       time.Time        // Новая дата записи (без времени)
	StartTime  types.TimeString // Новое время начала
	ServiceIDs []int64          // Новый набор услуг

	EmployeeID *int64 // Новый мастер; nil означает "без предпочтения"

	ClientID         *int64
	ManualClientName *string

	Notes *string
}

// Response модель ответа с обновленной записью
type Response struct {
	ID         int64
	BranchID   int64
	EmployeeID *int64
	ClientID   *int64

	StartsAt time.Time
	EndsAt   time.Time
	Status   string

	DurationMinutes int
	TotalPrice      float64

	Services []ServiceLine

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceLine позиция записи с зафиксированной ценой
type ServiceLine struct {
	ServiceID      int64
	ServiceName    string
	PriceAtBooking float64
}

// fromDomain собирает ответ из обновленной записи
func fromDomain(appt *domain.Appointment, totals domain.ServiceTotals) *Response {
	resp := &Response{
		ID:              appt.ID,
		BranchID:        appt.BranchID,
		EmployeeID:      appt.EmployeeID,
		ClientID:        appt.ClientID,
		StartsAt:        appt.StartsAt,
		EndsAt:          appt.EndsAt,
		Status:          string(appt.Status),
		DurationMinutes: totals.DurationMinutes,
		TotalPrice:      totals.TotalPrice,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}

	resp.Services = make([]ServiceLine, 0, len(appt.Services))
	for _, item := range appt.Services {
		resp.Services = append(resp.Services, ServiceLine{
			ServiceID:      item.ServiceID,
			ServiceName:    item.ServiceName,
			PriceAtBooking: item.PriceAtBooking,
		})
	}

	return resp
}
