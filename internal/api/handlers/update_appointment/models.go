package update_appointment

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	updateAppointment "github.com/kyros-barber/KB-BookingService/internal/usecase/update_appointment"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	Date       string  `json:"date"`      // YYYY-MM-DD
	StartTime  string  `json:"startTime"` // HH:MM
	ServiceIDs []int64 `json:"serviceIds"`

	EmployeeID *int64 `json:"employeeId,omitempty"`

	ClientID         *int64  `json:"clientId,omitempty"`
	ManualClientName *string `json:"manualClientName,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*updateAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &updateAppointment.Request{
		AppointmentID:    appointmentID,
		Date:             date,
		StartTime:        startTime,
		ServiceIDs:       r.ServiceIDs,
		EmployeeID:       r.EmployeeID,
		ClientID:         r.ClientID,
		ManualClientName: r.ManualClientName,
		Notes:            r.Notes,
	}, nil
}

// AppointmentServiceResponse позиция записи в HTTP ответе
type AppointmentServiceResponse struct {
	ServiceID      int64   `json:"serviceId"`
	ServiceName    string  `json:"serviceName"`
	PriceAtBooking float64 `json:"priceAtBooking"`
}

// UpdateAppointmentResponse HTTP response model
type UpdateAppointmentResponse struct {
	ID         int64  `json:"id"`
	BranchID   int64  `json:"branchId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	ClientID   *int64 `json:"clientId,omitempty"`

	StartsAt string `json:"startsAt"` // ISO 8601
	EndsAt   string `json:"endsAt"`   // ISO 8601
	Status   string `json:"status"`

	DurationMinutes int     `json:"durationMinutes"`
	TotalPrice      float64 `json:"totalPrice"`

	Services []AppointmentServiceResponse `json:"services"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *UpdateAppointmentResponse {
	services := make([]AppointmentServiceResponse, len(resp.Services))
	for i, svc := range resp.Services {
		services[i] = AppointmentServiceResponse{
			ServiceID:      svc.ServiceID,
			ServiceName:    svc.ServiceName,
			PriceAtBooking: svc.PriceAtBooking,
		}
	}

	return &UpdateAppointmentResponse{
		ID:              resp.ID,
		BranchID:        resp.BranchID,
		EmployeeID:      resp.EmployeeID,
		ClientID:        resp.ClientID,
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		Status:          resp.Status,
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice,
		Services:        services,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
