package models

import (
	"errors"
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetBranchAppointmentsRequest запрос на получение записей филиала
type GetBranchAppointmentsRequest struct {
	BranchID        int64      `json:"branchId"`
	EmployeeID      *int64     `json:"employeeId,omitempty"`
	Date            *time.Time `json:"date,omitempty"`      // Один день (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`
	IncludeCanceled bool       `json:"includeCanceled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchAppointmentsRequest) ToDomainFilter(businessID int64) (domain.BranchAppointmentsFilter, error) {
	filter := domain.BranchAppointmentsFilter{
		BusinessID:      businessID,
		BranchID:        &r.BranchID,
		EmployeeID:      r.EmployeeID,
		Date:            r.Date,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeCanceled: r.IncludeCanceled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentServiceResponse позиция записи с ценой на момент бронирования
type AppointmentServiceResponse struct {
	ServiceID      int64   `json:"serviceId"`
	ServiceName    string  `json:"serviceName"`
	PriceAtBooking float64 `json:"priceAtBooking"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	BranchID   int64  `json:"branchId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	ClientID   *int64 `json:"clientId,omitempty"`

	StartsAt string `json:"startsAt"` // ISO 8601
	EndsAt   string `json:"endsAt"`   // ISO 8601
	Status   string `json:"status"`

	// Имя клиента, разрешенное по приоритету: зарегистрированный клиент,
	// затем введенное вручную имя
	ClientName     string `json:"clientName"`
	ClientRefKind  string `json:"clientRefKind"`
	EmployeeName   *string `json:"employeeName,omitempty"`

	Notes *string `json:"notes,omitempty"`

	Services []AppointmentServiceResponse `json:"services"`

	TotalPaid   *float64 `json:"totalPaid,omitempty"`
	CompletedAt *string  `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// ToDomainStatus конвертирует строку в domain статус
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusCanceled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	ref := a.ResolveClientRef()

	resp := &AppointmentResponse{
		ID:            a.ID,
		BranchID:      a.BranchID,
		EmployeeID:    a.EmployeeID,
		ClientID:      a.ClientID,
		StartsAt:      a.StartsAt.Format(time.RFC3339),
		EndsAt:        a.EndsAt.Format(time.RFC3339),
		Status:        string(a.Status),
		ClientName:    ref.Name,
		ClientRefKind: string(ref.Kind),
		EmployeeName:  a.EmployeeName,
		Notes:         a.Notes,
		TotalPaid:     a.TotalPaid,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	if a.CompletedAt != nil {
		completedAt := a.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedAt
	}

	resp.Services = make([]AppointmentServiceResponse, 0, len(a.Services))
	for _, item := range a.Services {
		resp.Services = append(resp.Services, AppointmentServiceResponse{
			ServiceID:      item.ServiceID,
			ServiceName:    item.ServiceName,
			PriceAtBooking: item.PriceAtBooking,
		})
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appts)),
	}
	for _, a := range appts {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
