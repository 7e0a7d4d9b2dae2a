package create_public_booking

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// Request модель запроса на публичное бронирование из чата
type Request struct {
	BusinessID int64
	BranchID   int64

	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала (выбранный слот)
	ServiceIDs []int64          // Выбранные услуги

	EmployeeID *int64 // ID мастера (опционально)

	// Данные клиента из чата; клиент ищется по паре (бизнес, телефон)
	// и создается при отсутствии
	ClientName  string
	ClientPhone string
	Platform    string  // "web_chat", "whatsapp", ...
	ChatID      *string // Идентификатор диалога на платформе
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	BranchID   int64
	EmployeeID *int64
	ClientID   int64

	StartsAt time.Time
	EndsAt   time.Time
	Status   string

	DurationMinutes int
	TotalPrice      float64

	Services []ServiceLine

	CreatedAt time.Time
}

// ServiceLine позиция записи с зафиксированной ценой
type ServiceLine struct {
	ServiceID      int64
	ServiceName    string
	PriceAtBooking float64
}

// fromDomain собирает ответ из созданного бронирования
func fromDomain(appt *domain.Appointment, clientID int64, totals domain.ServiceTotals) *Response {
	resp := &Response{
		ID:              appt.ID,
		BranchID:        appt.BranchID,
		EmployeeID:      appt.EmployeeID,
		ClientID:        clientID,
		StartsAt:        appt.StartsAt,
		EndsAt:          appt.EndsAt,
		Status:          string(appt.Status),
		DurationMinutes: totals.DurationMinutes,
		TotalPrice:      totals.TotalPrice,
		CreatedAt:       appt.CreatedAt,
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
