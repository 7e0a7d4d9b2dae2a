package create_public_booking

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	createPublicBooking "github.com/kyros-barber/KB-BookingService/internal/usecase/create_public_booking"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// CreatePublicBookingRequest HTTP request model
type CreatePublicBookingRequest struct {
	Date       string  `json:"date"`      // YYYY-MM-DD
	StartTime  string  `json:"startTime"` // HH:MM
	ServiceIDs []int64 `json:"serviceIds"`

	EmployeeID *int64 `json:"employeeId,omitempty"`

	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Platform    string  `json:"platform,omitempty"`
	ChatID      *string `json:"chatId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreatePublicBookingRequest) ToUseCaseRequest(businessID, branchID int64) (*createPublicBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createPublicBooking.Request{
		BusinessID:  businessID,
		BranchID:    branchID,
		Date:        date,
		StartTime:   startTime,
		ServiceIDs:  r.ServiceIDs,
		EmployeeID:  r.EmployeeID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Platform:    r.Platform,
		ChatID:      r.ChatID,
	}, nil
}

// BookingServiceResponse позиция бронирования в HTTP ответе
type BookingServiceResponse struct {
	ServiceID      int64   `json:"serviceId"`
	ServiceName    string  `json:"serviceName"`
	PriceAtBooking float64 `json:"priceAtBooking"`
}

// CreatePublicBookingResponse HTTP response model
type CreatePublicBookingResponse struct {
	ID         int64  `json:"id"`
	BranchID   int64  `json:"branchId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	ClientID   int64  `json:"clientId"`

	StartsAt string `json:"startsAt"` // ISO 8601
	EndsAt   string `json:"endsAt"`   // ISO 8601
	Status   string `json:"status"`

	DurationMinutes int     `json:"durationMinutes"`
	TotalPrice      float64 `json:"totalPrice"`

	Services []BookingServiceResponse `json:"services"`

	CreatedAt time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPublicBooking.Response) *CreatePublicBookingResponse {
	services := make([]BookingServiceResponse, len(resp.Services))
	for i, svc := range resp.Services {
		services[i] = BookingServiceResponse{
			ServiceID:      svc.ServiceID,
			ServiceName:    svc.ServiceName,
			PriceAtBooking: svc.PriceAtBooking,
		}
	}

	return &CreatePublicBookingResponse{
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
		CreatedAt:       resp.CreatedAt,
	}
}
