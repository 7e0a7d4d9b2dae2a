package models

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
// BranchID == nil делает услугу глобальной: доступной во всех филиалах
type CreateServiceRequest struct {
	BranchID        *int64  `json:"branchId,omitempty"`
	Name            string  `json:"name"`
	BasePrice       float64 `json:"basePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     *string `json:"description,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateServiceRequest) ToDomain(businessID int64) *domain.Service {
	return &domain.Service{
		BusinessID:      businessID,
		BranchID:        r.BranchID,
		Name:            r.Name,
		BasePrice:       r.BasePrice,
		DurationMinutes: r.DurationMinutes,
		Description:     r.Description,
	}
}

// UpdateServiceRequest запрос на обновление услуги
type UpdateServiceRequest struct {
	BranchID        *int64  `json:"branchId,omitempty"`
	Name            string  `json:"name"`
	BasePrice       float64 `json:"basePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     *string `json:"description,omitempty"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	BranchID        *int64  `json:"branchId,omitempty"`
	Name            string  `json:"name"`
	BasePrice       float64 `json:"basePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     *string `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		BranchID:        s.BranchID,
		Name:            s.Name,
		BasePrice:       s.BasePrice,
		DurationMinutes: s.DurationMinutes,
		Description:     s.Description,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}
