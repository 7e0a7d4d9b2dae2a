package models

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// Request модели

// CreateEmployeeRequest запрос на создание сотрудника
type CreateEmployeeRequest struct {
	BranchID   int64   `json:"branchId"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateEmployeeRequest) ToDomain(businessID int64) *domain.Employee {
	return &domain.Employee{
		BusinessID: businessID,
		BranchID:   r.BranchID,
		Name:       r.Name,
		Specialty:  r.Specialty,
		ServiceIDs: r.ServiceIDs,
	}
}

// UpdateEmployeeRequest запрос на обновление сотрудника
type UpdateEmployeeRequest struct {
	BranchID   int64   `json:"branchId"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// Response модели

// EmployeeResponse ответ с данными сотрудника
type EmployeeResponse struct {
	ID         int64   `json:"id"`
	BranchID   int64   `json:"branchId"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	ServiceIDs []int64 `json:"serviceIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmployeeListResponse ответ со списком сотрудников
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// Методы конвертации

// FromDomainEmployee конвертирует domain модель в DTO
func FromDomainEmployee(e *domain.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	serviceIDs := e.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}
	return &EmployeeResponse{
		ID:         e.ID,
		BranchID:   e.BranchID,
		Name:       e.Name,
		Specialty:  e.Specialty,
		ServiceIDs: serviceIDs,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// FromDomainEmployeeList конвертирует список domain моделей в DTO
func FromDomainEmployeeList(employees []*domain.Employee) *EmployeeListResponse {
	resp := &EmployeeListResponse{
		Employees: make([]EmployeeResponse, 0, len(employees)),
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, *FromDomainEmployee(e))
	}
	return resp
}
