package models

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// Request модели

// CreateBranchRequest запрос на создание филиала
// AccountEmail и AccountPassword опционально создают учетную запись
// для входа сотрудников филиала
type CreateBranchRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone,omitempty"`

	AccountEmail    *string `json:"accountEmail,omitempty"`
	AccountPassword *string `json:"accountPassword,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateBranchRequest) ToDomain(businessID int64) *domain.Branch {
	return &domain.Branch{
		BusinessID:   businessID,
		Name:         r.Name,
		Address:      r.Address,
		Phone:        r.Phone,
		AccountEmail: r.AccountEmail,
	}
}

// UpdateBranchRequest запрос на обновление филиала
type UpdateBranchRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone,omitempty"`

	AccountEmail    *string `json:"accountEmail,omitempty"`
	AccountPassword *string `json:"accountPassword,omitempty"`
}

// Response модели

// BranchResponse ответ с данными филиала
type BranchResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Phone        *string `json:"phone,omitempty"`
	AccountEmail *string `json:"accountEmail,omitempty"`

	// Предупреждение о деградации: филиал сохранен, но учетная запись
	// не создана из-за недоступности AuthService
	AccountWarning *string `json:"accountWarning,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BranchListResponse ответ со списком филиалов
type BranchListResponse struct {
	Branches []BranchResponse `json:"branches"`
}

// PublicBranchResponse публичная карточка филиала для виджета
// Не содержит учетных данных
type PublicBranchResponse struct {
	ID         int64   `json:"id"`
	BusinessID int64   `json:"businessId"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Phone      *string `json:"phone,omitempty"`
}

// BusinessResponse ответ с данными бизнеса
type BusinessResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainBranch конвертирует domain модель в DTO
func FromDomainBranch(b *domain.Branch) *BranchResponse {
	if b == nil {
		return nil
	}
	return &BranchResponse{
		ID:           b.ID,
		Name:         b.Name,
		Address:      b.Address,
		Phone:        b.Phone,
		AccountEmail: b.AccountEmail,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBranchList конвертирует список domain моделей в DTO
func FromDomainBranchList(branches []*domain.Branch) *BranchListResponse {
	resp := &BranchListResponse{
		Branches: make([]BranchResponse, 0, len(branches)),
	}
	for _, b := range branches {
		resp.Branches = append(resp.Branches, *FromDomainBranch(b))
	}
	return resp
}

// FromDomainBranchPublic конвертирует domain модель в публичную карточку
func FromDomainBranchPublic(b *domain.Branch) *PublicBranchResponse {
	if b == nil {
		return nil
	}
	return &PublicBranchResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		Name:       b.Name,
		Address:    b.Address,
		Phone:      b.Phone,
	}
}

// FromDomainBusiness конвертирует domain модель бизнеса в DTO
func FromDomainBusiness(b *domain.Business) *BusinessResponse {
	if b == nil {
		return nil
	}
	return &BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
