package models

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// Request модели

// CreateClientRequest запрос на создание клиента
type CreateClientRequest struct {
	BranchID *int64  `json:"branchId,omitempty"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Platform string  `json:"platform,omitempty"` // "web_chat", "whatsapp", ...
	ChatID   *string `json:"chatId,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateClientRequest) ToDomain(businessID int64) *domain.Client {
	return &domain.Client{
		BusinessID: businessID,
		BranchID:   r.BranchID,
		Name:       r.Name,
		Phone:      r.Phone,
		Platform:   r.Platform,
		ChatID:     r.ChatID,
	}
}

// UpdateClientRequest запрос на обновление клиента
type UpdateClientRequest struct {
	BranchID *int64  `json:"branchId,omitempty"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Platform string  `json:"platform,omitempty"`
	ChatID   *string `json:"chatId,omitempty"`
}

// Response модели

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID       int64   `json:"id"`
	BranchID *int64  `json:"branchId,omitempty"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Platform string  `json:"platform,omitempty"`
	ChatID   *string `json:"chatId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientListResponse ответ со списком клиентов
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// Методы конвертации

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Name:      c.Name,
		Phone:     c.Phone,
		Platform:  c.Platform,
		ChatID:    c.ChatID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainClientList конвертирует список domain моделей в DTO
func FromDomainClientList(clients []*domain.Client) *ClientListResponse {
	resp := &ClientListResponse{
		Clients: make([]ClientResponse, 0, len(clients)),
	}
	for _, c := range clients {
		resp.Clients = append(resp.Clients, *FromDomainClient(c))
	}
	return resp
}
