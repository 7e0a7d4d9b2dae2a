package manage_clients

import (
	"context"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/clients/models"
)

type ClientService interface {
	Create(ctx context.Context, actor domain.ActorContext, req *models.CreateClientRequest) (*models.ClientResponse, error)
	GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.ClientResponse, error)
	List(ctx context.Context, actor domain.ActorContext) (*models.ClientListResponse, error)
	Update(ctx context.Context, actor domain.ActorContext, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error)
	Delete(ctx context.Context, actor domain.ActorContext, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
