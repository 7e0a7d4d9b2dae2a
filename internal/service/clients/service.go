package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	clientRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/client"
	"github.com/kyros-barber/KB-BookingService/internal/service/clients/models"
)

// Service сервис управления клиентами
type Service struct {
	clientRepo ClientRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создает клиента
func (s *Service) Create(ctx context.Context, actor domain.ActorContext, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	s.logger.Info("Create: client name=%q for business=%d", req.Name, actor.BusinessID)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.BranchID != nil && !actor.CanAccessBranch(*req.BranchID) {
		s.logger.Warn("Create: access denied to branch=%d", *req.BranchID)
		return nil, ErrAccessDenied
	}

	created, err := s.clientRepo.Create(ctx, req.ToDomain(actor.BusinessID))
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created client id=%d for business=%d", created.ID, actor.BusinessID)
	return models.FromDomainClient(created), nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.ClientResponse, error) {
	s.logger.Info("GetByID: client id=%d for business=%d", id, actor.BusinessID)

	c, err := s.clientRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetByID: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClient(c), nil
}

// List получает клиентов бизнеса; актор филиала видит только своих
func (s *Service) List(ctx context.Context, actor domain.ActorContext) (*models.ClientListResponse, error) {
	s.logger.Info("List: clients for business=%d", actor.BusinessID)

	var branchID *int64
	if actor.Role == domain.RoleBranch {
		branchID = actor.BranchID
	}

	clients, err := s.clientRepo.GetByBusiness(ctx, actor.BusinessID, branchID)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClientList(clients), nil
}

// Update обновляет клиента
func (s *Service) Update(ctx context.Context, actor domain.ActorContext, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error) {
	s.logger.Info("Update: client id=%d for business=%d", id, actor.BusinessID)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	existing, err := s.clientRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("Update: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	existing.BranchID = req.BranchID
	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Platform = req.Platform
	existing.ChatID = req.ChatID

	if err := s.clientRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("Update: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClient(existing), nil
}

// Delete удаляет клиента; его записи остаются без ссылки на клиента
func (s *Service) Delete(ctx context.Context, actor domain.ActorContext, id int64) error {
	s.logger.Info("Delete: client id=%d for business=%d", id, actor.BusinessID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.clientRepo.Delete(txCtx, actor.BusinessID, id)
	})
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return ErrClientNotFound
		}
		s.logger.Error("Delete: repository error for client id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted client id=%d", id)
	return nil
}

// FindOrCreate ищет клиента бизнеса по телефону и создает нового, если не найден
// Используется публичным потоком бронирования; пара (бизнес, телефон) — ключ поиска
func (s *Service) FindOrCreate(ctx context.Context, businessID int64, branchID *int64, name, phone, platform string, chatID *string) (*domain.Client, error) {
	s.logger.Info("FindOrCreate: business=%d, phone=%s", businessID, phone)

	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrInvalidInput)
	}

	var result *domain.Client

	// Сериализуемая транзакция закрывает гонку двух одновременных
	// бронирований с одним и тем же номером телефона
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.clientRepo.GetByPhone(txCtx, businessID, phone)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, clientRepo.ErrClientNotFound) {
			return fmt.Errorf("%w: FindOrCreate - lookup error: %v", ErrInternal, err)
		}

		created, err := s.clientRepo.Create(txCtx, &domain.Client{
			BusinessID: businessID,
			BranchID:   branchID,
			Name:       name,
			Phone:      &phone,
			Platform:   platform,
			ChatID:     chatID,
		})
		if err != nil {
			return fmt.Errorf("%w: FindOrCreate - create error: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		s.logger.Error("FindOrCreate: failed for business=%d, phone=%s: %v", businessID, phone, err)
		return nil, err
	}

	s.logger.Info("FindOrCreate: resolved client id=%d for business=%d", result.ID, businessID)
	return result, nil
}
