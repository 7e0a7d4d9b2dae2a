package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	serviceRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/service"
	"github.com/kyros-barber/KB-BookingService/internal/service/catalog/models"
)

// Service сервис управления каталогом услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Create создает услугу
// Услуга без филиала глобальна и доступна во всех филиалах бизнеса
func (s *Service) Create(ctx context.Context, actor domain.ActorContext, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: service name=%q for business=%d", req.Name, actor.BusinessID)

	if err := validateServiceFields(req.Name, req.BasePrice, req.DurationMinutes); err != nil {
		s.logger.Warn("Create: validation failed for business=%d: %v", actor.BusinessID, err)
		return nil, err
	}

	// Актор филиала может создавать услуги только своего филиала
	if req.BranchID != nil && !actor.CanAccessBranch(*req.BranchID) {
		s.logger.Warn("Create: access denied to branch=%d", *req.BranchID)
		return nil, ErrAccessDenied
	}
	if req.BranchID == nil && actor.Role == domain.RoleBranch {
		s.logger.Warn("Create: branch actor cannot create global services")
		return nil, ErrAccessDenied
	}

	created, err := s.serviceRepo.Create(ctx, req.ToDomain(actor.BusinessID))
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d for business=%d", created.ID, actor.BusinessID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: service id=%d for business=%d", id, actor.BusinessID)

	svc, err := s.serviceRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// GetForBranch получает услуги, доступные в филиале: его собственные плюс глобальные
func (s *Service) GetForBranch(ctx context.Context, actor domain.ActorContext, branchID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("GetForBranch: branch=%d for business=%d", branchID, actor.BusinessID)

	services, err := s.serviceRepo.GetForBranch(ctx, actor.BusinessID, branchID)
	if err != nil {
		s.logger.Error("GetForBranch: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetForBranch - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// PublicGetForBranch получает услуги филиала для публичного виджета
// BusinessID приходит из карточки филиала, а не из контекста актора
func (s *Service) PublicGetForBranch(ctx context.Context, businessID, branchID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("PublicGetForBranch: branch=%d for business=%d", branchID, businessID)

	services, err := s.serviceRepo.GetForBranch(ctx, businessID, branchID)
	if err != nil {
		s.logger.Error("PublicGetForBranch: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: PublicGetForBranch - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// GetByBusiness получает все услуги бизнеса
func (s *Service) GetByBusiness(ctx context.Context, actor domain.ActorContext) (*models.ServiceListResponse, error) {
	s.logger.Info("GetByBusiness: business=%d", actor.BusinessID)

	services, err := s.serviceRepo.GetByBusiness(ctx, actor.BusinessID)
	if err != nil {
		s.logger.Error("GetByBusiness: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: GetByBusiness - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Update обновляет услугу
func (s *Service) Update(ctx context.Context, actor domain.ActorContext, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: service id=%d for business=%d", id, actor.BusinessID)

	if err := validateServiceFields(req.Name, req.BasePrice, req.DurationMinutes); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	existing, err := s.serviceRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if existing.BranchID != nil && !actor.CanAccessBranch(*existing.BranchID) {
		s.logger.Warn("Update: access denied to service id=%d", id)
		return nil, ErrAccessDenied
	}
	if existing.BranchID == nil && actor.Role == domain.RoleBranch {
		s.logger.Warn("Update: branch actor cannot edit global service id=%d", id)
		return nil, ErrAccessDenied
	}

	existing.BranchID = req.BranchID
	existing.Name = req.Name
	existing.BasePrice = req.BasePrice
	existing.DurationMinutes = req.DurationMinutes
	existing.Description = req.Description

	if err := s.serviceRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(existing), nil
}

// Delete удаляет услугу вместе со связями сотрудников
func (s *Service) Delete(ctx context.Context, actor domain.ActorContext, id int64) error {
	s.logger.Info("Delete: service id=%d for business=%d", id, actor.BusinessID)

	existing, err := s.serviceRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if existing.BranchID != nil && !actor.CanAccessBranch(*existing.BranchID) {
		return ErrAccessDenied
	}
	if existing.BranchID == nil && actor.Role == domain.RoleBranch {
		return ErrAccessDenied
	}

	if err := s.serviceRepo.Delete(ctx, actor.BusinessID, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted service id=%d", id)
	return nil
}

func validateServiceFields(name string, basePrice float64, durationMinutes int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if basePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}
	if durationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	return nil
}
