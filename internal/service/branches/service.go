package branches

import (
	"context"
	"errors"
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	"github.com/kyros-barber/KB-BookingService/internal/integrations/authservice"
	"github.com/kyros-barber/KB-BookingService/internal/service/branches/models"
)

// Service сервис управления филиалами
type Service struct {
	branchRepo   BranchRepository
	apptRepo     AppointmentRepository
	scheduleRepo ScheduleRepository
	employeeRepo EmployeeRepository
	serviceRepo  ServiceRepository
	authClient   AuthServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса филиалов
func NewService(
	branchRepo BranchRepository,
	apptRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	employeeRepo EmployeeRepository,
	serviceRepo ServiceRepository,
	authClient AuthServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		branchRepo:   branchRepo,
		apptRepo:     apptRepo,
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		serviceRepo:  serviceRepo,
		authClient:   authClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetBusiness получает бизнес актора
func (s *Service) GetBusiness(ctx context.Context, actor domain.ActorContext) (*models.BusinessResponse, error) {
	s.logger.Info("GetBusiness: business=%d", actor.BusinessID)

	b, err := s.branchRepo.GetBusiness(ctx, actor.BusinessID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetBusiness: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusiness - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBusiness(b), nil
}

// Create создает филиал; при наличии email и пароля заводит учетную запись
// Недоступность AuthService не отменяет сохранение филиала: в ответе
// возвращается предупреждение (fail-soft)
func (s *Service) Create(ctx context.Context, actor domain.ActorContext, req *models.CreateBranchRequest) (*models.BranchResponse, error) {
	s.logger.Info("Create: branch name=%q for business=%d", req.Name, actor.BusinessID)

	// Управление филиалами доступно только владельцу
	if actor.Role != domain.RoleOwner {
		s.logger.Warn("Create: access denied for non-owner actor")
		return nil, ErrAccessDenied
	}

	if err := validateBranchFields(req.Name, req.Address); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.branchRepo.Create(ctx, req.ToDomain(actor.BusinessID))
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBranch(created)
	s.provisionAccount(ctx, created, req.AccountEmail, req.AccountPassword, resp)

	s.logger.Info("Create: created branch id=%d for business=%d", created.ID, actor.BusinessID)
	return resp, nil
}

// GetByID получает филиал по ID
func (s *Service) GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.BranchResponse, error) {
	s.logger.Info("GetByID: branch id=%d for business=%d", id, actor.BusinessID)

	if !actor.CanAccessBranch(id) {
		return nil, ErrAccessDenied
	}

	b, err := s.branchRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("GetByID: repository error for branch id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBranch(b), nil
}

// PublicGetByID получает публичную карточку филиала без авторизации
func (s *Service) PublicGetByID(ctx context.Context, id int64) (*models.PublicBranchResponse, error) {
	s.logger.Info("PublicGetByID: branch id=%d", id)

	b, err := s.branchRepo.GetByIDPublic(ctx, id)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("PublicGetByID: repository error for branch id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: PublicGetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBranchPublic(b), nil
}

// List получает филиалы бизнеса
func (s *Service) List(ctx context.Context, actor domain.ActorContext) (*models.BranchListResponse, error) {
	s.logger.Info("List: branches for business=%d", actor.BusinessID)

	branches, err := s.branchRepo.GetByBusiness(ctx, actor.BusinessID)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// Актор филиала видит только свой филиал
	if actor.Role == domain.RoleBranch {
		filtered := branches[:0]
		for _, b := range branches {
			if actor.CanAccessBranch(b.ID) {
				filtered = append(filtered, b)
			}
		}
		branches = filtered
	}

	return models.FromDomainBranchList(branches), nil
}

// Update обновляет филиал и, при необходимости, его учетную запись
func (s *Service) Update(ctx context.Context, actor domain.ActorContext, id int64, req *models.UpdateBranchRequest) (*models.BranchResponse, error) {
	s.logger.Info("Update: branch id=%d for business=%d", id, actor.BusinessID)

	if !actor.CanAccessBranch(id) {
		return nil, ErrAccessDenied
	}

	if err := validateBranchFields(req.Name, req.Address); err != nil {
		s.logger.Warn("Update: validation failed for branch id=%d: %v", id, err)
		return nil, err
	}

	existing, err := s.branchRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("Update: repository error for branch id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	hadAccount := existing.AccountEmail != nil

	existing.Name = req.Name
	existing.Address = req.Address
	existing.Phone = req.Phone
	if req.AccountEmail != nil {
		existing.AccountEmail = req.AccountEmail
	}

	if err := s.branchRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("Update: repository error for branch id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBranch(existing)

	// Новая учетная запись или смена пароля существующей
	if req.AccountEmail != nil && !hadAccount {
		s.provisionAccount(ctx, existing, req.AccountEmail, req.AccountPassword, resp)
	} else if req.AccountPassword != nil && existing.AccountEmail != nil {
		if err := s.authClient.UpdatePassword(ctx, *existing.AccountEmail, *req.AccountPassword); err != nil {
			s.logger.Error("Update: failed to update account password for branch id=%d: %v", id, err)
			warning := "branch saved, but the account password was not updated"
			resp.AccountWarning = &warning
		}
	}

	return resp, nil
}

// Delete удаляет филиал вместе с расписаниями, сотрудниками, услугами и записями
// Отказывает, если у филиала есть активные будущие записи
func (s *Service) Delete(ctx context.Context, actor domain.ActorContext, id int64) error {
	s.logger.Info("Delete: branch id=%d for business=%d", id, actor.BusinessID)

	if actor.Role != domain.RoleOwner {
		return ErrAccessDenied
	}

	existing, err := s.branchRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return ErrBranchNotFound
		}
		s.logger.Error("Delete: repository error for branch id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	// Проверка и каскад в одной сериализуемой транзакции: между проверкой
	// и удалением не должна успеть появиться новая запись
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := s.apptRepo.CountActiveAfter(txCtx, actor.BusinessID, id, now)
		if err != nil {
			return fmt.Errorf("%w: Delete - count active appointments: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("Delete: branch id=%d has %d active future appointments", id, count)
			return ErrHasActiveAppointments
		}

		if err := s.apptRepo.DeleteByBranch(txCtx, actor.BusinessID, id); err != nil {
			return fmt.Errorf("%w: Delete - delete appointments: %v", ErrInternal, err)
		}
		if err := s.scheduleRepo.DeleteByBranch(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete schedules: %v", ErrInternal, err)
		}
		if err := s.employeeRepo.DeleteByBranch(txCtx, actor.BusinessID, id); err != nil {
			return fmt.Errorf("%w: Delete - delete employees: %v", ErrInternal, err)
		}
		if err := s.serviceRepo.DeleteByBranch(txCtx, actor.BusinessID, id); err != nil {
			return fmt.Errorf("%w: Delete - delete services: %v", ErrInternal, err)
		}
		return s.branchRepo.Delete(txCtx, actor.BusinessID, id)
	})
	if err != nil {
		if errors.Is(err, ErrHasActiveAppointments) {
			return ErrHasActiveAppointments
		}
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return ErrBranchNotFound
		}
		s.logger.Error("Delete: transaction failed for branch id=%d: %v", id, err)
		return err
	}

	// Учетная запись чистится после фиксации транзакции; ошибка не
	// отменяет удаление филиала
	if existing.AccountEmail != nil {
		if err := s.authClient.DeleteAccount(ctx, *existing.AccountEmail); err != nil {
			s.logger.Error("Delete: failed to delete account for branch id=%d: %v", id, err)
		}
	}

	s.logger.Info("Delete: deleted branch id=%d", id)
	return nil
}

// provisionAccount заводит учетную запись филиала с graceful degradation
func (s *Service) provisionAccount(ctx context.Context, b *domain.Branch, email, password *string, resp *models.BranchResponse) {
	if email == nil || password == nil {
		return
	}

	_, err := s.authClient.CreateAccountWithGracefulDegradation(ctx, authservice.CreateAccountRequest{
		Email:    *email,
		Password: *password,
		BranchID: b.ID,
	})
	if err != nil {
		if errors.Is(err, authservice.ErrAccountExists) {
			warning := "branch saved, but an account with this email already exists"
			resp.AccountWarning = &warning
			return
		}
		warning := "branch saved, but the login account could not be created"
		resp.AccountWarning = &warning
		return
	}

	b.AccountEmail = email
	resp.AccountEmail = email

	if err := s.branchRepo.Update(ctx, b); err != nil {
		s.logger.Error("provisionAccount: failed to persist account email for branch id=%d: %v", b.ID, err)
	}
}

func validateBranchFields(name, address string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	return nil
}
