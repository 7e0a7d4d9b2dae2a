package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	employeeRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/employee"
	"github.com/kyros-barber/KB-BookingService/internal/service/staff/models"
)

// Service сервис управления сотрудниками
type Service struct {
	employeeRepo EmployeeRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(
	employeeRepo EmployeeRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает сотрудника вместе с набором выполняемых услуг
func (s *Service) Create(ctx context.Context, actor domain.ActorContext, req *models.CreateEmployeeRequest) (*models.EmployeeResponse, error) {
	s.logger.Info("Create: employee name=%q for branch=%d", req.Name, req.BranchID)

	if err := validateEmployeeFields(req.Name); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if !actor.CanAccessBranch(req.BranchID) {
		s.logger.Warn("Create: access denied to branch=%d", req.BranchID)
		return nil, ErrAccessDenied
	}

	if err := s.checkServicesExist(ctx, actor.BusinessID, req.ServiceIDs); err != nil {
		return nil, err
	}

	// Сотрудник и связи с услугами создаются атомарно
	var created *domain.Employee
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(txCtx, req.ToDomain(actor.BusinessID))
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created employee id=%d for branch=%d", created.ID, req.BranchID)
	return models.FromDomainEmployee(created), nil
}

// GetByID получает сотрудника по ID
func (s *Service) GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.EmployeeResponse, error) {
	s.logger.Info("GetByID: employee id=%d for business=%d", id, actor.BusinessID)

	emp, err := s.employeeRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetByID: repository error for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccessBranch(emp.BranchID) {
		return nil, ErrAccessDenied
	}

	return models.FromDomainEmployee(emp), nil
}

// GetByBranch получает сотрудников филиала
func (s *Service) GetByBranch(ctx context.Context, actor domain.ActorContext, branchID int64) (*models.EmployeeListResponse, error) {
	s.logger.Info("GetByBranch: branch=%d for business=%d", branchID, actor.BusinessID)

	if !actor.CanAccessBranch(branchID) {
		return nil, ErrAccessDenied
	}

	employees, err := s.employeeRepo.GetByBranch(ctx, actor.BusinessID, branchID)
	if err != nil {
		s.logger.Error("GetByBranch: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetByBranch - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEmployeeList(employees), nil
}

// GetByBusiness получает всех сотрудников бизнеса
func (s *Service) GetByBusiness(ctx context.Context, actor domain.ActorContext) (*models.EmployeeListResponse, error) {
	s.logger.Info("GetByBusiness: business=%d", actor.BusinessID)

	employees, err := s.employeeRepo.GetByBusiness(ctx, actor.BusinessID)
	if err != nil {
		s.logger.Error("GetByBusiness: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: GetByBusiness - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEmployeeList(employees), nil
}

// GetPerformingAll получает сотрудников филиала, выполняющих ВСЕ указанные услуги
// Используется публичным чатом для выбора мастера под набор услуг
func (s *Service) GetPerformingAll(ctx context.Context, businessID, branchID int64, serviceIDs []int64) (*models.EmployeeListResponse, error) {
	s.logger.Info("GetPerformingAll: branch=%d, services=%v", branchID, serviceIDs)

	employees, err := s.employeeRepo.GetByBranch(ctx, businessID, branchID)
	if err != nil {
		s.logger.Error("GetPerformingAll: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetPerformingAll - repository error: %v", ErrInternal, err)
	}

	matched := make([]*domain.Employee, 0, len(employees))
	for _, emp := range employees {
		if emp.PerformsAll(serviceIDs) {
			matched = append(matched, emp)
		}
	}

	s.logger.Info("GetPerformingAll: %d of %d employees match for branch=%d", len(matched), len(employees), branchID)
	return models.FromDomainEmployeeList(matched), nil
}

// Update обновляет сотрудника и заменяет его набор услуг
func (s *Service) Update(ctx context.Context, actor domain.ActorContext, id int64, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error) {
	s.logger.Info("Update: employee id=%d for business=%d", id, actor.BusinessID)

	if err := validateEmployeeFields(req.Name); err != nil {
		s.logger.Warn("Update: validation failed for employee id=%d: %v", id, err)
		return nil, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("Update: repository error for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Доступ нужен и к текущему, и к целевому филиалу
	if !actor.CanAccessBranch(existing.BranchID) || !actor.CanAccessBranch(req.BranchID) {
		return nil, ErrAccessDenied
	}

	if err := s.checkServicesExist(ctx, actor.BusinessID, req.ServiceIDs); err != nil {
		return nil, err
	}

	existing.BranchID = req.BranchID
	existing.Name = req.Name
	existing.Specialty = req.Specialty
	existing.ServiceIDs = req.ServiceIDs

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.employeeRepo.Update(txCtx, existing)
	})
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("Update: repository error for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEmployee(existing), nil
}

// Delete удаляет сотрудника; его записи остаются без предпочтения мастера
func (s *Service) Delete(ctx context.Context, actor domain.ActorContext, id int64) error {
	s.logger.Info("Delete: employee id=%d for business=%d", id, actor.BusinessID)

	existing, err := s.employeeRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("Delete: repository error for employee id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccessBranch(existing.BranchID) {
		return ErrAccessDenied
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.employeeRepo.Delete(txCtx, actor.BusinessID, id)
	})
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("Delete: repository error for employee id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted employee id=%d", id)
	return nil
}

// checkServicesExist проверяет, что все указанные услуги принадлежат бизнесу
func (s *Service) checkServicesExist(ctx context.Context, businessID int64, serviceIDs []int64) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	services, err := s.serviceRepo.GetByIDs(ctx, businessID, serviceIDs)
	if err != nil {
		s.logger.Error("checkServicesExist: repository error: %v", err)
		return fmt.Errorf("%w: checkServicesExist - repository error: %v", ErrInternal, err)
	}

	found := make(map[int64]struct{}, len(services))
	for _, svc := range services {
		found[svc.ID] = struct{}{}
	}
	for _, id := range serviceIDs {
		if _, ok := found[id]; !ok {
			s.logger.Warn("checkServicesExist: service id=%d not found", id)
			return ErrServiceNotFound
		}
	}
	return nil
}

func validateEmployeeFields(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	return nil
}
