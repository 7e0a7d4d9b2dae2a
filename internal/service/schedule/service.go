package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	scheduleRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/schedule"
	"github.com/kyros-barber/KB-BookingService/internal/service/schedule/models"
)

// Service сервис управления расписаниями филиалов
type Service struct {
	scheduleRepo ScheduleRepository
	branchRepo   BranchRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, branchRepo BranchRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		branchRepo:   branchRepo,
		logger:       logger,
	}
}

// resolveBranch проверяет, что филиал принадлежит бизнесу актора
// Запрос в branchRepo фильтруется по business_id, поэтому чужой филиал
// неотличим от несуществующего
func (s *Service) resolveBranch(ctx context.Context, actor domain.ActorContext, branchID int64) error {
	if !actor.CanAccessBranch(branchID) {
		return ErrAccessDenied
	}

	if _, err := s.branchRepo.GetByID(ctx, actor.BusinessID, branchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return ErrBranchNotFound
		}
		return fmt.Errorf("%w: resolveBranch - repository error: %v", ErrInternal, err)
	}
	return nil
}

// GetBranchSchedule получает расписание филиала на неделю
// Отсутствующий день означает, что филиал в этот день закрыт
func (s *Service) GetBranchSchedule(ctx context.Context, actor domain.ActorContext, branchID int64) (*models.BranchScheduleResponse, error) {
	s.logger.Info("GetBranchSchedule: branch=%d", branchID)

	if err := s.resolveBranch(ctx, actor, branchID); err != nil {
		s.logger.Warn("GetBranchSchedule: branch=%d is not available to business=%d: %v",
			branchID, actor.BusinessID, err)
		return nil, err
	}

	days, err := s.scheduleRepo.GetByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("GetBranchSchedule: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetBranchSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(branchID, days), nil
}

// UpsertDay создает или обновляет расписание одного дня недели
// На пару (филиал, день) существует не более одной строки
func (s *Service) UpsertDay(ctx context.Context, actor domain.ActorContext, branchID int64, req *models.UpsertDayRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("UpsertDay: branch=%d, day=%d", branchID, req.DayOfWeek)

	if err := s.resolveBranch(ctx, actor, branchID); err != nil {
		s.logger.Warn("UpsertDay: branch=%d is not available to business=%d: %v",
			branchID, actor.BusinessID, err)
		return nil, err
	}

	sched, err := req.ToDomain(branchID)
	if err != nil {
		s.logger.Warn("UpsertDay: invalid request for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := sched.Validate(); err != nil {
		s.logger.Warn("UpsertDay: validation failed for branch=%d, day=%d: %v", branchID, req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.scheduleRepo.Upsert(ctx, sched)
	if err != nil {
		s.logger.Error("UpsertDay: repository error for branch=%d, day=%d: %v", branchID, req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpsertDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertDay: saved schedule for branch=%d, day=%d (%s - %s)",
		branchID, saved.DayOfWeek, saved.OpenTime, saved.CloseTime)
	return models.FromDomainDay(saved), nil
}

// DeleteDay удаляет расписание дня, делая филиал закрытым в этот день
func (s *Service) DeleteDay(ctx context.Context, actor domain.ActorContext, branchID int64, dayOfWeek int) error {
	s.logger.Info("DeleteDay: branch=%d, day=%d", branchID, dayOfWeek)

	if err := s.resolveBranch(ctx, actor, branchID); err != nil {
		s.logger.Warn("DeleteDay: branch=%d is not available to business=%d: %v",
			branchID, actor.BusinessID, err)
		return err
	}

	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("%w: day of week must be in 0..6", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteDay(ctx, branchID, dayOfWeek); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteDay: repository error for branch=%d, day=%d: %v", branchID, dayOfWeek, err)
		return fmt.Errorf("%w: DeleteDay - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetOpenDays получает дни недели, в которые филиал работает
// Используется публичным чатом для выбора даты
func (s *Service) GetOpenDays(ctx context.Context, branchID int64) (*models.OpenDaysResponse, error) {
	s.logger.Info("GetOpenDays: branch=%d", branchID)

	days, err := s.scheduleRepo.GetOpenDays(ctx, branchID)
	if err != nil {
		s.logger.Error("GetOpenDays: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetOpenDays - repository error: %v", ErrInternal, err)
	}

	return &models.OpenDaysResponse{BranchID: branchID, Days: days}, nil
}
