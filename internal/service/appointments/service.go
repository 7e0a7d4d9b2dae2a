package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	apptRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/appointment"
	"github.com/kyros-barber/KB-BookingService/internal/service/appointments/models"
)

// Service сервис чтения записей и управления их статусами
type Service struct {
	apptRepo     AppointmentRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:     apptRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает запись по ID
// Актор с ролью филиала видит только записи своего филиала
func (s *Service) GetByID(ctx context.Context, actor domain.ActorContext, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for business=%d", id, actor.BusinessID)

	appt, err := s.apptRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccessBranch(appt.BranchID) {
		s.logger.Warn("GetByID: access denied to appointment id=%d for branch actor", id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetBranchAppointments получает записи филиала с фильтрацией
// Поддерживает фильтры по дате, периоду, сотруднику и статусу
func (s *Service) GetBranchAppointments(ctx context.Context, actor domain.ActorContext, req *models.GetBranchAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBranchAppointments: business=%d, branch=%d", actor.BusinessID, req.BranchID)

	if !actor.CanAccessBranch(req.BranchID) {
		s.logger.Warn("GetBranchAppointments: access denied to branch=%d", req.BranchID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter(actor.BusinessID)
	if err != nil {
		s.logger.Warn("GetBranchAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appts, err := s.apptRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchAppointments: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchAppointments: fetched %d appointments for branch=%d", len(appts), req.BranchID)
	return models.FromDomainAppointmentList(appts), nil
}

// UpdateStatus переводит запись в новый статус
// Переход в completed фиксирует итоговую сумму по позициям и момент завершения
func (s *Service) UpdateStatus(ctx context.Context, actor domain.ActorContext, id int64, rawStatus string) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d, status=%s", id, rawStatus)

	// 1. Валидация целевого статуса
	next, err := models.ToDomainStatus(rawStatus)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", rawStatus, id)
		return nil, ErrInvalidStatus
	}

	// 2. Читаем запись, валидируем переход и пишем атомарно,
	// чтобы конкурирующие смены статуса не затирали друг друга
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.apptRepo.GetByID(txCtx, actor.BusinessID, id)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !actor.CanAccessBranch(appt.BranchID) {
			return ErrAccessDenied
		}

		if !appt.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: transition %s -> %s rejected for appointment id=%d",
				appt.Status, next, id)
			return ErrInvalidTransition
		}

		// Завершение фиксирует выручку: сумма позиций на момент бронирования
		if next == domain.StatusCompleted {
			totalPaid := appt.ServicesTotal()
			completedAt := s.timeProvider.Now()
			if err := s.apptRepo.Complete(txCtx, actor.BusinessID, id, totalPaid, completedAt); err != nil {
				return fmt.Errorf("%w: UpdateStatus - complete error: %v", ErrInternal, err)
			}
			s.logger.Info("UpdateStatus: appointment id=%d completed, total_paid=%.2f", id, totalPaid)
			return nil
		}

		if err := s.apptRepo.UpdateStatus(txCtx, actor.BusinessID, id, next); err != nil {
			return fmt.Errorf("%w: UpdateStatus - update error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		s.logger.Error("UpdateStatus: transaction failed for appointment id=%d: %v", id, err)
		return nil, err
	}

	// 3. Перечитываем итоговое состояние для ответа
	appt, err := s.apptRepo.GetByID(ctx, actor.BusinessID, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-read appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - re-read error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, appt.Status)
	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет запись, освобождая её временной интервал
func (s *Service) Cancel(ctx context.Context, actor domain.ActorContext, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment id=%d", id)

	resp, err := s.UpdateStatus(ctx, actor, id, string(domain.StatusCanceled))
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, ErrCannotCancel
		}
		return nil, err
	}
	return resp, nil
}
