package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	apptRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/appointment"
	employeeRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/employee"
	scheduleRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/schedule"
)

// UseCase use case изменения существующей записи
type UseCase struct {
	apptRepo     AppointmentRepository
	scheduleRepo ScheduleRepository
	serviceRepo  ServiceRepository
	employeeRepo EmployeeRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		scheduleRepo: scheduleRepo,
		serviceRepo:  serviceRepo,
		employeeRepo: employeeRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case изменения записи
func (uc *UseCase) Execute(ctx context.Context, actor domain.ActorContext, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: business=%d, appointment=%d, date=%s, start=%s",
		actor.BusinessID, req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущую запись и проверяем, что её еще можно менять
	existing, err := uc.apptRepo.GetByID(ctx, actor.BusinessID, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !actor.CanAccessBranch(existing.BranchID) {
		uc.logger.Warn("UpdateAppointment: access denied to appointment id=%d", req.AppointmentID)
		return nil, ErrAccessDenied
	}

	if !existing.CanBeUpdated() {
		uc.logger.Warn("UpdateAppointment: appointment id=%d in status %s cannot be updated",
			existing.ID, existing.Status)
		return nil, ErrCannotUpdate
	}

	branchID := existing.BranchID

	// 3. Получаем новый набор услуг и проверяем его
	var services []*domain.Service
	if len(req.ServiceIDs) > 0 {
		services, err = uc.serviceRepo.GetByIDs(ctx, actor.BusinessID, req.ServiceIDs)
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to get services: %v", err)
			return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
		}
		if err := checkServices(services, req.ServiceIDs, branchID); err != nil {
			uc.logger.Warn("UpdateAppointment: service check failed: %v", err)
			return nil, err
		}
	}

	// 4. Проверяем нового мастера
	if err := uc.checkEmployee(ctx, actor.BusinessID, branchID, req); err != nil {
		return nil, err
	}

	// 5. Агрегируем длительность и стоимость нового набора
	totals := domain.AggregateServices(services)

	// 6. Проверяем рабочие часы
	startsAt, endsAt, err := uc.checkWorkingHours(ctx, branchID, req, totals.DurationMinutes)
	if err != nil {
		return nil, err
	}

	lineItems := buildLineItems(services)

	updated := *existing
	updated.EmployeeID = req.EmployeeID
	updated.ClientID = req.ClientID
	updated.ManualClientName = req.ManualClientName
	updated.StartsAt = startsAt
	updated.EndsAt = endsAt
	updated.Notes = req.Notes

	// 7. Проверка пересечений (исключая саму запись), обновление и замена
	// позиций в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем статус внутри транзакции: между проверкой выше и
		// записью статус мог стать терминальным
		current, err := uc.apptRepo.GetByID(txCtx, actor.BusinessID, req.AppointmentID)
		if err != nil {
			return fmt.Errorf("%w: failed to re-read appointment: %v", ErrInternal, err)
		}
		if !current.CanBeUpdated() {
			return ErrCannotUpdate
		}

		if req.EmployeeID != nil {
			count, err := uc.apptRepo.CountOverlapping(txCtx, domain.OverlapFilter{
				BusinessID:           actor.BusinessID,
				EmployeeID:           *req.EmployeeID,
				StartsAt:             startsAt,
				EndsAt:               endsAt,
				ExcludeAppointmentID: &req.AppointmentID,
			})
			if err != nil {
				// Fail closed: ошибка проверки блокирует изменение
				return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
			}
			if count > 0 {
				return ErrTimeConflict
			}
		}

		if err := uc.apptRepo.Update(txCtx, &updated); err != nil {
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		// Замена позиций: удалить старые, вставить новые
		if err := uc.apptRepo.DeleteServices(txCtx, updated.ID); err != nil {
			return fmt.Errorf("%w: failed to delete old line items: %v", ErrInternal, err)
		}
		if err := uc.apptRepo.CreateServices(txCtx, updated.ID, lineItems); err != nil {
			return fmt.Errorf("%w: failed to create line items: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimeConflict) {
			uc.logger.Warn("UpdateAppointment: time conflict for employee=%v at %s", req.EmployeeID, req.StartTime)
			return nil, ErrTimeConflict
		}
		if errors.Is(err, ErrCannotUpdate) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d reached a terminal status during update", req.AppointmentID)
			return nil, ErrCannotUpdate
		}
		uc.logger.Error("UpdateAppointment: transaction failed for appointment id=%d: %v", req.AppointmentID, err)
		return nil, err
	}

	updated.Services = lineItems

	uc.logger.Info("UpdateAppointment: updated appointment id=%d (%s - %s)",
		updated.ID, updated.StartsAt.Format(time.RFC3339), updated.EndsAt.Format(time.RFC3339))

	return fromDomain(&updated, totals), nil
}

// checkEmployee проверяет мастера: филиал и набор выполняемых услуг
func (uc *UseCase) checkEmployee(ctx context.Context, businessID, branchID int64, req *Request) error {
	if req.EmployeeID == nil {
		return nil
	}

	emp, err := uc.employeeRepo.GetByID(ctx, businessID, *req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("UpdateAppointment: employee id=%d not found", *req.EmployeeID)
			return ErrEmployeeNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get employee id=%d: %v", *req.EmployeeID, err)
		return fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if emp.BranchID != branchID {
		return ErrEmployeeBranchMismatch
	}

	if !emp.PerformsAll(req.ServiceIDs) {
		return ErrEmployeeCannotPerform
	}

	return nil
}

// checkWorkingHours проверяет попадание записи в рабочие часы
func (uc *UseCase) checkWorkingHours(ctx context.Context, branchID int64, req *Request, durationMinutes int) (time.Time, time.Time, error) {
	var zero time.Time

	sched, err := uc.scheduleRepo.GetByBranchAndDay(ctx, branchID, domain.DayOfWeek(req.Date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("UpdateAppointment: failed to get schedule for branch=%d: %v", branchID, err)
		return zero, zero, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	validation := domain.ValidateWithinHours(sched, req.StartTime, durationMinutes)
	if !validation.Valid {
		uc.logger.Warn("UpdateAppointment: outside working hours for branch=%d: %s", branchID, validation.Message)
		return zero, zero, fmt.Errorf("%w: %s", ErrOutsideWorkingHours, validation.Message)
	}

	startsAt := atTime(req.Date, req.StartTime.Minutes())
	endsAt := startsAt.Add(time.Duration(durationMinutes) * time.Minute)
	return startsAt, endsAt, nil
}

// buildLineItems фиксирует текущие базовые цены как цены на момент бронирования
func buildLineItems(services []*domain.Service) []domain.AppointmentService {
	items := make([]domain.AppointmentService, 0, len(services))
	for _, svc := range services {
		items = append(items, domain.AppointmentService{
			ServiceID:      svc.ID,
			ServiceName:    svc.Name,
			PriceAtBooking: svc.BasePrice,
		})
	}
	return items
}

// atTime собирает момент времени из даты и минут с полуночи
func atTime(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}
