package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	employeeRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/employee"
	scheduleRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/schedule"
)

// UseCase use case создания записи из диалога сотрудника
type UseCase struct {
	apptRepo     AppointmentRepository
	branchRepo   BranchRepository
	scheduleRepo ScheduleRepository
	serviceRepo  ServiceRepository
	employeeRepo EmployeeRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	branchRepo BranchRepository,
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		branchRepo:   branchRepo,
		scheduleRepo: scheduleRepo,
		serviceRepo:  serviceRepo,
		employeeRepo: employeeRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, actor domain.ActorContext, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%d, branch=%d, date=%s, start=%s",
		actor.BusinessID, req.BranchID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	if !actor.CanAccessBranch(req.BranchID) {
		uc.logger.Warn("CreateAppointment: access denied to branch=%d", req.BranchID)
		return nil, ErrAccessDenied
	}

	// 2. Филиал должен принадлежать бизнесу актора
	// Без этой проверки запись без мастера можно создать в чужом филиале
	if _, err := uc.branchRepo.GetByID(ctx, actor.BusinessID, req.BranchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("CreateAppointment: branch=%d not found for business=%d", req.BranchID, actor.BusinessID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	status, err := resolveStatus(req.Status)
	if err != nil {
		return nil, err
	}

	// 3. Получаем выбранные услуги и проверяем их доступность в филиале
	services, err := uc.loadServices(ctx, actor.BusinessID, req)
	if err != nil {
		return nil, err
	}

	// 4. Если выбран мастер, он должен работать в филиале и выполнять
	// ВСЕ выбранные услуги
	if err := uc.checkEmployee(ctx, actor.BusinessID, req); err != nil {
		return nil, err
	}

	// 5. Агрегируем длительность и стоимость
	// Пустой набор услуг дает длительность по умолчанию
	totals := domain.AggregateServices(services)

	// 6. Проверяем рабочие часы филиала
	startsAt, endsAt, err := uc.checkWorkingHours(ctx, req, totals.DurationMinutes)
	if err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		BusinessID:       actor.BusinessID,
		BranchID:         req.BranchID,
		EmployeeID:       req.EmployeeID,
		ClientID:         req.ClientID,
		StartsAt:         startsAt,
		EndsAt:           endsAt,
		Status:           status,
		ManualClientName: req.ManualClientName,
		Notes:            req.Notes,
	}

	lineItems := buildLineItems(services)

	// 7. Проверка пересечений и вставка в одной сериализуемой транзакции:
	// между проверкой и вставкой не должна успеть появиться другая запись
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.EmployeeID != nil {
			count, err := uc.apptRepo.CountOverlapping(txCtx, domain.OverlapFilter{
				BusinessID: actor.BusinessID,
				EmployeeID: *req.EmployeeID,
				StartsAt:   startsAt,
				EndsAt:     endsAt,
			})
			if err != nil {
				// Fail closed: ошибка проверки блокирует бронирование
				return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
			}
			if count > 0 {
				return ErrTimeConflict
			}
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		appt = created

		if err := uc.apptRepo.CreateServices(txCtx, appt.ID, lineItems); err != nil {
			return fmt.Errorf("%w: failed to create line items: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimeConflict) {
			uc.logger.Warn("CreateAppointment: time conflict for employee=%v at %s", req.EmployeeID, req.StartTime)
			return nil, ErrTimeConflict
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, err
	}

	appt.Services = lineItems

	uc.logger.Info("CreateAppointment: created appointment id=%d for branch=%d (%s - %s)",
		appt.ID, req.BranchID, appt.StartsAt.Format(time.RFC3339), appt.EndsAt.Format(time.RFC3339))

	return fromDomain(appt, totals), nil
}

// loadServices получает выбранные услуги и проверяет их принадлежность филиалу
func (uc *UseCase) loadServices(ctx context.Context, businessID int64, req *Request) ([]*domain.Service, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, nil
	}

	services, err := uc.serviceRepo.GetByIDs(ctx, businessID, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	if err := checkServices(services, req.ServiceIDs, req.BranchID); err != nil {
		uc.logger.Warn("CreateAppointment: service check failed: %v", err)
		return nil, err
	}

	return services, nil
}

// checkEmployee проверяет мастера: филиал и набор выполняемых услуг
func (uc *UseCase) checkEmployee(ctx context.Context, businessID int64, req *Request) error {
	if req.EmployeeID == nil {
		return nil
	}

	emp, err := uc.employeeRepo.GetByID(ctx, businessID, *req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", *req.EmployeeID)
			return ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", *req.EmployeeID, err)
		return fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if emp.BranchID != req.BranchID {
		uc.logger.Warn("CreateAppointment: employee id=%d works at branch=%d, not branch=%d",
			emp.ID, emp.BranchID, req.BranchID)
		return ErrEmployeeBranchMismatch
	}

	if !emp.PerformsAll(req.ServiceIDs) {
		uc.logger.Warn("CreateAppointment: employee id=%d does not perform all of %v", emp.ID, req.ServiceIDs)
		return ErrEmployeeCannotPerform
	}

	return nil
}

// checkWorkingHours проверяет попадание записи в рабочие часы
// и возвращает абсолютные границы интервала
func (uc *UseCase) checkWorkingHours(ctx context.Context, req *Request, durationMinutes int) (time.Time, time.Time, error) {
	var zero time.Time

	sched, err := uc.scheduleRepo.GetByBranchAndDay(ctx, req.BranchID, domain.DayOfWeek(req.Date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("CreateAppointment: failed to get schedule for branch=%d: %v", req.BranchID, err)
		return zero, zero, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// Отсутствующее расписание означает закрытый день; валидатор вернет
	// сообщение об этом
	validation := domain.ValidateWithinHours(sched, req.StartTime, durationMinutes)
	if !validation.Valid {
		uc.logger.Warn("CreateAppointment: outside working hours for branch=%d: %s", req.BranchID, validation.Message)
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
