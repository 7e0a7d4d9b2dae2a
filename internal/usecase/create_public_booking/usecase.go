package create_public_booking

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

// UseCase use case публичного бронирования из чата
type UseCase struct {
	apptRepo     AppointmentRepository
	branchRepo   BranchRepository
	scheduleRepo ScheduleRepository
	serviceRepo  ServiceRepository
	employeeRepo EmployeeRepository
	clients      ClientService
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
	clients ClientService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		branchRepo:   branchRepo,
		scheduleRepo: scheduleRepo,
		serviceRepo:  serviceRepo,
		employeeRepo: employeeRepo,
		clients:      clients,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case публичного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePublicBooking: business=%d, branch=%d, date=%s, start=%s",
		req.BusinessID, req.BranchID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePublicBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование филиала
	if _, err := uc.branchRepo.GetByID(ctx, req.BusinessID, req.BranchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("CreatePublicBooking: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CreatePublicBooking: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Получаем услуги и проверяем их доступность в филиале
	services, err := uc.serviceRepo.GetByIDs(ctx, req.BusinessID, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreatePublicBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if err := checkServices(services, req.ServiceIDs, req.BranchID); err != nil {
		uc.logger.Warn("CreatePublicBooking: service check failed: %v", err)
		return nil, err
	}

	// 4. Если выбран мастер, он должен работать в филиале и выполнять
	// ВСЕ выбранные услуги
	if err := uc.checkEmployee(ctx, req); err != nil {
		return nil, err
	}

	// 5. Агрегируем длительность и стоимость
	totals := domain.AggregateServices(services)

	// 6. Проверяем рабочие часы филиала
	startsAt, endsAt, err := uc.checkWorkingHours(ctx, req, totals.DurationMinutes)
	if err != nil {
		return nil, err
	}

	lineItems := buildLineItems(services)

	var appt *domain.Appointment
	var resolvedClient *domain.Client

	// 7. Проверка слота, поиск/создание клиента и вставка — в одной
	// сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Слот проверяется в масштабе филиала: занят, если его начало
		// попадает в интервал любой активной записи
		taken, err := uc.isSlotTaken(txCtx, req, startsAt, endsAt)
		if err != nil {
			// Fail closed: ошибка проверки блокирует бронирование
			return fmt.Errorf("%w: slot check failed: %v", ErrInternal, err)
		}
		if taken {
			return ErrSlotTaken
		}

		// Клиент ищется по паре (бизнес, телефон) и создается при отсутствии
		client, err := uc.clients.FindOrCreate(txCtx, req.BusinessID, &req.BranchID,
			req.ClientName, req.ClientPhone, req.Platform, req.ChatID)
		if err != nil {
			return fmt.Errorf("%w: find or create client failed: %v", ErrInternal, err)
		}
		resolvedClient = client

		created, err := uc.apptRepo.Create(txCtx, &domain.Appointment{
			BusinessID: req.BusinessID,
			BranchID:   req.BranchID,
			EmployeeID: req.EmployeeID,
			ClientID:   &client.ID,
			StartsAt:   startsAt,
			EndsAt:     endsAt,
			// Публичные бронирования ждут подтверждения сотрудником
			Status: domain.StatusPending,
		})
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
		if errors.Is(err, ErrSlotTaken) {
			uc.logger.Warn("CreatePublicBooking: slot %s is taken for branch=%d", req.StartTime, req.BranchID)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreatePublicBooking: transaction failed: %v", err)
		return nil, err
	}

	appt.Services = lineItems

	uc.logger.Info("CreatePublicBooking: created appointment id=%d for client id=%d (%s - %s)",
		appt.ID, resolvedClient.ID, appt.StartsAt.Format(time.RFC3339), appt.EndsAt.Format(time.RFC3339))

	return fromDomain(appt, resolvedClient.ID, totals), nil
}

// isSlotTaken проверяет занятость выбранного интервала
// Проверка идет в масштабе филиала; при выбранном мастере дополнительно
// проверяются его пересечения по полуоткрытым интервалам
func (uc *UseCase) isSlotTaken(ctx context.Context, req *Request, startsAt, endsAt time.Time) (bool, error) {
	appts, err := uc.apptRepo.GetWithFilter(ctx, domain.BranchAppointmentsFilter{
		BusinessID:      req.BusinessID,
		BranchID:        &req.BranchID,
		Date:            &req.Date,
		IncludeCanceled: false,
	})
	if err != nil {
		return false, err
	}

	startMin := req.StartTime.Minutes()
	for _, a := range appts {
		if !a.IsActive() {
			continue
		}
		aStart := a.StartsAt.Hour()*60 + a.StartsAt.Minute()
		aEnd := a.EndsAt.Hour()*60 + a.EndsAt.Minute()
		if startMin >= aStart && startMin < aEnd {
			return true, nil
		}
	}

	if req.EmployeeID != nil {
		count, err := uc.apptRepo.CountOverlapping(ctx, domain.OverlapFilter{
			BusinessID: req.BusinessID,
			EmployeeID: *req.EmployeeID,
			StartsAt:   startsAt,
			EndsAt:     endsAt,
		})
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}

	return false, nil
}

// checkEmployee проверяет мастера: филиал и набор выполняемых услуг
func (uc *UseCase) checkEmployee(ctx context.Context, req *Request) error {
	if req.EmployeeID == nil {
		return nil
	}

	emp, err := uc.employeeRepo.GetByID(ctx, req.BusinessID, *req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreatePublicBooking: employee id=%d not found", *req.EmployeeID)
			return ErrEmployeeNotFound
		}
		uc.logger.Error("CreatePublicBooking: failed to get employee id=%d: %v", *req.EmployeeID, err)
		return fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if emp.BranchID != req.BranchID {
		return ErrEmployeeBranchMismatch
	}

	if !emp.PerformsAll(req.ServiceIDs) {
		return ErrEmployeeCannotPerform
	}

	return nil
}

// checkWorkingHours проверяет попадание бронирования в рабочие часы
func (uc *UseCase) checkWorkingHours(ctx context.Context, req *Request, durationMinutes int) (time.Time, time.Time, error) {
	var zero time.Time

	sched, err := uc.scheduleRepo.GetByBranchAndDay(ctx, req.BranchID, domain.DayOfWeek(req.Date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("CreatePublicBooking: failed to get schedule for branch=%d: %v", req.BranchID, err)
		return zero, zero, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	validation := domain.ValidateWithinHours(sched, req.StartTime, durationMinutes)
	if !validation.Valid {
		uc.logger.Warn("CreatePublicBooking: outside working hours for branch=%d: %s", req.BranchID, validation.Message)
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
