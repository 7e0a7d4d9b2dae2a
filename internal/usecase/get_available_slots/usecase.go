package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	scheduleRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/schedule"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	apptRepo     AppointmentRepository
	branchRepo   BranchRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	branchRepo BranchRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		branchRepo:   branchRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, branch=%d, date=%s",
		req.BusinessID, req.BranchID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Филиал должен принадлежать бизнесу запроса
	if _, err := uc.branchRepo.GetByID(ctx, req.BusinessID, req.BranchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailableSlots: branch=%d not found for business=%d", req.BranchID, req.BusinessID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	interval := req.IntervalMinutes
	if interval == 0 {
		interval = domain.DefaultSlotIntervalMinutes
	}

	// 3. Получаем расписание филиала на день недели
	// Отсутствующая строка означает, что филиал закрыт: пустой список слотов
	dayOfWeek := domain.DayOfWeek(req.Date)
	sched, err := uc.scheduleRepo.GetByBranchAndDay(ctx, req.BranchID, dayOfWeek)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailableSlots: branch=%d is closed on %s",
				req.BranchID, req.Date.Format(domain.DateFormat))
			return uc.emptyResponse(req, interval), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Генерируем сетку слотов: открытие -> закрытие с шагом interval,
	// исключая окно перерыва
	grid := generateGrid(sched, interval)

	// 5. Получаем активные записи на эту дату
	// Если выбран сотрудник, проверка занятости сужается до его записей;
	// без сотрудника слот считается занятым любой записью филиала
	filter := domain.BranchAppointmentsFilter{
		BusinessID:      req.BusinessID,
		BranchID:        &req.BranchID,
		EmployeeID:      req.EmployeeID,
		Date:            &req.Date,
		IncludeCanceled: false,
	}

	appts, err := uc.apptRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Оставляем слоты, начало которых не попадает ни в одну запись
	slots := availableSlots(grid, appts, interval)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for branch=%d, date=%s",
		len(slots), len(grid), req.BranchID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		BranchID:        req.BranchID,
		EmployeeID:      req.EmployeeID,
		IntervalMinutes: interval,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, interval int) *Response {
	return &Response{
		Date:            req.Date,
		BranchID:        req.BranchID,
		EmployeeID:      req.EmployeeID,
		IntervalMinutes: interval,
		Slots:           []Slot{},
	}
}
