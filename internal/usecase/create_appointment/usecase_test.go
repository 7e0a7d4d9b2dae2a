package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	employeeRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/employee"
	scheduleRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/schedule"
	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

type fakeApptRepo struct {
	overlapCount   int
	overlapErr     error
	createErr      error
	createdAppt    *domain.Appointment
	createdItems   []domain.AppointmentService
	overlapFilters []domain.OverlapFilter
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *appt
	created.ID = 100
	f.createdAppt = &created
	return &created, nil
}

func (f *fakeApptRepo) CreateServices(_ context.Context, _ int64, items []domain.AppointmentService) error {
	f.createdItems = items
	return nil
}

func (f *fakeApptRepo) CountOverlapping(_ context.Context, filter domain.OverlapFilter) (int, error) {
	f.overlapFilters = append(f.overlapFilters, filter)
	return f.overlapCount, f.overlapErr
}

type fakeScheduleRepo struct {
	sched *domain.DaySchedule
	err   error
}

func (f *fakeScheduleRepo) GetByBranchAndDay(_ context.Context, _ int64, _ int) (*domain.DaySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sched, nil
}

type fakeServiceRepo struct {
	services []*domain.Service
	err      error
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, _ int64, _ []int64) ([]*domain.Service, error) {
	return f.services, f.err
}

type fakeEmployeeRepo struct {
	emp *domain.Employee
	err error
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _, _ int64) (*domain.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.emp, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func owner() domain.ActorContext {
	return domain.ActorContext{BusinessID: 1, Role: domain.RoleOwner}
}

func workingDay() *domain.DaySchedule {
	return &domain.DaySchedule{
		BranchID:  10,
		OpenTime:  types.MustTimeString("09:00"),
		CloseTime: types.MustTimeString("20:00"),
	}
}

func validRequest() *Request {
	return &Request{
		BranchID:   10,
		Date:       time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime:  types.MustTimeString("10:00"),
		ServiceIDs: []int64{1, 2},
		EmployeeID: ptr.Ptr(int64(7)),
	}
}

func testServices() []*domain.Service {
	return []*domain.Service{
		{ID: 1, Name: "Стрижка", BasePrice: 1500, DurationMinutes: 45},
		{ID: 2, Name: "Бритье", BasePrice: 700, DurationMinutes: 30},
	}
}

type fakeBranchRepo struct {
	err error
}

func (f *fakeBranchRepo) GetByID(_ context.Context, businessID, id int64) (*domain.Branch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Branch{ID: id, BusinessID: businessID}, nil
}

func testEmployee() *domain.Employee {
	return &domain.Employee{ID: 7, BusinessID: 1, BranchID: 10, ServiceIDs: []int64{1, 2, 3}}
}

func newTestUseCase(appt *fakeApptRepo, sched *fakeScheduleRepo, svc *fakeServiceRepo, emp *fakeEmployeeRepo) *UseCase {
	return NewUseCase(appt, &fakeBranchRepo{}, sched, svc, emp, fakeTxManager{}, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	apptRepo := &fakeApptRepo{}
	uc := newTestUseCase(
		apptRepo,
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{services: testServices()},
		&fakeEmployeeRepo{emp: testEmployee()},
	)

	resp, err := uc.Execute(context.Background(), owner(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 75, resp.DurationMinutes)
	assert.InDelta(t, 2200.0, resp.TotalPrice, 0.001)
	assert.Equal(t, "10:00", resp.StartsAt.Format("15:04"))
	assert.Equal(t, "11:15", resp.EndsAt.Format("15:04"))

	// цены фиксируются на момент бронирования
	require.Len(t, apptRepo.createdItems, 2)
	assert.InDelta(t, 1500.0, apptRepo.createdItems[0].PriceAtBooking, 0.001)

	// проверка пересечений выполняется для выбранного мастера
	require.Len(t, apptRepo.overlapFilters, 1)
	assert.Equal(t, int64(7), apptRepo.overlapFilters[0].EmployeeID)
}

func TestExecute_NoEmployeeSkipsOverlapCheck(t *testing.T) {
	apptRepo := &fakeApptRepo{}
	uc := newTestUseCase(
		apptRepo,
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{services: testServices()},
		&fakeEmployeeRepo{},
	)

	req := validRequest()
	req.EmployeeID = nil

	resp, err := uc.Execute(context.Background(), owner(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.EmployeeID)
	assert.Empty(t, apptRepo.overlapFilters)
}

func TestExecute_EmptyServicesUseDefaultDuration(t *testing.T) {
	uc := newTestUseCase(
		&fakeApptRepo{},
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{},
		&fakeEmployeeRepo{emp: testEmployee()},
	)

	req := validRequest()
	req.ServiceIDs = nil

	resp, err := uc.Execute(context.Background(), owner(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.DurationMinutes)
	assert.Zero(t, resp.TotalPrice)
}

func TestExecute_TimeConflict(t *testing.T) {
	uc := newTestUseCase(
		&fakeApptRepo{overlapCount: 1},
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{services: testServices()},
		&fakeEmployeeRepo{emp: testEmployee()},
	)

	_, err := uc.Execute(context.Background(), owner(), validRequest())
	require.ErrorIs(t, err, ErrTimeConflict)
}

func TestExecute_OverlapCheckFailsClosed(t *testing.T) {
	uc := newTestUseCase(
		&fakeApptRepo{overlapErr: errors.New("db down")},
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{services: testServices()},
		&fakeEmployeeRepo{emp: testEmployee()},
	)

	_, err := uc.Execute(context.Background(), owner(), validRequest())
	require.ErrorIs(t, err, ErrInternal)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	t.Run("closed day", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeApptRepo{},
			&fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound},
			&fakeServiceRepo{services: testServices()},
			&fakeEmployeeRepo{emp: testEmployee()},
		)
		_, err := uc.Execute(context.Background(), owner(), validRequest())
		require.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("ends after close", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeApptRepo{},
			&fakeScheduleRepo{sched: workingDay()},
			&fakeServiceRepo{services: testServices()},
			&fakeEmployeeRepo{emp: testEmployee()},
		)
		req := validRequest()
		req.StartTime = types.MustTimeString("19:30")
		_, err := uc.Execute(context.Background(), owner(), req)
		require.ErrorIs(t, err, ErrOutsideWorkingHours)
		assert.Contains(t, err.Error(), "20:00")
	})
}

func TestExecute_EmployeeChecks(t *testing.T) {
	t.Run("employee not found", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeApptRepo{},
			&fakeScheduleRepo{sched: workingDay()},
			&fakeServiceRepo{services: testServices()},
			&fakeEmployeeRepo{err: employeeRepo.ErrEmployeeNotFound},
		)
		_, err := uc.Execute(context.Background(), owner(), validRequest())
		require.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("employee works at another branch", func(t *testing.T) {
		emp := testEmployee()
		emp.BranchID = 99
		uc := newTestUseCase(
			&fakeApptRepo{},
			&fakeScheduleRepo{sched: workingDay()},
			&fakeServiceRepo{services: testServices()},
			&fakeEmployeeRepo{emp: emp},
		)
		_, err := uc.Execute(context.Background(), owner(), validRequest())
		require.ErrorIs(t, err, ErrEmployeeBranchMismatch)
	})

	t.Run("employee does not perform a selected service", func(t *testing.T) {
		emp := testEmployee()
		emp.ServiceIDs = []int64{1}
		uc := newTestUseCase(
			&fakeApptRepo{},
			&fakeScheduleRepo{sched: workingDay()},
			&fakeServiceRepo{services: testServices()},
			&fakeEmployeeRepo{emp: emp},
		)
		_, err := uc.Execute(context.Background(), owner(), validRequest())
		require.ErrorIs(t, err, ErrEmployeeCannotPerform)
	})
}

func TestExecute_ServiceChecks(t *testing.T) {
	t.Run("service not found", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeApptRepo{},
			&fakeScheduleRepo{sched: workingDay()},
			&fakeServiceRepo{services: testServices()[:1]},
			&fakeEmployeeRepo{emp: testEmployee()},
		)
		_, err := uc.Execute(context.Background(), owner(), validRequest())
		require.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("service bound to another branch", func(t *testing.T) {
		services := testServices()
		services[1].BranchID = ptr.Ptr(int64(99))
		uc := newTestUseCase(
			&fakeApptRepo{},
			&fakeScheduleRepo{sched: workingDay()},
			&fakeServiceRepo{services: services},
			&fakeEmployeeRepo{emp: testEmployee()},
		)
		_, err := uc.Execute(context.Background(), owner(), validRequest())
		require.ErrorIs(t, err, ErrServiceNotAvailableAtBranch)
	})
}

func TestExecute_AccessControl(t *testing.T) {
	branchActor := domain.ActorContext{
		BusinessID: 1,
		Role:       domain.RoleBranch,
		BranchID:   ptr.Ptr(int64(5)),
	}

	uc := newTestUseCase(
		&fakeApptRepo{},
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{services: testServices()},
		&fakeEmployeeRepo{emp: testEmployee()},
	)

	_, err := uc.Execute(context.Background(), branchActor, validRequest())
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_ForeignBranchRejected(t *testing.T) {
	// Владелец другого бизнеса не может создать запись в чужом филиале,
	// даже без выбранного мастера
	apptRepo := &fakeApptRepo{}
	uc := NewUseCase(
		apptRepo,
		&fakeBranchRepo{err: branchRepo.ErrBranchNotFound},
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{services: testServices()},
		&fakeEmployeeRepo{emp: testEmployee()},
		fakeTxManager{},
		nopLogger{},
	)

	req := validRequest()
	req.EmployeeID = nil
	_, err := uc.Execute(context.Background(), owner(), req)
	require.ErrorIs(t, err, ErrBranchNotFound)
	assert.Nil(t, apptRepo.createdAppt)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(
		&fakeApptRepo{},
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{services: testServices()},
		&fakeEmployeeRepo{emp: testEmployee()},
	)

	mutate := func(fn func(r *Request)) *Request {
		r := validRequest()
		fn(r)
		return r
	}

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing branch", mutate(func(r *Request) { r.BranchID = 0 })},
		{"zero date", mutate(func(r *Request) { r.Date = time.Time{} })},
		{"missing start time", mutate(func(r *Request) { r.StartTime = "" })},
		{"client specified twice", mutate(func(r *Request) {
			r.ClientID = ptr.Ptr(int64(1))
			r.ManualClientName = ptr.Ptr("Гость")
		})},
		{"bad initial status", mutate(func(r *Request) { r.Status = ptr.Ptr("completed") })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), owner(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DefaultStatusIsConfirmed(t *testing.T) {
	apptRepo := &fakeApptRepo{}
	uc := newTestUseCase(
		apptRepo,
		&fakeScheduleRepo{sched: workingDay()},
		&fakeServiceRepo{services: testServices()},
		&fakeEmployeeRepo{emp: testEmployee()},
	)

	req := validRequest()
	req.Status = ptr.Ptr("pending")

	resp, err := uc.Execute(context.Background(), owner(), req)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)

	resp, err = uc.Execute(context.Background(), owner(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}
