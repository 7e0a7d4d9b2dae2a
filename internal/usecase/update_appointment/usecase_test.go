package update_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	apptRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/appointment"
	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

type fakeApptRepo struct {
	existing   *domain.Appointment
	reread     *domain.Appointment
	getErr     error
	overlapCnt int
	overlapErr error

	getCalls       int
	updated        *domain.Appointment
	deletedItems   bool
	createdItems   []domain.AppointmentService
	overlapFilters []domain.OverlapFilter
}

// GetByID отдает existing при первом чтении и reread при повторных,
// имитируя конкурентное изменение записи между проверкой и транзакцией
func (f *fakeApptRepo) GetByID(_ context.Context, _, _ int64) (*domain.Appointment, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getCalls > 1 && f.reread != nil {
		return f.reread, nil
	}
	return f.existing, nil
}

func (f *fakeApptRepo) Update(_ context.Context, appt *domain.Appointment) error {
	f.updated = appt
	return nil
}

func (f *fakeApptRepo) DeleteServices(_ context.Context, _ int64) error {
	f.deletedItems = true
	return nil
}

func (f *fakeApptRepo) CreateServices(_ context.Context, _ int64, items []domain.AppointmentService) error {
	f.createdItems = items
	return nil
}

func (f *fakeApptRepo) CountOverlapping(_ context.Context, filter domain.OverlapFilter) (int, error) {
	f.overlapFilters = append(f.overlapFilters, filter)
	return f.overlapCnt, f.overlapErr
}

type fakeScheduleRepo struct {
	sched *domain.DaySchedule
}

func (f *fakeScheduleRepo) GetByBranchAndDay(_ context.Context, _ int64, _ int) (*domain.DaySchedule, error) {
	return f.sched, nil
}

type fakeServiceRepo struct {
	services []*domain.Service
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, _ int64, _ []int64) ([]*domain.Service, error) {
	return f.services, nil
}

type fakeEmployeeRepo struct {
	emp *domain.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _, _ int64) (*domain.Employee, error) {
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

func existingAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:       5,
		BranchID: 10,
		Status:   status,
		StartsAt: time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 8, 10, 30, 0, 0, time.UTC),
	}
}

func validRequest() *Request {
	return &Request{
		AppointmentID: 5,
		Date:          time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
		StartTime:     types.MustTimeString("12:00"),
		ServiceIDs:    []int64{1},
		EmployeeID:    ptr.Ptr(int64(7)),
	}
}

func newTestUseCase(repo *fakeApptRepo) *UseCase {
	return NewUseCase(
		repo,
		&fakeScheduleRepo{sched: &domain.DaySchedule{
			BranchID:  10,
			OpenTime:  types.MustTimeString("09:00"),
			CloseTime: types.MustTimeString("20:00"),
		}},
		&fakeServiceRepo{services: []*domain.Service{
			{ID: 1, Name: "Стрижка", BasePrice: 1500, DurationMinutes: 45},
		}},
		&fakeEmployeeRepo{emp: &domain.Employee{ID: 7, BusinessID: 1, BranchID: 10, ServiceIDs: []int64{1}}},
		fakeTxManager{},
		nopLogger{},
	)
}

func TestExecute_ReplacesTimeAndLineItems(t *testing.T) {
	repo := &fakeApptRepo{existing: existingAppointment(domain.StatusConfirmed)}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), owner(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "12:00", resp.StartsAt.Format("15:04"))
	assert.Equal(t, "12:45", resp.EndsAt.Format("15:04"))
	assert.Equal(t, 45, resp.DurationMinutes)

	require.NotNil(t, repo.updated)
	assert.True(t, repo.deletedItems)
	require.Len(t, repo.createdItems, 1)
	assert.InDelta(t, 1500.0, repo.createdItems[0].PriceAtBooking, 0.001)

	// статус при редактировании не меняется
	assert.Equal(t, "confirmed", resp.Status)
}

func TestExecute_OverlapExcludesSelf(t *testing.T) {
	repo := &fakeApptRepo{existing: existingAppointment(domain.StatusPending)}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), owner(), validRequest())
	require.NoError(t, err)

	require.Len(t, repo.overlapFilters, 1)
	require.NotNil(t, repo.overlapFilters[0].ExcludeAppointmentID)
	assert.Equal(t, int64(5), *repo.overlapFilters[0].ExcludeAppointmentID)
}

func TestExecute_TerminalStatusesCannotBeUpdated(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCanceled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeApptRepo{existing: existingAppointment(status)}
			uc := newTestUseCase(repo)

			_, err := uc.Execute(context.Background(), owner(), validRequest())
			require.ErrorIs(t, err, ErrCannotUpdate)
			assert.Nil(t, repo.updated)
		})
	}
}

func TestExecute_StatusBecameTerminalBeforeWrite(t *testing.T) {
	// Между первым чтением и транзакцией запись завершили:
	// повторная проверка статуса внутри транзакции отклоняет изменение
	repo := &fakeApptRepo{
		existing: existingAppointment(domain.StatusConfirmed),
		reread:   existingAppointment(domain.StatusCompleted),
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), owner(), validRequest())
	require.ErrorIs(t, err, ErrCannotUpdate)
	assert.Nil(t, repo.updated)
	assert.False(t, repo.deletedItems)
	assert.Equal(t, 2, repo.getCalls)
}

func TestExecute_Conflict(t *testing.T) {
	repo := &fakeApptRepo{existing: existingAppointment(domain.StatusConfirmed), overlapCnt: 1}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), owner(), validRequest())
	require.ErrorIs(t, err, ErrTimeConflict)
	assert.Nil(t, repo.updated)
}

func TestExecute_BranchActorConfinedToOwnBranch(t *testing.T) {
	actor := domain.ActorContext{BusinessID: 1, Role: domain.RoleBranch, BranchID: ptr.Ptr(int64(99))}
	repo := &fakeApptRepo{existing: existingAppointment(domain.StatusConfirmed)}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), actor, validRequest())
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NotFoundAndInternal(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := &fakeApptRepo{getErr: apptRepo.ErrAppointmentNotFound}
		uc := newTestUseCase(repo)
		_, err := uc.Execute(context.Background(), owner(), validRequest())
		require.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("overlap error fails closed", func(t *testing.T) {
		repo := &fakeApptRepo{existing: existingAppointment(domain.StatusConfirmed), overlapErr: errors.New("db down")}
		uc := newTestUseCase(repo)
		_, err := uc.Execute(context.Background(), owner(), validRequest())
		require.ErrorIs(t, err, ErrInternal)
	})
}
