package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	scheduleRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/schedule"
	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

type fakeApptRepo struct {
	appts      []*domain.Appointment
	err        error
	lastFilter domain.BranchAppointmentsFilter
}

func (f *fakeApptRepo) GetWithFilter(_ context.Context, filter domain.BranchAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.appts, f.err
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate(t *testing.T) time.Time {
	t.Helper()
	// 2026-09-08 is a Tuesday
	return time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
}

func apptAt(start, end string, date time.Time, status domain.AppointmentStatus) *domain.Appointment {
	s := types.MustTimeString(start).Minutes()
	e := types.MustTimeString(end).Minutes()
	return &domain.Appointment{
		StartsAt: date.Add(time.Duration(s) * time.Minute),
		EndsAt:   date.Add(time.Duration(e) * time.Minute),
		Status:   status,
	}
}

func morningSchedule() *domain.DaySchedule {
	return &domain.DaySchedule{
		BranchID:  10,
		DayOfWeek: 2,
		OpenTime:  types.MustTimeString("09:00"),
		CloseTime: types.MustTimeString("11:00"),
	}
}

func TestExecute_OpenDayNoAppointments(t *testing.T) {
	uc := NewUseCase(&fakeApptRepo{}, &fakeBranchRepo{}, &fakeScheduleRepo{sched: morningSchedule()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		BranchID:   10,
		Date:       testDate(t),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[2].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[3].StartTime)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.IntervalMinutes)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.DefaultSlotIntervalMinutes, s.DurationMinutes)
	}
}

func TestExecute_ClosedDayReturnsEmptyList(t *testing.T) {
	uc := NewUseCase(
		&fakeApptRepo{},
		&fakeBranchRepo{},
		&fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		BranchID:   10,
		Date:       testDate(t),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BreakWindowExcluded(t *testing.T) {
	sched := &domain.DaySchedule{
		BranchID:             10,
		DayOfWeek:            2,
		OpenTime:             types.MustTimeString("09:00"),
		CloseTime:            types.MustTimeString("12:00"),
		BreakStart:           ptr.Ptr(types.MustTimeString("10:00")),
		BreakDurationMinutes: ptr.Ptr(60),
	}
	uc := NewUseCase(&fakeApptRepo{}, &fakeBranchRepo{}, &fakeScheduleRepo{sched: sched}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		BranchID:   10,
		Date:       testDate(t),
	})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "11:00", "11:30"}, starts)
}

func TestExecute_TakenSlotsExcluded(t *testing.T) {
	date := testDate(t)
	repo := &fakeApptRepo{appts: []*domain.Appointment{
		apptAt("09:30", "10:30", date, domain.StatusConfirmed),
		// отмененная запись слот не занимает
		apptAt("10:30", "11:00", date, domain.StatusCanceled),
	}}
	uc := NewUseCase(repo, &fakeBranchRepo{}, &fakeScheduleRepo{sched: morningSchedule()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		BranchID:   10,
		Date:       date,
	})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	// запись 09:30-10:30 закрывает слоты 09:30 и 10:00; слот 10:30 свободен,
	// потому что интервал полуоткрытый
	assert.Equal(t, []types.TimeString{"09:00", "10:30"}, starts)
}

func TestExecute_EmployeeNarrowsFilter(t *testing.T) {
	repo := &fakeApptRepo{}
	uc := NewUseCase(repo, &fakeBranchRepo{}, &fakeScheduleRepo{sched: morningSchedule()}, nopLogger{})

	employeeID := ptr.Ptr(int64(7))
	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		BranchID:   10,
		Date:       testDate(t),
		EmployeeID: employeeID,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.EmployeeID)
	assert.Equal(t, int64(7), *repo.lastFilter.EmployeeID)
	assert.False(t, repo.lastFilter.IncludeCanceled)
}

func TestExecute_CustomInterval(t *testing.T) {
	uc := NewUseCase(&fakeApptRepo{}, &fakeBranchRepo{}, &fakeScheduleRepo{sched: morningSchedule()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:      1,
		BranchID:        10,
		Date:            testDate(t),
		IntervalMinutes: 60,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeApptRepo{}, &fakeBranchRepo{}, &fakeScheduleRepo{sched: morningSchedule()}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing business", &Request{BranchID: 10, Date: testDate(t)}},
		{"missing branch", &Request{BusinessID: 1, Date: testDate(t)}},
		{"zero date", &Request{BusinessID: 1, BranchID: 10}},
		{"negative employee", &Request{BusinessID: 1, BranchID: 10, Date: testDate(t), EmployeeID: ptr.Ptr(int64(-1))}},
		{"interval below minimum", &Request{BusinessID: 1, BranchID: 10, Date: testDate(t), IntervalMinutes: 3}},
		{"interval above maximum", &Request{BusinessID: 1, BranchID: 10, Date: testDate(t), IntervalMinutes: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ForeignBranchNotVisible(t *testing.T) {
	// Филиал другого бизнеса не отдает ни расписание, ни сетку слотов
	sched := &fakeScheduleRepo{sched: morningSchedule()}
	uc := NewUseCase(
		&fakeApptRepo{},
		&fakeBranchRepo{err: branchRepo.ErrBranchNotFound},
		sched,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, BranchID: 10, Date: testDate(t)})
	require.ErrorIs(t, err, ErrBranchNotFound)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	t.Run("schedule repo failure", func(t *testing.T) {
		uc := NewUseCase(&fakeApptRepo{}, &fakeBranchRepo{}, &fakeScheduleRepo{err: errors.New("db down")}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, BranchID: 10, Date: testDate(t)})
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("appointment repo failure", func(t *testing.T) {
		uc := NewUseCase(
			&fakeApptRepo{err: errors.New("db down")},
			&fakeBranchRepo{},
			&fakeScheduleRepo{sched: morningSchedule()},
			nopLogger{},
		)
		_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, BranchID: 10, Date: testDate(t)})
		require.ErrorIs(t, err, ErrInternal)
	})
}
