package create_public_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

type fakeApptRepo struct {
	existing   []*domain.Appointment
	overlapCnt int

	createdAppt  *domain.Appointment
	createdItems []domain.AppointmentService
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	created := *appt
	created.ID = 200
	f.createdAppt = &created
	return &created, nil
}

func (f *fakeApptRepo) CreateServices(_ context.Context, _ int64, items []domain.AppointmentService) error {
	f.createdItems = items
	return nil
}

func (f *fakeApptRepo) GetWithFilter(_ context.Context, _ domain.BranchAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

func (f *fakeApptRepo) CountOverlapping(_ context.Context, _ domain.OverlapFilter) (int, error) {
	return f.overlapCnt, nil
}

type fakeBranchRepo struct {
	branch *domain.Branch
	err    error
}

func (f *fakeBranchRepo) GetByID(_ context.Context, _, _ int64) (*domain.Branch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.branch, nil
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

type fakeClientService struct {
	existing *domain.Client
	created  *domain.Client
}

func (f *fakeClientService) FindOrCreate(_ context.Context, businessID int64, branchID *int64, name, phone, platform string, chatID *string) (*domain.Client, error) {
	if f.existing != nil {
		return f.existing, nil
	}
	f.created = &domain.Client{
		ID:         42,
		BusinessID: businessID,
		BranchID:   branchID,
		Name:       name,
		Phone:      &phone,
		Platform:   platform,
		ChatID:     chatID,
	}
	return f.created, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		BusinessID:  1,
		BranchID:    10,
		Date:        time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime:   types.MustTimeString("10:00"),
		ServiceIDs:  []int64{1},
		ClientName:  "Анна",
		ClientPhone: "+79990001122",
		Platform:    "web_chat",
	}
}

func newTestUseCase(appt *fakeApptRepo, branch *fakeBranchRepo, clients *fakeClientService) *UseCase {
	return NewUseCase(
		appt,
		branch,
		&fakeScheduleRepo{sched: &domain.DaySchedule{
			BranchID:  10,
			OpenTime:  types.MustTimeString("09:00"),
			CloseTime: types.MustTimeString("20:00"),
		}},
		&fakeServiceRepo{services: []*domain.Service{
			{ID: 1, Name: "Стрижка", BasePrice: 1500, DurationMinutes: 30},
		}},
		&fakeEmployeeRepo{emp: &domain.Employee{ID: 7, BusinessID: 1, BranchID: 10, ServiceIDs: []int64{1}}},
		clients,
		fakeTxManager{},
		nopLogger{},
	)
}

func TestExecute_CreatesPendingBookingAndClient(t *testing.T) {
	apptRepo := &fakeApptRepo{}
	clients := &fakeClientService{}
	uc := newTestUseCase(apptRepo, &fakeBranchRepo{branch: &domain.Branch{ID: 10, BusinessID: 1}}, clients)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// публичные бронирования всегда pending
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(42), resp.ClientID)
	assert.Equal(t, int64(200), resp.ID)

	require.NotNil(t, clients.created)
	assert.Equal(t, "Анна", clients.created.Name)
	assert.Equal(t, "web_chat", clients.created.Platform)

	require.NotNil(t, apptRepo.createdAppt)
	require.NotNil(t, apptRepo.createdAppt.ClientID)
	assert.Equal(t, int64(42), *apptRepo.createdAppt.ClientID)
	require.Len(t, apptRepo.createdItems, 1)
}

func TestExecute_ReusesExistingClientByPhone(t *testing.T) {
	clients := &fakeClientService{existing: &domain.Client{ID: 7, BusinessID: 1, Name: "Анна"}}
	uc := newTestUseCase(&fakeApptRepo{}, &fakeBranchRepo{branch: &domain.Branch{ID: 10, BusinessID: 1}}, clients)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ClientID)
	assert.Nil(t, clients.created)
}

func TestExecute_BranchNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, &fakeBranchRepo{err: branchRepo.ErrBranchNotFound}, &fakeClientService{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBranchNotFound)
}

func TestExecute_SlotTaken(t *testing.T) {
	t.Run("branch-wide occupancy", func(t *testing.T) {
		date := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
		apptRepo := &fakeApptRepo{existing: []*domain.Appointment{{
			Status:   domain.StatusConfirmed,
			StartsAt: date.Add(9*time.Hour + 45*time.Minute),
			EndsAt:   date.Add(10*time.Hour + 15*time.Minute),
		}}}
		uc := newTestUseCase(apptRepo, &fakeBranchRepo{branch: &domain.Branch{ID: 10, BusinessID: 1}}, &fakeClientService{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrSlotTaken)
		assert.Nil(t, apptRepo.createdAppt)
	})

	t.Run("employee overlap", func(t *testing.T) {
		apptRepo := &fakeApptRepo{overlapCnt: 1}
		uc := newTestUseCase(apptRepo, &fakeBranchRepo{branch: &domain.Branch{ID: 10, BusinessID: 1}}, &fakeClientService{})

		req := validRequest()
		req.EmployeeID = ptr.Ptr(int64(7))
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("boundary touch is free", func(t *testing.T) {
		date := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
		apptRepo := &fakeApptRepo{existing: []*domain.Appointment{{
			Status:   domain.StatusConfirmed,
			StartsAt: date.Add(9 * time.Hour),
			EndsAt:   date.Add(10 * time.Hour),
		}}}
		uc := newTestUseCase(apptRepo, &fakeBranchRepo{branch: &domain.Branch{ID: 10, BusinessID: 1}}, &fakeClientService{})

		// слот 10:00 начинается ровно в конце чужой записи
		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
	})
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, &fakeBranchRepo{branch: &domain.Branch{ID: 10, BusinessID: 1}}, &fakeClientService{})

	mutate := func(fn func(r *Request)) *Request {
		r := validRequest()
		fn(r)
		return r
	}

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing client name", mutate(func(r *Request) { r.ClientName = "" })},
		{"missing phone", mutate(func(r *Request) { r.ClientPhone = "" })},
		{"no services", mutate(func(r *Request) { r.ServiceIDs = nil })},
		{"missing start time", mutate(func(r *Request) { r.StartTime = "" })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
