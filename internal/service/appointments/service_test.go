package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	apptRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/appointment"
	"github.com/kyros-barber/KB-BookingService/internal/service/appointments/models"
	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
)

type fakeApptRepo struct {
	appt    *domain.Appointment
	getErr  error
	listErr error

	updatedStatus *domain.AppointmentStatus
	completedPaid *float64
	completedAt   *time.Time
}

func (f *fakeApptRepo) GetByID(_ context.Context, _, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appt, nil
}

func (f *fakeApptRepo) GetWithFilter(_ context.Context, _ domain.BranchAppointmentsFilter) ([]*domain.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []*domain.Appointment{f.appt}, nil
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, _, _ int64, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	f.appt.Status = status
	return nil
}

func (f *fakeApptRepo) Complete(_ context.Context, _, _ int64, totalPaid float64, completedAt time.Time) error {
	f.completedPaid = &totalPaid
	f.completedAt = &completedAt
	f.appt.Status = domain.StatusCompleted
	f.appt.TotalPaid = &totalPaid
	f.appt.CompletedAt = &completedAt
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func owner() domain.ActorContext {
	return domain.ActorContext{BusinessID: 1, Role: domain.RoleOwner}
}

func activeAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:       5,
		BranchID: 10,
		Status:   status,
		StartsAt: time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 8, 11, 0, 0, 0, time.UTC),
		Services: []domain.AppointmentService{
			{ServiceID: 1, ServiceName: "Стрижка", PriceAtBooking: 1500},
			{ServiceID: 2, ServiceName: "Бритье", PriceAtBooking: 700},
		},
	}
}

func newTestService(repo *fakeApptRepo, now time.Time) *Service {
	svc := NewService(repo, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTime{t: now}
	return svc
}

func TestUpdateStatus_CompletedStampsRevenue(t *testing.T) {
	now := time.Date(2026, 9, 8, 11, 5, 0, 0, time.UTC)
	repo := &fakeApptRepo{appt: activeAppointment(domain.StatusInProgress)}
	svc := newTestService(repo, now)

	resp, err := svc.UpdateStatus(context.Background(), owner(), 5, "completed")
	require.NoError(t, err)

	require.NotNil(t, repo.completedPaid)
	assert.InDelta(t, 2200.0, *repo.completedPaid, 0.001)
	require.NotNil(t, repo.completedAt)
	assert.Equal(t, now, *repo.completedAt)
	assert.Nil(t, repo.updatedStatus)
	assert.Equal(t, "completed", resp.Status)
}

func TestUpdateStatus_PlainTransition(t *testing.T) {
	repo := &fakeApptRepo{appt: activeAppointment(domain.StatusPending)}
	svc := newTestService(repo, time.Now())

	resp, err := svc.UpdateStatus(context.Background(), owner(), 5, "confirmed")
	require.NoError(t, err)

	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
	assert.Nil(t, repo.completedPaid)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestUpdateStatus_Errors(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{appt: activeAppointment(domain.StatusPending)}, time.Now())
		_, err := svc.UpdateStatus(context.Background(), owner(), 5, "done")
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("illegal transition", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{appt: activeAppointment(domain.StatusCompleted)}, time.Now())
		_, err := svc.UpdateStatus(context.Background(), owner(), 5, "confirmed")
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{getErr: apptRepo.ErrAppointmentNotFound}, time.Now())
		_, err := svc.UpdateStatus(context.Background(), owner(), 5, "confirmed")
		require.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("branch actor denied", func(t *testing.T) {
		actor := domain.ActorContext{BusinessID: 1, Role: domain.RoleBranch, BranchID: ptr.Ptr(int64(99))}
		svc := newTestService(&fakeApptRepo{appt: activeAppointment(domain.StatusPending)}, time.Now())
		_, err := svc.UpdateStatus(context.Background(), actor, 5, "confirmed")
		require.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCancel(t *testing.T) {
	t.Run("active appointment is canceled", func(t *testing.T) {
		repo := &fakeApptRepo{appt: activeAppointment(domain.StatusConfirmed)}
		svc := newTestService(repo, time.Now())

		resp, err := svc.Cancel(context.Background(), owner(), 5)
		require.NoError(t, err)
		assert.Equal(t, "canceled", resp.Status)
	})

	t.Run("completed appointment cannot be canceled", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{appt: activeAppointment(domain.StatusCompleted)}, time.Now())
		_, err := svc.Cancel(context.Background(), owner(), 5)
		require.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestGetByID(t *testing.T) {
	t.Run("resolves client name precedence", func(t *testing.T) {
		appt := activeAppointment(domain.StatusConfirmed)
		appt.ManualClientName = ptr.Ptr("Гость")
		svc := newTestService(&fakeApptRepo{appt: appt}, time.Now())

		resp, err := svc.GetByID(context.Background(), owner(), 5)
		require.NoError(t, err)
		assert.Equal(t, "Гость", resp.ClientName)
		assert.Equal(t, string(domain.ClientRefWalkIn), resp.ClientRefKind)
	})

	t.Run("branch actor sees only own branch", func(t *testing.T) {
		actor := domain.ActorContext{BusinessID: 1, Role: domain.RoleBranch, BranchID: ptr.Ptr(int64(10))}
		svc := newTestService(&fakeApptRepo{appt: activeAppointment(domain.StatusConfirmed)}, time.Now())

		_, err := svc.GetByID(context.Background(), actor, 5)
		require.NoError(t, err)

		actor.BranchID = ptr.Ptr(int64(11))
		_, err = svc.GetByID(context.Background(), actor, 5)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("repository failure wraps internal", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{getErr: errors.New("db down")}, time.Now())
		_, err := svc.GetByID(context.Background(), owner(), 5)
		require.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetBranchAppointments_AccessAndFilter(t *testing.T) {
	t.Run("branch actor denied for foreign branch", func(t *testing.T) {
		actor := domain.ActorContext{BusinessID: 1, Role: domain.RoleBranch, BranchID: ptr.Ptr(int64(3))}
		svc := newTestService(&fakeApptRepo{appt: activeAppointment(domain.StatusConfirmed)}, time.Now())

		req := &models.GetBranchAppointmentsRequest{BranchID: 10}
		_, err := svc.GetBranchAppointments(context.Background(), actor, req)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{appt: activeAppointment(domain.StatusConfirmed)}, time.Now())
		req := &models.GetBranchAppointmentsRequest{BranchID: 10, Status: ptr.Ptr("done")}
		_, err := svc.GetBranchAppointments(context.Background(), owner(), req)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("returns mapped list", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{appt: activeAppointment(domain.StatusConfirmed)}, time.Now())
		resp, err := svc.GetBranchAppointments(context.Background(), owner(), &models.GetBranchAppointmentsRequest{BranchID: 10})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)
		assert.Equal(t, int64(5), resp.Appointments[0].ID)
	})
}
