package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	scheduleRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/schedule"
	"github.com/kyros-barber/KB-BookingService/internal/service/schedule/models"
	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// fakeBranchRepo знает филиалы только одного бизнеса:
// запрос с другим business_id получает ErrBranchNotFound
type fakeBranchRepo struct {
	businessID int64
	branchIDs  []int64
}

func (f *fakeBranchRepo) GetByID(_ context.Context, businessID, id int64) (*domain.Branch, error) {
	if businessID == f.businessID {
		for _, known := range f.branchIDs {
			if known == id {
				return &domain.Branch{ID: id, BusinessID: businessID}, nil
			}
		}
	}
	return nil, branchRepo.ErrBranchNotFound
}

type fakeScheduleRepo struct {
	days      []*domain.DaySchedule
	deleteErr error

	upserted   *domain.DaySchedule
	deletedDay *int
}

func (f *fakeScheduleRepo) GetByBranch(_ context.Context, _ int64) ([]*domain.DaySchedule, error) {
	return f.days, nil
}

func (f *fakeScheduleRepo) GetByBranchAndDay(_ context.Context, _ int64, _ int) (*domain.DaySchedule, error) {
	return nil, scheduleRepo.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) GetOpenDays(_ context.Context, _ int64) ([]int, error) {
	days := make([]int, 0, len(f.days))
	for _, d := range f.days {
		days = append(days, d.DayOfWeek)
	}
	return days, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, sched *domain.DaySchedule) (*domain.DaySchedule, error) {
	f.upserted = sched
	return sched, nil
}

func (f *fakeScheduleRepo) DeleteDay(_ context.Context, _ int64, dayOfWeek int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedDay = &dayOfWeek
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ownBranches() *fakeBranchRepo {
	return &fakeBranchRepo{businessID: 1, branchIDs: []int64{10}}
}

func owner(businessID int64) domain.ActorContext {
	return domain.ActorContext{BusinessID: businessID, Role: domain.RoleOwner}
}

func validDay() *models.UpsertDayRequest {
	return &models.UpsertDayRequest{
		DayOfWeek: 2,
		OpenTime:  "09:00",
		CloseTime: "20:00",
	}
}

func TestUpsertDay_SavesDayForOwnBranch(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, ownBranches(), nopLogger{})

	resp, err := svc.UpsertDay(context.Background(), owner(1), 10, validDay())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.DayOfWeek)
	assert.Equal(t, "09:00", resp.OpenTime)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(10), repo.upserted.BranchID)
}

func TestUpsertDay_ForeignBranchRejected(t *testing.T) {
	// Владелец чужого бизнеса не должен дотянуться до расписания филиала:
	// филиал ищется в рамках business_id актора
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, ownBranches(), nopLogger{})

	_, err := svc.UpsertDay(context.Background(), owner(42), 10, validDay())
	require.ErrorIs(t, err, ErrBranchNotFound)
	assert.Nil(t, repo.upserted)
}

func TestUpsertDay_InvalidHoursRejected(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, ownBranches(), nopLogger{})

	req := validDay()
	req.OpenTime = "20:00"
	req.CloseTime = "09:00"
	_, err := svc.UpsertDay(context.Background(), owner(1), 10, req)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBranchSchedule_ScopedToOwnBusiness(t *testing.T) {
	repo := &fakeScheduleRepo{days: []*domain.DaySchedule{{
		BranchID:  10,
		DayOfWeek: 2,
		OpenTime:  types.MustTimeString("09:00"),
		CloseTime: types.MustTimeString("20:00"),
	}}}
	svc := NewService(repo, ownBranches(), nopLogger{})

	resp, err := svc.GetBranchSchedule(context.Background(), owner(1), 10)
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	_, err = svc.GetBranchSchedule(context.Background(), owner(42), 10)
	require.ErrorIs(t, err, ErrBranchNotFound)
}

func TestDeleteDay(t *testing.T) {
	t.Run("removes own day", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, ownBranches(), nopLogger{})

		require.NoError(t, svc.DeleteDay(context.Background(), owner(1), 10, 2))
		require.NotNil(t, repo.deletedDay)
		assert.Equal(t, 2, *repo.deletedDay)
	})

	t.Run("foreign branch rejected", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, ownBranches(), nopLogger{})

		err := svc.DeleteDay(context.Background(), owner(42), 10, 2)
		require.ErrorIs(t, err, ErrBranchNotFound)
		assert.Nil(t, repo.deletedDay)
	})

	t.Run("missing day", func(t *testing.T) {
		repo := &fakeScheduleRepo{deleteErr: scheduleRepo.ErrScheduleNotFound}
		svc := NewService(repo, ownBranches(), nopLogger{})

		err := svc.DeleteDay(context.Background(), owner(1), 10, 2)
		require.ErrorIs(t, err, ErrScheduleNotFound)
	})
}

func TestBranchActorConfinedToOwnBranch(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, ownBranches(), nopLogger{})
	actor := domain.ActorContext{BusinessID: 1, Role: domain.RoleBranch, BranchID: ptr.Ptr(int64(99))}

	_, err := svc.UpsertDay(context.Background(), actor, 10, validDay())
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetOpenDays(t *testing.T) {
	repo := &fakeScheduleRepo{days: []*domain.DaySchedule{
		{DayOfWeek: 1}, {DayOfWeek: 2}, {DayOfWeek: 5},
	}}
	svc := NewService(repo, ownBranches(), nopLogger{})

	resp, err := svc.GetOpenDays(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5}, resp.Days)
}

