package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
)

type fakeStatsRepo struct {
	counts   []domain.BranchCount
	services []domain.ServiceCount
	rows     []domain.RevenueRow
	err      error

	lastBranchID *int64
	lastFrom     time.Time
	lastTo       time.Time
	lastLimit    uint64
}

func (f *fakeStatsRepo) CountAppointmentsByBranch(_ context.Context, _ int64) ([]domain.BranchCount, error) {
	return f.counts, f.err
}

func (f *fakeStatsRepo) PopularServices(_ context.Context, _ int64, branchID *int64, limit uint64) ([]domain.ServiceCount, error) {
	f.lastBranchID = branchID
	f.lastLimit = limit
	return f.services, f.err
}

func (f *fakeStatsRepo) CompletedBetween(_ context.Context, _ int64, branchID *int64, from, to time.Time) ([]domain.RevenueRow, error) {
	f.lastBranchID = branchID
	f.lastFrom = from
	f.lastTo = to
	return f.rows, f.err
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

func branchActor(branchID int64) domain.ActorContext {
	return domain.ActorContext{BusinessID: 1, Role: domain.RoleBranch, BranchID: ptr.Ptr(branchID)}
}

func newTestService(repo *fakeStatsRepo, now time.Time) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = fixedTime{t: now}
	return svc
}

func rowAt(t time.Time, paid float64) domain.RevenueRow {
	return domain.RevenueRow{StartsAt: t, TotalPaid: paid}
}

func TestBranchCounts_OwnerOnly(t *testing.T) {
	repo := &fakeStatsRepo{counts: []domain.BranchCount{{BranchID: 1, BranchName: "Центр", Count: 12}}}
	svc := newTestService(repo, time.Now())

	resp, err := svc.BranchCounts(context.Background(), owner())
	require.NoError(t, err)
	require.Len(t, resp.Branches, 1)
	assert.Equal(t, int64(12), resp.Branches[0].Count)

	_, err = svc.BranchCounts(context.Background(), branchActor(1))
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestPopularServices_BranchScoping(t *testing.T) {
	repo := &fakeStatsRepo{services: []domain.ServiceCount{{ServiceID: 1, ServiceName: "Стрижка", Count: 30}}}
	svc := newTestService(repo, time.Now())

	_, err := svc.PopularServices(context.Background(), owner(), 5)
	require.NoError(t, err)
	assert.Nil(t, repo.lastBranchID)
	assert.Equal(t, uint64(5), repo.lastLimit)

	_, err = svc.PopularServices(context.Background(), branchActor(3), 5)
	require.NoError(t, err)
	require.NotNil(t, repo.lastBranchID)
	assert.Equal(t, int64(3), *repo.lastBranchID)
}

func TestRevenue_PeriodBounds(t *testing.T) {
	now := time.Date(2026, 9, 8, 14, 30, 0, 0, time.UTC)
	repo := &fakeStatsRepo{}
	svc := newTestService(repo, now)

	tests := []struct {
		period   string
		wantFrom time.Time
	}{
		{"day", time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)},
		{"week", time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)},
		{"month", time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)},
	}

	wantTo := time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			_, err := svc.Revenue(context.Background(), owner(), tt.period)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, repo.lastFrom)
			assert.Equal(t, wantTo, repo.lastTo)
		})
	}

	t.Run("unknown period", func(t *testing.T) {
		_, err := svc.Revenue(context.Background(), owner(), "year")
		require.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

func TestGroupRevenue(t *testing.T) {
	day := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	t.Run("day groups by hour", func(t *testing.T) {
		rows := []domain.RevenueRow{
			rowAt(day.Add(9*time.Hour+15*time.Minute), 1500),
			rowAt(day.Add(9*time.Hour+45*time.Minute), 700),
			rowAt(day.Add(11*time.Hour), 2000),
		}
		buckets, total, count := GroupRevenue(domain.PeriodDay, rows)
		require.Len(t, buckets, 2)
		assert.Equal(t, "09:00", buckets[0].Label)
		assert.InDelta(t, 2200.0, buckets[0].Revenue, 0.001)
		assert.Equal(t, int64(2), buckets[0].Count)
		assert.Equal(t, "11:00", buckets[1].Label)
		assert.InDelta(t, 4200.0, total, 0.001)
		assert.Equal(t, int64(3), count)
	})

	t.Run("week groups by weekday", func(t *testing.T) {
		rows := []domain.RevenueRow{
			rowAt(day, 1000),               // Tuesday
			rowAt(day.AddDate(0, 0, 1), 500), // Wednesday
			rowAt(day, 300),
		}
		buckets, total, count := GroupRevenue(domain.PeriodWeek, rows)
		require.Len(t, buckets, 2)
		assert.Equal(t, "Tuesday", buckets[0].Label)
		assert.InDelta(t, 1300.0, buckets[0].Revenue, 0.001)
		assert.Equal(t, "Wednesday", buckets[1].Label)
		assert.InDelta(t, 1800.0, total, 0.001)
		assert.Equal(t, int64(3), count)
	})

	t.Run("month groups by day of month", func(t *testing.T) {
		rows := []domain.RevenueRow{
			rowAt(day, 100),
			rowAt(day.AddDate(0, 0, 7), 200),
		}
		buckets, _, _ := GroupRevenue(domain.PeriodMonth, rows)
		require.Len(t, buckets, 2)
		assert.Equal(t, "8", buckets[0].Label)
		assert.Equal(t, "15", buckets[1].Label)
	})

	t.Run("no rows", func(t *testing.T) {
		buckets, total, count := GroupRevenue(domain.PeriodDay, nil)
		assert.Empty(t, buckets)
		assert.Zero(t, total)
		assert.Zero(t, count)
	})
}

func TestRevenue_RepositoryError(t *testing.T) {
	svc := newTestService(&fakeStatsRepo{err: errors.New("db down")}, time.Now())
	_, err := svc.Revenue(context.Background(), owner(), "day")
	require.ErrorIs(t, err, ErrInternal)
}
