package statistics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/internal/service/statistics/models"
)

// Service сервис статистики бизнеса
type Service struct {
	statsRepo    StatsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(statsRepo StatsRepository, logger Logger) *Service {
	return &Service{
		statsRepo:    statsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// BranchCounts получает количество записей по филиалам бизнеса
// Доступно только владельцу
func (s *Service) BranchCounts(ctx context.Context, actor domain.ActorContext) (*models.BranchCountsResponse, error) {
	s.logger.Info("BranchCounts: business=%d", actor.BusinessID)

	if actor.Role != domain.RoleOwner {
		return nil, ErrAccessDenied
	}

	counts, err := s.statsRepo.CountAppointmentsByBranch(ctx, actor.BusinessID)
	if err != nil {
		s.logger.Error("BranchCounts: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: BranchCounts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBranchCounts(counts), nil
}

// PopularServices получает услуги по числу бронирований
// Актор филиала получает статистику только своего филиала
func (s *Service) PopularServices(ctx context.Context, actor domain.ActorContext, limit uint64) (*models.PopularServicesResponse, error) {
	s.logger.Info("PopularServices: business=%d, limit=%d", actor.BusinessID, limit)

	branchID := s.scopeBranch(actor)

	counts, err := s.statsRepo.PopularServices(ctx, actor.BusinessID, branchID, limit)
	if err != nil {
		s.logger.Error("PopularServices: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: PopularServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceCounts(counts), nil
}

// Revenue считает выручку по завершенным записям за период, заканчивающийся
// сегодняшним днем, с разбивкой: day — по часам, week — по дням недели,
// month — по числам месяца
func (s *Service) Revenue(ctx context.Context, actor domain.ActorContext, rawPeriod string) (*models.RevenueResponse, error) {
	s.logger.Info("Revenue: business=%d, period=%s", actor.BusinessID, rawPeriod)

	period := domain.RevenuePeriod(rawPeriod)
	if !period.IsValid() {
		s.logger.Warn("Revenue: invalid period=%s", rawPeriod)
		return nil, ErrInvalidPeriod
	}

	now := s.timeProvider.Now()
	from, to := periodBounds(period, now)
	branchID := s.scopeBranch(actor)

	rows, err := s.statsRepo.CompletedBetween(ctx, actor.BusinessID, branchID, from, to)
	if err != nil {
		s.logger.Error("Revenue: repository error for business=%d: %v", actor.BusinessID, err)
		return nil, fmt.Errorf("%w: Revenue - repository error: %v", ErrInternal, err)
	}

	buckets, totalRevenue, totalCount := GroupRevenue(period, rows)

	s.logger.Info("Revenue: business=%d, period=%s, total=%.2f over %d appointments",
		actor.BusinessID, period, totalRevenue, totalCount)

	return &models.RevenueResponse{
		Period:       string(period),
		From:         from.Format(time.RFC3339),
		To:           to.Format(time.RFC3339),
		TotalRevenue: totalRevenue,
		TotalCount:   totalCount,
		Buckets:      models.FromDomainRevenueBuckets(buckets),
	}, nil
}

// scopeBranch сужает статистику до филиала актора
func (s *Service) scopeBranch(actor domain.ActorContext) *int64 {
	if actor.Role == domain.RoleBranch {
		return actor.BranchID
	}
	return nil
}

// periodBounds возвращает полуоткрытый интервал [from, to) для периода
func periodBounds(period domain.RevenuePeriod, now time.Time) (time.Time, time.Time) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := dayStart.AddDate(0, 0, 1)

	switch period {
	case domain.PeriodDay:
		return dayStart, to
	case domain.PeriodWeek:
		return to.AddDate(0, 0, -7), to
	default:
		return to.AddDate(0, -1, 0), to
	}
}

// GroupRevenue группирует выручку по меткам периода
// Группы идут в хронологическом порядке появления, как на исходной странице
func GroupRevenue(period domain.RevenuePeriod, rows []domain.RevenueRow) ([]domain.RevenueBucket, float64, int64) {
	type agg struct {
		revenue float64
		count   int64
	}

	order := make([]string, 0)
	byLabel := make(map[string]*agg)

	var totalRevenue float64
	var totalCount int64

	for _, row := range rows {
		label := revenueLabel(period, row.StartsAt)
		a, ok := byLabel[label]
		if !ok {
			a = &agg{}
			byLabel[label] = a
			order = append(order, label)
		}
		a.revenue += row.TotalPaid
		a.count++
		totalRevenue += row.TotalPaid
		totalCount++
	}

	buckets := make([]domain.RevenueBucket, 0, len(order))
	for _, label := range order {
		a := byLabel[label]
		buckets = append(buckets, domain.RevenueBucket{
			Label:   label,
			Revenue: a.revenue,
			Count:   a.count,
		})
	}

	return buckets, totalRevenue, totalCount
}

func revenueLabel(period domain.RevenuePeriod, t time.Time) string {
	switch period {
	case domain.PeriodDay:
		return fmt.Sprintf("%02d:00", t.Hour())
	case domain.PeriodWeek:
		return t.Weekday().String()
	default:
		return strconv.Itoa(t.Day())
	}
}
