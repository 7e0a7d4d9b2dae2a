package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/dbmetrics"
	"github.com/kyros-barber/KB-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий агрегатных запросов для статистики
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountAppointmentsByBranch считает записи по филиалам бизнеса
func (r *Repository) CountAppointmentsByBranch(ctx context.Context, businessID int64) ([]domain.BranchCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("b.id", "b.name", "COUNT(a.id)").
		From("branches b").
		LeftJoin("appointments a ON a.branch_id = b.id AND a.status <> 'canceled'").
		Where(squirrel.Eq{"b.business_id": businessID}).
		GroupBy("b.id", "b.name").
		OrderBy("b.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountAppointmentsByBranch - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountAppointmentsByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.BranchCount, 0)
	for rows.Next() {
		var c domain.BranchCount
		if err := rows.Scan(&c.BranchID, &c.BranchName, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: CountAppointmentsByBranch - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountAppointmentsByBranch - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// PopularServices считает популярность услуг по позициям записей
func (r *Repository) PopularServices(ctx context.Context, businessID int64, branchID *int64, limit uint64) ([]domain.ServiceCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("s.id", "s.name", "COUNT(asv.appointment_id)").
		From("services s").
		Join("appointment_services asv ON asv.service_id = s.id").
		Join("appointments a ON a.id = asv.appointment_id AND a.status <> 'canceled'").
		Where(squirrel.Eq{"s.business_id": businessID}).
		GroupBy("s.id", "s.name").
		OrderBy("COUNT(asv.appointment_id) DESC", "s.name ASC")

	if branchID != nil {
		builder = builder.Where(squirrel.Eq{"a.branch_id": *branchID})
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PopularServices - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: PopularServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.ServiceCount, 0)
	for rows.Next() {
		var c domain.ServiceCount
		if err := rows.Scan(&c.ServiceID, &c.ServiceName, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: PopularServices - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: PopularServices - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CompletedBetween возвращает завершенные записи за период для подсчета выручки
// Группировку по часу/дню недели/числу месяца делает сервисный слой
func (r *Repository) CompletedBetween(ctx context.Context, businessID int64, branchID *int64, from, to time.Time) ([]domain.RevenueRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("a.id", "a.starts_at", "COALESCE(a.total_paid, 0)").
		From("appointments a").
		Where(squirrel.Eq{"a.business_id": businessID, "a.status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"a.starts_at": from}).
		Where(squirrel.Lt{"a.starts_at": to}).
		OrderBy("a.starts_at ASC")

	if branchID != nil {
		builder = builder.Where(squirrel.Eq{"a.branch_id": *branchID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CompletedBetween - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CompletedBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	revenueRows := make([]domain.RevenueRow, 0)
	for rows.Next() {
		var rr domain.RevenueRow
		if err := rows.Scan(&rr.AppointmentID, &rr.StartsAt, &rr.TotalPaid); err != nil {
			return nil, fmt.Errorf("%w: CompletedBetween - scan row: %v", ErrScanRow, err)
		}
		revenueRows = append(revenueRows, rr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CompletedBetween - rows error: %v", ErrScanRow, err)
	}

	return revenueRows, nil
}
