package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/dbmetrics"
	"github.com/kyros-barber/KB-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с недельным расписанием филиалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var scheduleColumns = []string{
	"id",
	"branch_id",
	"day_of_week",
	"open_time",
	"close_time",
	"break_start",
	"break_duration_minutes",
	"created_at",
	"updated_at",
}

// GetByBranchAndDay получает расписание филиала на конкретный день недели
// Возвращает ErrScheduleNotFound, если филиал закрыт в этот день
func (r *Repository) GetByBranchAndDay(ctx context.Context, branchID int64, dayOfWeek int) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("branch_schedules").
		Where(squirrel.Eq{"branch_id": branchID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchAndDay - build select query: %v", ErrBuildQuery, err)
	}

	sched, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchAndDay - scan schedule: %v", ErrScanRow, err)
	}

	return sched, nil
}

// GetByBranch получает полное недельное расписание филиала
func (r *Repository) GetByBranch(ctx context.Context, branchID int64) ([]*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("branch_schedules").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.DaySchedule, 0)
	for rows.Next() {
		var sched domain.DaySchedule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&sched.ID,
			&sched.BranchID,
			&sched.DayOfWeek,
			&sched.OpenTime,
			&sched.CloseTime,
			&sched.BreakStart,
			&sched.BreakDurationMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBranch - scan row: %v", ErrScanRow, err)
		}

		sched.CreatedAt = createdAt.Time
		sched.UpdatedAt = updatedAt.Time
		schedules = append(schedules, &sched)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// GetOpenDays возвращает дни недели, в которые у филиала есть расписание
func (r *Repository) GetOpenDays(ctx context.Context, branchID int64) ([]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week").
		From("branch_schedules").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]int, 0)
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: GetOpenDays - scan row: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOpenDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// Upsert создает или заменяет расписание на день
// Уникальность (branch_id, day_of_week) гарантируется констрейнтом,
// поэтому дублирующихся строк на один день быть не может
func (r *Repository) Upsert(ctx context.Context, sched *domain.DaySchedule) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("branch_schedules").
		Columns(
			"branch_id",
			"day_of_week",
			"open_time",
			"close_time",
			"break_start",
			"break_duration_minutes",
		).
		Values(
			sched.BranchID,
			sched.DayOfWeek,
			sched.OpenTime,
			sched.CloseTime,
			sched.BreakStart,
			sched.BreakDurationMinutes,
		).
		Suffix(`ON CONFLICT (branch_id, day_of_week) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			break_start = EXCLUDED.break_start,
			break_duration_minutes = EXCLUDED.break_duration_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sched.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return sched, nil
}

// DeleteDay удаляет расписание на день (филиал закрыт в этот день)
func (r *Repository) DeleteDay(ctx context.Context, branchID int64, dayOfWeek int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("branch_schedules").
		Where(squirrel.Eq{"branch_id": branchID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// DeleteByBranch удаляет все расписания филиала (каскад при удалении филиала)
func (r *Repository) DeleteByBranch(ctx context.Context, branchID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("branch_schedules").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByBranch - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBranch - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// scanSchedule сканирует одну строку расписания
func scanSchedule(row *sql.Row) (*domain.DaySchedule, error) {
	var sched domain.DaySchedule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sched.ID,
		&sched.BranchID,
		&sched.DayOfWeek,
		&sched.OpenTime,
		&sched.CloseTime,
		&sched.BreakStart,
		&sched.BreakDurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return &sched, nil
}
