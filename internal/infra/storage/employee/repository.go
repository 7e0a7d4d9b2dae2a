package employee

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/dbmetrics"
	"github.com/kyros-barber/KB-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с сотрудниками и их услугами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ID услуг агрегируются прямо в запросе, чтобы не делать N+1 выборок
const employeeColumns = `e.id, e.business_id, e.branch_id, e.name, e.specialty,
	COALESCE(ARRAY_AGG(es.service_id) FILTER (WHERE es.service_id IS NOT NULL), '{}'),
	e.created_at, e.updated_at`

// Create создает сотрудника и связи с услугами
func (r *Repository) Create(ctx context.Context, emp *domain.Employee) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("employees").
		Columns("business_id", "branch_id", "name", "specialty").
		Values(emp.BusinessID, emp.BranchID, emp.Name, emp.Specialty).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&emp.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	emp.CreatedAt = createdAt.Time
	emp.UpdatedAt = updatedAt.Time

	if err := r.ReplaceServices(ctx, emp.ID, emp.ServiceIDs); err != nil {
		return nil, err
	}

	return emp, nil
}

// GetByID получает сотрудника по ID в рамках бизнеса
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns).
		From("employees e").
		LeftJoin("employee_services es ON es.employee_id = e.id").
		Where(squirrel.Eq{"e.id": id, "e.business_id": businessID}).
		GroupBy("e.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	emp, err := scanEmployeeRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	return emp, nil
}

// GetByBranch получает сотрудников филиала
func (r *Repository) GetByBranch(ctx context.Context, businessID, branchID int64) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns).
		From("employees e").
		LeftJoin("employee_services es ON es.employee_id = e.id").
		Where(squirrel.Eq{"e.business_id": businessID, "e.branch_id": branchID}).
		GroupBy("e.id").
		OrderBy("e.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// GetByBusiness получает всех сотрудников бизнеса
func (r *Repository) GetByBusiness(ctx context.Context, businessID int64) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns).
		From("employees e").
		LeftJoin("employee_services es ON es.employee_id = e.id").
		Where(squirrel.Eq{"e.business_id": businessID}).
		GroupBy("e.id").
		OrderBy("e.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// Update обновляет сотрудника и заменяет его связи с услугами
func (r *Repository) Update(ctx context.Context, emp *domain.Employee) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("employees").
		Set("branch_id", emp.BranchID).
		Set("name", emp.Name).
		Set("specialty", emp.Specialty).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": emp.ID, "business_id": emp.BusinessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return r.ReplaceServices(ctx, emp.ID, emp.ServiceIDs)
}

// ReplaceServices заменяет набор услуг, которые выполняет сотрудник
func (r *Repository) ReplaceServices(ctx context.Context, employeeID int64, serviceIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("employee_services").
		Where(squirrel.Eq{"employee_id": employeeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - delete old associations: %v", ErrExecQuery, err)
	}

	if len(serviceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("employee_services").
		Columns("employee_id", "service_id")
	for _, serviceID := range serviceIDs {
		insertBuilder = insertBuilder.Values(employeeID, serviceID)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - insert associations: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет сотрудника вместе со связями услуг
// Записи сотрудника остаются: employee_id у них обнуляется («без предпочтения»)
func (r *Repository) Delete(ctx context.Context, businessID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.ReplaceServices(ctx, id, nil); err != nil {
		return err
	}

	detachQuery, detachArgs, err := psqlbuilder.Update("appointments").
		Set("employee_id", nil).
		Where(squirrel.Eq{"employee_id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build detach query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, detachQuery, detachArgs...); err != nil {
		return fmt.Errorf("%w: Delete - detach appointments: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete("employees").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// DeleteByBranch удаляет сотрудников филиала (каскад при удалении филиала)
func (r *Repository) DeleteByBranch(ctx context.Context, businessID, branchID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	assocQuery, assocArgs, err := psqlbuilder.Delete("employee_services").
		Where(squirrel.Expr(
			"employee_id IN (SELECT id FROM employees WHERE business_id = ? AND branch_id = ?)",
			businessID, branchID,
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBranch - build assoc delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, assocQuery, assocArgs...); err != nil {
		return fmt.Errorf("%w: DeleteByBranch - delete associations: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete("employees").
		Where(squirrel.Eq{"business_id": businessID, "branch_id": branchID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBranch - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBranch - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func scanEmployeeRow(row *sql.Row) (*domain.Employee, error) {
	var emp domain.Employee
	var createdAt, updatedAt sql.NullTime
	var serviceIDs pq.Int64Array

	err := row.Scan(
		&emp.ID,
		&emp.BusinessID,
		&emp.BranchID,
		&emp.Name,
		&emp.Specialty,
		&serviceIDs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	emp.ServiceIDs = serviceIDs
	emp.CreatedAt = createdAt.Time
	emp.UpdatedAt = updatedAt.Time

	return &emp, nil
}

func scanEmployees(rows *sql.Rows) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0)

	for rows.Next() {
		var emp domain.Employee
		var createdAt, updatedAt sql.NullTime
		var serviceIDs pq.Int64Array

		err := rows.Scan(
			&emp.ID,
			&emp.BusinessID,
			&emp.BranchID,
			&emp.Name,
			&emp.Specialty,
			&serviceIDs,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEmployees - scan row: %v", ErrScanRow, err)
		}

		emp.ServiceIDs = serviceIDs
		emp.CreatedAt = createdAt.Time
		emp.UpdatedAt = updatedAt.Time
		employees = append(employees, &emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEmployees - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}
