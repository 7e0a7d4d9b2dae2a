package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/dbmetrics"
	"github.com/kyros-barber/KB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями (citas)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const appointmentColumns = `a.id, a.business_id, a.branch_id, a.employee_id, a.client_id,
	a.starts_at, a.ends_at, a.status, a.manual_client_name, a.notes,
	a.total_paid, a.completed_at, a.created_at, a.updated_at`

// Create создает новую запись
// Строки услуг (line items) вставляются отдельно через CreateServices;
// обе операции обязаны выполняться внутри одной транзакции (см. usecase)
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"branch_id",
			"employee_id",
			"client_id",
			"starts_at",
			"ends_at",
			"status",
			"manual_client_name",
			"notes",
		).
		Values(
			appt.BusinessID,
			appt.BranchID,
			appt.EmployeeID,
			appt.ClientID,
			appt.StartsAt,
			appt.EndsAt,
			appt.Status,
			appt.ManualClientName,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// CreateServices вставляет строки услуг записи (цена фиксируется на момент бронирования)
func (r *Repository) CreateServices(ctx context.Context, appointmentID int64, items []domain.AppointmentService) error {
	if len(items) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("appointment_services").
		Columns("appointment_id", "service_id", "price_at_booking")

	for _, item := range items {
		insertBuilder = insertBuilder.Values(appointmentID, item.ServiceID, item.PriceAtBooking)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateServices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteServices удаляет все строки услуг записи (используется при редактировании)
func (r *Repository) DeleteServices(ctx context.Context, appointmentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteServices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteServices - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает запись по ID с присоединённым именем клиента и сотрудника
// Доступ всегда ограничен бизнесом (multi-tenant)
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns, "c.name", "e.name").
		From("appointments a").
		LeftJoin("clients c ON c.id = a.client_id").
		LeftJoin("employees e ON e.id = a.employee_id").
		Where(squirrel.Eq{"a.id": id, "a.business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	if err := r.loadServices(ctx, []*domain.Appointment{appt}); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetWithFilter получает записи по фильтру
// Для выборки на конкретную дату внутри транзакции добавляется FOR UPDATE,
// чтобы параллельное создание записей на тот же день сериализовалось
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BranchAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns, "c.name", "e.name").
		From("appointments a").
		LeftJoin("clients c ON c.id = a.client_id").
		LeftJoin("employees e ON e.id = a.employee_id").
		Where(squirrel.Eq{"a.business_id": filter.BusinessID})

	if filter.BranchID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.branch_id": *filter.BranchID})
	}

	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.employee_id": *filter.EmployeeID})
	}

	// Фильтрация на конкретный день: [00:00 этого дня, 00:00 следующего)
	if filter.Date != nil {
		dayStart := startOfDay(*filter.Date)
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"a.starts_at": dayStart}).
			Where(squirrel.Lt{"a.starts_at": dayStart.AddDate(0, 0, 1)})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.starts_at": startOfDay(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"a.starts_at": startOfDay(*filter.EndDate).AddDate(0, 0, 1)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	} else if !filter.IncludeCanceled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"a.status": domain.StatusCanceled})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("a.starts_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("a.starts_at DESC")
	}

	// Блокируем строки при проверке доступности внутри транзакции
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, appts); err != nil {
		return nil, err
	}

	return appts, nil
}

// CountOverlapping подсчитывает активные записи сотрудника, пересекающиеся
// с кандидатным интервалом [startsAt, endsAt)
// Полуоткрытая семантика: запись, заканчивающаяся ровно в startsAt, не конфликтует
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) CountOverlapping(ctx context.Context, filter domain.OverlapFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("a.id").
		From("appointments a").
		Where(squirrel.Eq{
			"a.business_id": filter.BusinessID,
			"a.employee_id": filter.EmployeeID,
		}).
		Where(squirrel.NotEq{"a.status": domain.StatusCanceled}).
		Where(squirrel.Lt{"a.starts_at": filter.EndsAt}).
		Where(squirrel.Gt{"a.ends_at": filter.StartsAt})

	if filter.ExcludeAppointmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"a.id": *filter.ExcludeAppointmentID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountOverlapping - scan row: %v", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update обновляет основную строку записи (редактирование в диалоге)
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("branch_id", appt.BranchID).
		Set("employee_id", appt.EmployeeID).
		Set("client_id", appt.ClientID).
		Set("starts_at", appt.StartsAt).
		Set("ends_at", appt.EndsAt).
		Set("manual_client_name", appt.ManualClientName).
		Set("notes", appt.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID, "business_id": appt.BusinessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "Update")
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, businessID, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "UpdateStatus")
}

// Complete переводит запись в completed, фиксируя итоговую сумму и время завершения
func (r *Repository) Complete(ctx context.Context, businessID, id int64, totalPaid float64, completedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCompleted).
		Set("total_paid", totalPaid).
		Set("completed_at", completedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "Complete")
}

// CountActiveAfter подсчитывает активные записи филиала, начинающиеся после момента after
// Используется как guard при удалении филиала
func (r *Repository) CountActiveAfter(ctx context.Context, businessID, branchID int64, after time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID, "branch_id": branchID}).
		Where(squirrel.Eq{"status": []domain.AppointmentStatus{
			domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
		}}).
		Where(squirrel.GtOrEq{"starts_at": after}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveAfter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveAfter - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DeleteByBranch удаляет все записи филиала (вместе со строками услуг)
// Вызывается только внутри транзакции удаления филиала
func (r *Repository) DeleteByBranch(ctx context.Context, businessID, branchID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	itemsQuery, itemsArgs, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Expr(
			"appointment_id IN (SELECT id FROM appointments WHERE business_id = ? AND branch_id = ?)",
			businessID, branchID,
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBranch - build items delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
		return fmt.Errorf("%w: DeleteByBranch - delete line items: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete("appointments").
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

// loadServices загружает строки услуг для набора записей одним запросом
func (r *Repository) loadServices(ctx context.Context, appts []*domain.Appointment) error {
	if len(appts) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, len(appts))
	byID := make(map[int64]*domain.Appointment, len(appts))
	for i, a := range appts {
		ids[i] = a.ID
		byID[a.ID] = a
	}

	query, args, err := psqlbuilder.Select(
		"aps.appointment_id",
		"aps.service_id",
		"s.name",
		"aps.price_at_booking",
	).
		From("appointment_services aps").
		Join("services s ON s.id = aps.service_id").
		Where(squirrel.Eq{"aps.appointment_id": ids}).
		OrderBy("aps.appointment_id, aps.service_id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.AppointmentService
		if err := rows.Scan(&item.AppointmentID, &item.ServiceID, &item.ServiceName, &item.PriceAtBooking); err != nil {
			return fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}
		if appt, ok := byID[item.AppointmentID]; ok {
			appt.Services = append(appt.Services, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanAppointment сканирует одну строку записи
func scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.BusinessID,
		&appt.BranchID,
		&appt.EmployeeID,
		&appt.ClientID,
		&appt.StartsAt,
		&appt.EndsAt,
		&appt.Status,
		&appt.ManualClientName,
		&appt.Notes,
		&appt.TotalPaid,
		&appt.CompletedAt,
		&createdAt,
		&updatedAt,
		&appt.ClientName,
		&appt.EmployeeName,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.BusinessID,
			&appt.BranchID,
			&appt.EmployeeID,
			&appt.ClientID,
			&appt.StartsAt,
			&appt.EndsAt,
			&appt.Status,
			&appt.ManualClientName,
			&appt.Notes,
			&appt.TotalPaid,
			&appt.CompletedAt,
			&createdAt,
			&updatedAt,
			&appt.ClientName,
			&appt.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}

func requireRowsAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// startOfDay обнуляет время, оставляя только дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
