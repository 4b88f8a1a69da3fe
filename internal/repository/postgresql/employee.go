package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	id, code, name, email, password_hash, role, supervisor_id, shift_start, shift_end,
	allowed_project_ids, COALESCE(active_project_id, ''), status, last_action_time,
	total_minutes_worked_today, ot_enabled, work_date, last_tick_at, archived_at, created_at, updated_at
`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return e.getOne(q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 FOR UPDATE`
	return e.getOne(q.QueryRow(ctx, query, id))
}

// GetByName implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByName(ctx context.Context, name string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE LOWER(name) = LOWER(TRIM($1))`
	return e.getOne(q.QueryRow(ctx, query, name))
}

func (e *employeeRepositoryImpl) getOne(row pgx.Row) (employee.Employee, error) {
	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, code, name, email, password_hash, role, supervisor_id, shift_start, shift_end,
			allowed_project_ids, active_project_id, status, ot_enabled
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, NULLIF($11, ''), $12, $13
		)
		RETURNING ` + employeeColumns

	allowed := newEmployee.AllowedProjectIDs
	if allowed == nil {
		allowed = []string{}
	}
	status := newEmployee.Status
	if status == "" {
		status = employee.StatusOff
	}

	row := q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Code, newEmployee.Name, newEmployee.Email, newEmployee.PasswordHash,
		newEmployee.Role, newEmployee.SupervisorID, int(newEmployee.Shift.Start), int(newEmployee.Shift.End),
		allowed, newEmployee.ActiveProjectID, status, newEmployee.OTEnabled,
	)
	created, err := scanEmployee(row)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// ListAll implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListAll(ctx context.Context) ([]employee.Employee, error) {
	return e.list(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY code`)
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return e.list(ctx, `SELECT `+employeeColumns+` FROM employees WHERE archived_at IS NULL ORDER BY code`)
}

func (e *employeeRepositoryImpl) list(ctx context.Context, query string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// UpdateAttendanceState implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateAttendanceState(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	var workDate *time.Time
	if emp.WorkDate != "" {
		d, err := time.Parse("2006-01-02", emp.WorkDate)
		if err != nil {
			return fmt.Errorf("invalid work date %q: %w", emp.WorkDate, err)
		}
		workDate = &d
	}

	query := `
		UPDATE employees
		SET status = $1, active_project_id = NULLIF($2, ''), last_action_time = $3,
			total_minutes_worked_today = $4, work_date = $5, last_tick_at = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := q.Exec(ctx, query,
		emp.Status, emp.ActiveProjectID, emp.LastActionTime,
		emp.TotalMinutesWorkedToday, workDate, emp.LastTickAt, emp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance state for employee %s: %w", emp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status employee.Status) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET status = $1,
			last_tick_at = CASE WHEN $1 = 'ACTIVE' THEN last_tick_at ELSE NULL END,
			updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status for employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateOvertime implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateOvertime(ctx context.Context, id string, enabled bool) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET ot_enabled = $1, updated_at = NOW() WHERE id = $2`, enabled, id)
	if err != nil {
		return fmt.Errorf("failed to update overtime for employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp                  employee.Employee
		shiftStart, shiftEnd int
		workDate             *time.Time
	)
	err := row.Scan(
		&emp.ID, &emp.Code, &emp.Name, &emp.Email, &emp.PasswordHash, &emp.Role, &emp.SupervisorID,
		&shiftStart, &shiftEnd, &emp.AllowedProjectIDs, &emp.ActiveProjectID, &emp.Status,
		&emp.LastActionTime, &emp.TotalMinutesWorkedToday, &emp.OTEnabled, &workDate,
		&emp.LastTickAt, &emp.ArchivedAt, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.Shift = employee.Shift{Start: employee.ClockTime(shiftStart), End: employee.ClockTime(shiftEnd)}
	if workDate != nil {
		emp.WorkDate = workDate.Format("2006-01-02")
	}
	return emp, nil
}
