package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	// GetByName matches the login name case-insensitively.
	GetByName(ctx context.Context, name string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	// ListAll includes archived employees; hierarchy walks need them to keep chains intact.
	ListAll(ctx context.Context) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)

	// UpdateAttendanceState writes the cached attendance fields: status, active project,
	// last action time, accrued minutes, work date and last tick.
	UpdateAttendanceState(ctx context.Context, e Employee) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateOvertime(ctx context.Context, id string, enabled bool) error
}
