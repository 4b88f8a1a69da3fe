package memory

import (
	"context"
	"sort"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepositoryImpl{store: store}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var (
		emp employee.Employee
		ok  bool
	)
	r.store.read(func() {
		emp, ok = r.store.employees[id]
		emp = cloneEmployee(emp)
	})
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// GetByIDForUpdate relies on the store's writer lock, which every transaction holds.
func (r *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *employeeRepositoryImpl) GetByName(ctx context.Context, name string) (employee.Employee, error) {
	var (
		found employee.Employee
		ok    bool
	)
	r.store.read(func() {
		for _, e := range r.store.employees {
			if e.MatchesName(name) {
				found, ok = cloneEmployee(e), true
				return
			}
		}
	})
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return found, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	err := r.store.write(ctx, func() error {
		if newEmployee.ID == "" {
			newEmployee.ID = newID()
		}
		now := r.store.now()
		newEmployee.CreatedAt = now
		newEmployee.UpdatedAt = now
		r.restoreEmployeeOnRollback(ctx, newEmployee.ID)
		r.store.employees[newEmployee.ID] = cloneEmployee(newEmployee)
		return nil
	})
	return newEmployee, err
}

func (r *employeeRepositoryImpl) ListAll(ctx context.Context) ([]employee.Employee, error) {
	return r.list(func(employee.Employee) bool { return true }), nil
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.list(func(e employee.Employee) bool { return !e.IsArchived() }), nil
}

func (r *employeeRepositoryImpl) list(keep func(employee.Employee) bool) []employee.Employee {
	var employees []employee.Employee
	r.store.read(func() {
		for _, e := range r.store.employees {
			if keep(e) {
				employees = append(employees, cloneEmployee(e))
			}
		}
	})
	sort.Slice(employees, func(i, j int) bool { return employees[i].Code < employees[j].Code })
	return employees
}

func (r *employeeRepositoryImpl) UpdateAttendanceState(ctx context.Context, e employee.Employee) error {
	return r.update(ctx, e.ID, func(stored *employee.Employee) {
		stored.Status = e.Status
		stored.ActiveProjectID = e.ActiveProjectID
		stored.LastActionTime = e.LastActionTime
		stored.TotalMinutesWorkedToday = e.TotalMinutesWorkedToday
		stored.WorkDate = e.WorkDate
		stored.LastTickAt = e.LastTickAt
	})
}

func (r *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status employee.Status) error {
	return r.update(ctx, id, func(stored *employee.Employee) {
		stored.Status = status
		if status != employee.StatusActive {
			stored.LastTickAt = nil
		}
	})
}

func (r *employeeRepositoryImpl) UpdateOvertime(ctx context.Context, id string, enabled bool) error {
	return r.update(ctx, id, func(stored *employee.Employee) {
		stored.OTEnabled = enabled
	})
}

func (r *employeeRepositoryImpl) update(ctx context.Context, id string, apply func(*employee.Employee)) error {
	return r.store.write(ctx, func() error {
		stored, ok := r.store.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		r.restoreEmployeeOnRollback(ctx, id)
		stored = cloneEmployee(stored)
		apply(&stored)
		stored.UpdatedAt = r.store.now()
		r.store.employees[id] = stored
		return nil
	})
}

func (r *employeeRepositoryImpl) restoreEmployeeOnRollback(ctx context.Context, id string) {
	prev, existed := r.store.employees[id]
	r.store.onRollback(ctx, func() {
		if existed {
			r.store.employees[id] = prev
		} else {
			delete(r.store.employees, id)
		}
	})
}
