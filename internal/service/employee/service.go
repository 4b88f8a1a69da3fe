package employee

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	rootID       string
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, rootID string) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		rootID:       rootID,
	}
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListTeam implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListTeam(ctx context.Context, viewerID string) ([]employee.EmployeeResponse, error) {
	viewer, err := s.employeeRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	all, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var team []employee.Employee
	if viewerID == s.rootID || viewer.Role.IsExecutive() {
		for _, e := range all {
			if e.ID != viewerID {
				team = append(team, e)
			}
		}
	} else {
		team = employee.NewRoster(all).Subordinates(viewerID)
	}

	sort.Slice(team, func(i, j int) bool { return team[i].Code < team[j].Code })

	responses := make([]employee.EmployeeResponse, 0, len(team))
	for _, e := range team {
		if e.IsArchived() {
			continue
		}
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// SetOvertime implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetOvertime(ctx context.Context, req employee.SetOvertimeRequest) (employee.EmployeeResponse, error) {
	actor, err := s.employeeRepo.GetByID(ctx, req.ActorID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get acting employee: %w", err)
	}

	target, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if actor.ID != s.rootID && !actor.CanManage(target) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	if err := s.employeeRepo.UpdateOvertime(ctx, target.ID, *req.Enabled); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update overtime: %w", err)
	}
	target.OTEnabled = *req.Enabled

	slog.Info("Employee: overtime updated",
		"employee_id", target.ID,
		"ot_enabled", target.OTEnabled,
		"by", actor.ID)

	return employee.NewEmployeeResponse(target), nil
}
