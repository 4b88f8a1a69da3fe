package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/activity"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
)

type ActivityServiceImpl struct {
	activityRepo activity.ActivityLogRepository
	employeeRepo employee.EmployeeRepository
}

func NewActivityService(activityRepo activity.ActivityLogRepository, employeeRepo employee.EmployeeRepository) activity.ActivityService {
	return &ActivityServiceImpl{
		activityRepo: activityRepo,
		employeeRepo: employeeRepo,
	}
}

// Submit implements activity.ActivityService.
func (s *ActivityServiceImpl) Submit(ctx context.Context, req activity.SubmitActivityLogRequest) (activity.ActivityLogResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return activity.ActivityLogResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	for _, projectID := range req.ProjectIDs {
		if !emp.CanWorkOn(projectID) {
			return activity.ActivityLogResponse{}, fmt.Errorf("%w: %s", activity.ErrProjectNotAllowed, projectID)
		}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return activity.ActivityLogResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	created, err := s.activityRepo.Create(ctx, activity.DailyActivityLog{
		EmployeeID:    emp.ID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		OvertimeHours: req.OvertimeHours,
		ProjectIDs:    req.ProjectIDs,
		Note:          req.Note,
	})
	if err != nil {
		return activity.ActivityLogResponse{}, fmt.Errorf("failed to save activity log: %w", err)
	}

	return activity.NewActivityLogResponse(created), nil
}

// ListMine implements activity.ActivityService.
func (s *ActivityServiceImpl) ListMine(ctx context.Context, filter activity.MyActivityLogFilter) ([]activity.ActivityLogResponse, error) {
	from, to := filter.Range()

	logs, err := s.activityRepo.ListByEmployee(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}

	responses := make([]activity.ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, activity.NewActivityLogResponse(l))
	}
	return responses, nil
}
