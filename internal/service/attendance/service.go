package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/domain/project"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/clock"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/database"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/sse"
)

type AttendanceServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	projectRepo  project.ProjectRepository
	recordRepo   attendance.RecordRepository
	policy       attendance.TransitionPolicy
	events       sse.Publisher
	clock        clock.Clock
	loc          *time.Location
	rootID       string
}

func NewAttendanceService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	projectRepo project.ProjectRepository,
	recordRepo attendance.RecordRepository,
	policy attendance.TransitionPolicy,
	events sse.Publisher,
	clk clock.Clock,
	loc *time.Location,
	rootID string,
) attendance.AttendanceService {
	if policy == nil {
		policy = attendance.TolerantPolicy{}
	}
	return &AttendanceServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		projectRepo:  projectRepo,
		recordRepo:   recordRepo,
		policy:       policy,
		events:       events,
		clock:        clk,
		loc:          loc,
		rootID:       rootID,
	}
}

// UpdateStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateStatus(ctx context.Context, req attendance.UpdateStatusRequest) (attendance.StatusResponse, error) {
	status, err := employee.ParseStatus(req.Status)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	var (
		updated employee.Employee
		record  attendance.Record
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if emp.IsArchived() {
			return employee.ErrEmployeeArchived
		}
		if status == employee.StatusLeave && emp.Status != employee.StatusLeave {
			return fmt.Errorf("%w: LEAVE is set by an approved leave request", employee.ErrInvalidStatus)
		}

		if req.ProjectID != "" {
			if err := s.checkProject(ctx, emp, req.ProjectID); err != nil {
				return err
			}
		}

		if err := s.policy.Check(emp, status, req.ProjectID); err != nil {
			return err
		}

		updated, record = attendance.RecordTransition(emp, status, req.ProjectID, s.clock.Now())

		record, err = s.recordRepo.Append(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to append attendance record: %w", err)
		}
		if err := s.employeeRepo.UpdateAttendanceState(ctx, updated); err != nil {
			return fmt.Errorf("failed to update employee attendance state: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	resp := attendance.StatusResponse{
		Employee: employee.NewEmployeeResponse(updated),
		Record:   attendance.NewRecordResponse(record),
	}
	s.publish(updated.ID, resp)

	return resp, nil
}

func (s *AttendanceServiceImpl) checkProject(ctx context.Context, emp employee.Employee, projectID string) error {
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return fmt.Errorf("%w: %s", attendance.ErrProjectNotAllowed, projectID)
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	if !emp.CanWorkOn(p.ID) {
		return fmt.Errorf("%w: %s", attendance.ErrProjectNotAllowed, projectID)
	}
	if !p.IsActive() {
		return project.ErrProjectEnded
	}
	return nil
}

// StartSession implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartSession(ctx context.Context, employeeID string) (attendance.SessionResponse, error) {
	now := s.clock.Now()
	dayStart, dayEnd := s.orgDay(now)

	var (
		resp    attendance.SessionResponse
		current employee.Employee
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByIDForUpdate(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		records, err := s.recordRepo.ListByEmployeeBetween(ctx, emp.ID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to list today's attendance records: %w", err)
		}

		// An approved leave stays in place until the employee records something today.
		if emp.Status == employee.StatusLeave && len(records) == 0 {
			current = emp
			return nil
		}

		ls := attendance.DeriveLoginStatus(emp, records, now, s.loc)
		resp.ClockInReminder = ls.ClockInReminder

		reconciled, changed := attendance.ApplyLoginStatus(emp, ls, now)
		if changed {
			if err := s.employeeRepo.UpdateAttendanceState(ctx, reconciled); err != nil {
				return fmt.Errorf("failed to persist reconciled status: %w", err)
			}
			slog.Info("Attendance: session status reconciled",
				"employee_id", emp.ID,
				"cached_status", emp.Status,
				"derived_status", reconciled.Status)
		}
		resp.Reconciled = changed
		current = reconciled
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	resp.Employee = employee.NewEmployeeResponse(current)
	if resp.Reconciled {
		s.publish(current.ID, resp.Employee)
	}
	return resp, nil
}

// TickShiftBoundaries implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TickShiftBoundaries(ctx context.Context) (attendance.TickSummary, error) {
	var summary attendance.TickSummary

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list employees: %w", err)
	}

	now := s.clock.Now()
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := s.tickOne(ctx, emp.ID, now)
		summary.Checked++
		if err != nil {
			summary.Failed++
			slog.Error("Attendance: shift boundary tick failed", "employee_id", emp.ID, "error", err)
			continue
		}

		if result.DayRolledOver {
			summary.DaysRolled++
		}
		if result.MinutesAdded > 0 {
			summary.Accrued++
			summary.MinutesAdded += result.MinutesAdded
		}
		if result.Record != nil {
			summary.ForcedOff++
			slog.Info("Attendance: shift ended, clocked out automatically",
				"employee_id", emp.ID,
				"shift_end", result.Employee.Shift.End.String())
			s.publish(emp.ID, attendance.StatusResponse{
				Employee: employee.NewEmployeeResponse(result.Employee),
				Record:   attendance.NewRecordResponse(*result.Record),
			})
		}
	}

	return summary, nil
}

func (s *AttendanceServiceImpl) tickOne(ctx context.Context, employeeID string, now time.Time) (attendance.TickResult, error) {
	var result attendance.TickResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByIDForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}

		result = attendance.TickShiftBoundary(emp, now, s.loc)
		if result.Record != nil {
			record, err := s.recordRepo.Append(ctx, *result.Record)
			if err != nil {
				return fmt.Errorf("failed to append boundary clock-out: %w", err)
			}
			result.Record = &record
		}
		if !result.Changed {
			return nil
		}
		return s.employeeRepo.UpdateAttendanceState(ctx, result.Employee)
	})
	return result, err
}

// ListRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	employeeID := filter.EmployeeID
	if employeeID == "" {
		employeeID = filter.ViewerID
	}

	if employeeID != filter.ViewerID {
		if err := s.authorizeViewer(ctx, filter.ViewerID, employeeID); err != nil {
			return attendance.ListRecordsResponse{}, err
		}
	}

	query := attendance.RecordQuery{
		EmployeeID: employeeID,
		Offset:     (filter.Page - 1) * filter.Limit,
		Limit:      filter.Limit,
	}
	if filter.From != "" {
		from, err := time.ParseInLocation(attendance.DateLayout, filter.From, s.loc)
		if err != nil {
			return attendance.ListRecordsResponse{}, fmt.Errorf("failed to parse from date: %w", err)
		}
		query.From = from
	}
	if filter.To != "" {
		to, err := time.ParseInLocation(attendance.DateLayout, filter.To, s.loc)
		if err != nil {
			return attendance.ListRecordsResponse{}, fmt.Errorf("failed to parse to date: %w", err)
		}
		query.To = to.AddDate(0, 0, 1)
	}

	records, total, err := s.recordRepo.List(ctx, query)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r))
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	return attendance.ListRecordsResponse{
		Records:    responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// authorizeViewer allows the root identity, executives and transitive supervisors.
func (s *AttendanceServiceImpl) authorizeViewer(ctx context.Context, viewerID, employeeID string) error {
	if viewerID == s.rootID {
		return nil
	}

	viewer, err := s.employeeRepo.GetByID(ctx, viewerID)
	if err != nil {
		return fmt.Errorf("failed to get viewer: %w", err)
	}
	if viewer.Role.IsExecutive() {
		return nil
	}

	all, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	if !employee.NewRoster(all).IsSupervisorOf(viewerID, employeeID) {
		return attendance.ErrUnauthorized
	}
	return nil
}

// orgDay returns the bounds of the organizational day containing now.
func (s *AttendanceServiceImpl) orgDay(now time.Time) (time.Time, time.Time) {
	local := now.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

func (s *AttendanceServiceImpl) publish(employeeID string, data interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(employeeID, sse.Event{Event: sse.EventStatusChanged, Data: data})
}
