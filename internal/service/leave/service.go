package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/domain/leave"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/clock"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/database"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/sse"
)

const maxDecisionAttempts = 3

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	events sse.Publisher
	clock  clock.Clock
	rootID string
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	events sse.Publisher,
	clk clock.Clock,
	rootID string,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		events:                 events,
		clock:                  clk,
		rootID:                 rootID,
	}
}

// CreateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.IsArchived() {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeArchived
	}

	startDate, endDate, err := req.Dates()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse leave dates: %w", err)
	}
	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	request := leave.NewRequest(emp, leave.LeaveRequest{
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	})

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave: request submitted",
		"request_id", created.ID,
		"employee_id", emp.ID,
		"role", emp.Role)

	return leave.NewLeaveRequestResponse(created), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecisionRequest) (leave.DecisionResponse, error) {
	return s.decide(ctx, req, true)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecisionRequest) (leave.DecisionResponse, error) {
	return s.decide(ctx, req, false)
}

// decide applies one approval or rejection as a compare-and-set on the request version,
// re-reading and re-resolving the stage when another decision landed first.
func (s *LeaveServiceImpl) decide(ctx context.Context, req leave.DecisionRequest, approve bool) (leave.DecisionResponse, error) {
	actor, err := s.EmployeeRepository.GetByID(ctx, req.ActorID)
	if err != nil {
		return leave.DecisionResponse{}, fmt.Errorf("failed to get acting employee: %w", err)
	}

	visibility, err := s.visibility(ctx)
	if err != nil {
		return leave.DecisionResponse{}, err
	}

	for attempt := 1; attempt <= maxDecisionAttempts; attempt++ {
		request, err := s.LeaveRequestRepository.GetByID(ctx, req.RequestID)
		if err != nil {
			return leave.DecisionResponse{}, fmt.Errorf("failed to get leave request: %w", err)
		}
		if !visibility.CanView(actor.ID, request) {
			return leave.DecisionResponse{}, leave.ErrUnauthorizedAccess
		}

		expectedVersion := request.Version

		var outcome leave.Outcome
		if approve {
			outcome = request.Approve(actor.Role)
		} else {
			outcome = request.Reject(actor.Role)
		}
		if !outcome.Acted {
			return leave.DecisionResponse{Request: leave.NewLeaveRequestResponse(request)}, nil
		}

		now := s.clock.Now()
		request.DecidedBy = &actor.ID
		request.DecidedAt = &now
		if !approve && req.Reason != "" {
			reason := req.Reason
			request.RejectionReason = &reason
		}

		var updated leave.LeaveRequest
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			updated, err = s.LeaveRequestRepository.UpdateDecision(ctx, request, expectedVersion)
			if err != nil {
				return err
			}
			if outcome.Completed {
				if err := s.EmployeeRepository.UpdateStatus(ctx, request.EmployeeID, employee.StatusLeave); err != nil {
					return fmt.Errorf("failed to set requester on leave: %w", err)
				}
			}
			return nil
		})
		if errors.Is(err, leave.ErrVersionConflict) {
			slog.Warn("Leave: concurrent decision, retrying",
				"request_id", request.ID,
				"actor_id", actor.ID,
				"attempt", attempt)
			continue
		}
		if err != nil {
			return leave.DecisionResponse{}, fmt.Errorf("failed to record leave decision: %w", err)
		}

		if outcome.Completed {
			slog.Info("Leave: request fully approved", "request_id", updated.ID, "employee_id", updated.EmployeeID)
		}

		stage := string(outcome.Stage)
		resp := leave.DecisionResponse{
			Request: leave.NewLeaveRequestResponse(updated),
			Stage:   &stage,
			Acted:   true,
		}
		if s.events != nil {
			s.events.PublishToMany([]string{updated.EmployeeID, actor.ID}, sse.Event{
				Event: sse.EventLeaveRequestUpdated,
				Data:  resp.Request,
			})
		}
		return resp, nil
	}

	return leave.DecisionResponse{}, leave.ErrVersionConflict
}

// ListVisible implements leave.LeaveService.
func (s *LeaveServiceImpl) ListVisible(ctx context.Context, viewerID string) ([]leave.LeaveRequestResponse, error) {
	viewer, err := s.EmployeeRepository.GetByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	visibility, err := s.visibility(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	visible := visibility.Filter(viewerID, requests)
	responses := make([]leave.LeaveRequestResponse, 0, len(visible))
	for _, r := range visible {
		responses = append(responses, withActiveStage(r, viewer.Role))
	}
	return responses, nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, requestID, viewerID string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	viewer, err := s.EmployeeRepository.GetByID(ctx, viewerID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get viewer: %w", err)
	}

	visibility, err := s.visibility(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if visibility.CanView(viewerID, request) {
		return withActiveStage(request, viewer.Role), nil
	}
	if request.EmployeeID == viewerID {
		return leave.NewLeaveRequestResponse(request), nil
	}
	return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
}

// Dismiss implements leave.LeaveService.
func (s *LeaveServiceImpl) Dismiss(ctx context.Context, requestID, viewerID string) error {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.EmployeeID != viewerID {
		visibility, err := s.visibility(ctx)
		if err != nil {
			return err
		}
		if !visibility.CanView(viewerID, request) {
			return leave.ErrUnauthorizedAccess
		}
	}

	if err := s.LeaveRequestRepository.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	slog.Info("Leave: request dismissed", "request_id", requestID, "by", viewerID)
	return nil
}

func (s *LeaveServiceImpl) visibility(ctx context.Context) (leave.Visibility, error) {
	all, err := s.EmployeeRepository.ListAll(ctx)
	if err != nil {
		return leave.Visibility{}, fmt.Errorf("failed to load roster: %w", err)
	}
	return leave.Visibility{RootID: s.rootID, Roster: employee.NewRoster(all)}, nil
}

func withActiveStage(r leave.LeaveRequest, role employee.Role) leave.LeaveRequestResponse {
	resp := leave.NewLeaveRequestResponse(r)
	if stage, ok := r.ActiveStage(role); ok {
		s := string(stage)
		resp.ActiveStage = &s
	}
	return resp
}
