package memory

import (
	"context"
	"sort"

	"github.com/chronosforce/chronos-backend-go/internal/domain/leave"
)

type leaveRequestRepositoryImpl struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{store: store}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, newRequest leave.LeaveRequest) (leave.LeaveRequest, error) {
	err := r.store.write(ctx, func() error {
		if newRequest.ID == "" {
			newRequest.ID = newID()
		}
		if newRequest.Version == 0 {
			newRequest.Version = 1
		}
		now := r.store.now()
		newRequest.CreatedAt = now
		newRequest.UpdatedAt = now
		r.restoreOnRollback(ctx, newRequest.ID)
		r.store.leaveRequests[newRequest.ID] = newRequest
		return nil
	})
	return newRequest, err
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var (
		req leave.LeaveRequest
		ok  bool
	)
	r.store.read(func() {
		req, ok = r.store.leaveRequests[id]
	})
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return r.list(func(leave.LeaveRequest) bool { return true }), nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.list(func(req leave.LeaveRequest) bool { return req.EmployeeID == employeeID }), nil
}

func (r *leaveRequestRepositoryImpl) list(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	requests := []leave.LeaveRequest{}
	r.store.read(func() {
		for _, req := range r.store.leaveRequests {
			if keep(req) {
				requests = append(requests, req)
			}
		}
	})
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].ID > requests[j].ID
		}
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests
}

func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, req leave.LeaveRequest, expectedVersion int) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest
	err := r.store.write(ctx, func() error {
		stored, ok := r.store.leaveRequests[req.ID]
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		if stored.Version != expectedVersion {
			return leave.ErrVersionConflict
		}

		stored.TeamLeadStatus = req.TeamLeadStatus
		stored.SupervisorStatus = req.SupervisorStatus
		stored.DirectorStatus = req.DirectorStatus
		stored.FinalStatus = req.FinalStatus
		stored.DecidedBy = req.DecidedBy
		stored.DecidedAt = req.DecidedAt
		stored.RejectionReason = req.RejectionReason
		stored.Version++
		stored.UpdatedAt = r.store.now()

		r.restoreOnRollback(ctx, req.ID)
		r.store.leaveRequests[req.ID] = stored
		updated = stored
		return nil
	})
	return updated, err
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.leaveRequests[id]; !ok {
			return leave.ErrLeaveRequestNotFound
		}
		r.restoreOnRollback(ctx, id)
		delete(r.store.leaveRequests, id)
		return nil
	})
}

func (r *leaveRequestRepositoryImpl) restoreOnRollback(ctx context.Context, id string) {
	prev, existed := r.store.leaveRequests[id]
	r.store.onRollback(ctx, func() {
		if existed {
			r.store.leaveRequests[id] = prev
		} else {
			delete(r.store.leaveRequests, id)
		}
	})
}
