package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronosforce/chronos-backend-go/internal/domain/leave"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `
	id, employee_id, employee_name, start_date, end_date, reason,
	team_lead_status, supervisor_status, director_status, final_status, version,
	decided_by, decided_at, rejection_reason, created_at, updated_at
`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, newRequest leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if newRequest.ID == "" {
		newRequest.ID = uuid.Must(uuid.NewV7()).String()
	}
	if newRequest.Version == 0 {
		newRequest.Version = 1
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, employee_name, start_date, end_date, reason,
			team_lead_status, supervisor_status, director_status, final_status, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		newRequest.ID, newRequest.EmployeeID, newRequest.EmployeeName, newRequest.StartDate, newRequest.EndDate,
		newRequest.Reason, newRequest.TeamLeadStatus, newRequest.SupervisorStatus, newRequest.DirectorStatus,
		newRequest.FinalStatus, newRequest.Version,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}

	req, err := scanLeaveRequest(q.QueryRow(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request %s: %w", id, err)
	}
	return req, nil
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests ORDER BY created_at DESC, id DESC`)
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE employee_id = $1 ORDER BY created_at DESC, id DESC`, employeeID)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateDecision implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, req leave.LeaveRequest, expectedVersion int) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET team_lead_status = $1, supervisor_status = $2, director_status = $3, final_status = $4,
			decided_by = $5, decided_at = $6, rejection_reason = $7,
			version = version + 1, updated_at = NOW()
		WHERE id = $8 AND version = $9
		RETURNING ` + leaveRequestColumns

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.TeamLeadStatus, req.SupervisorStatus, req.DirectorStatus, req.FinalStatus,
		req.DecidedBy, req.DecidedAt, req.RejectionReason,
		req.ID, expectedVersion,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request %s: %w", req.ID, err)
	}

	// No row matched: either the request is gone or its version moved on.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`, req.ID).Scan(&exists); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check leave request %s: %w", req.ID, err)
	}
	if !exists {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return leave.LeaveRequest{}, leave.ErrVersionConflict
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.EmployeeName,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.TeamLeadStatus,
		&lr.SupervisorStatus,
		&lr.DirectorStatus,
		&lr.FinalStatus,
		&lr.Version,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.RejectionReason,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}
