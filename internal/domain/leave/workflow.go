package leave

import (
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
)

// stageOrder lists lanes from the highest to the lowest; executives act on the first pending one.
var stageOrder = []Stage{StageDirector, StageSupervisor, StageTeamLead}

// InitialLanes returns the lane statuses for a request submitted by an employee with the
// given role. Lanes at or below the submitter's own level are skipped.
func InitialLanes(submitter employee.Role) (teamLead, supervisor, director ApprovalStatus) {
	switch submitter {
	case employee.RoleEmployee:
		return StatusPending, StatusPending, StatusPending
	case employee.RoleTeamLead:
		return StatusNotRequired, StatusPending, StatusPending
	default:
		return StatusNotRequired, StatusNotRequired, StatusPending
	}
}

// NewRequest builds a pending request with lanes initialized for the submitter.
func NewRequest(submitter employee.Employee, req LeaveRequest) LeaveRequest {
	req.EmployeeID = submitter.ID
	req.EmployeeName = submitter.Name
	req.TeamLeadStatus, req.SupervisorStatus, req.DirectorStatus = InitialLanes(submitter.Role)
	req.FinalStatus = StatusPending
	req.Version = 1
	return req
}

func (r *LeaveRequest) needsLead() bool {
	return r.TeamLeadStatus == StatusPending
}

func (r *LeaveRequest) needsSupervisor() bool {
	return r.TeamLeadStatus.Resolved() && r.SupervisorStatus == StatusPending
}

// ActiveStage resolves the single lane the given role may act on now, or false when
// there is none. Directors may act on their lane before the lower lanes are resolved.
func (r *LeaveRequest) ActiveStage(role employee.Role) (Stage, bool) {
	if r.FinalStatus != StatusPending {
		return "", false
	}

	switch {
	case role.IsExecutive():
		for _, stage := range stageOrder {
			if r.Lane(stage) == StatusPending {
				return stage, true
			}
		}
	case role == employee.RoleDirector:
		if r.DirectorStatus == StatusPending {
			return StageDirector, true
		}
	case role == employee.RoleSupervisor:
		if r.needsSupervisor() {
			return StageSupervisor, true
		}
	case role == employee.RoleTeamLead:
		if r.needsLead() {
			return StageTeamLead, true
		}
	}

	return "", false
}

// Outcome reports what a decision did to a request.
type Outcome struct {
	Stage Stage
	// Acted is false when the role had no active stage and nothing changed.
	Acted bool
	// Completed is set when this decision moved the final status to APPROVED.
	Completed bool
}

// Approve approves the lane resolved for role. Executives approve every pending lane and a
// director's approval resolves the pending lanes beneath it.
func (r *LeaveRequest) Approve(role employee.Role) Outcome {
	stage, ok := r.ActiveStage(role)
	if !ok {
		return Outcome{}
	}

	r.setLane(stage, StatusApproved)

	if role.IsExecutive() || stage == StageDirector {
		for _, other := range stageOrder {
			if r.Lane(other) == StatusPending {
				r.setLane(other, StatusApproved)
			}
		}
	}

	return Outcome{Stage: stage, Acted: true, Completed: r.Settle()}
}

// Reject terminates the request at the lane resolved for role.
func (r *LeaveRequest) Reject(role employee.Role) Outcome {
	stage, ok := r.ActiveStage(role)
	if !ok {
		return Outcome{}
	}

	r.setLane(stage, StatusRejected)
	r.FinalStatus = StatusRejected

	return Outcome{Stage: stage, Acted: true}
}

// Settle recomputes the final status of a pending request. The request is approved
// exactly when every lane is APPROVED or NOT_REQUIRED. It reports whether it completed now.
func (r *LeaveRequest) Settle() bool {
	if r.FinalStatus != StatusPending {
		return false
	}
	if r.TeamLeadStatus.Resolved() && r.SupervisorStatus.Resolved() && r.DirectorStatus.Resolved() {
		r.FinalStatus = StatusApproved
		return true
	}
	return false
}
