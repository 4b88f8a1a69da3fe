package leave

import (
	"time"
)

type ApprovalStatus string

const (
	StatusPending     ApprovalStatus = "PENDING"
	StatusApproved    ApprovalStatus = "APPROVED"
	StatusRejected    ApprovalStatus = "REJECTED"
	StatusNotRequired ApprovalStatus = "NOT_REQUIRED"
)

// Resolved reports a lane that no longer blocks completion.
func (s ApprovalStatus) Resolved() bool {
	return s == StatusApproved || s == StatusNotRequired
}

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusNotRequired:
		return true
	}
	return false
}

// Stage names one approval lane.
type Stage string

const (
	StageTeamLead   Stage = "TEAM_LEAD"
	StageSupervisor Stage = "SUPERVISOR"
	StageDirector   Stage = "DIRECTOR"
)

type LeaveRequest struct {
	ID         string
	EmployeeID string
	// EmployeeName is a snapshot taken at submission.
	EmployeeName string
	StartDate    time.Time
	EndDate      time.Time
	Reason       string

	TeamLeadStatus   ApprovalStatus
	SupervisorStatus ApprovalStatus
	DirectorStatus   ApprovalStatus
	FinalStatus      ApprovalStatus

	// Version guards the lanes and final status as one compare-and-set unit.
	Version int

	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r *LeaveRequest) IsTerminal() bool {
	return r.FinalStatus == StatusApproved || r.FinalStatus == StatusRejected
}

// Lane returns the status of the given stage.
func (r *LeaveRequest) Lane(stage Stage) ApprovalStatus {
	switch stage {
	case StageTeamLead:
		return r.TeamLeadStatus
	case StageSupervisor:
		return r.SupervisorStatus
	case StageDirector:
		return r.DirectorStatus
	}
	return ""
}

func (r *LeaveRequest) setLane(stage Stage, status ApprovalStatus) {
	switch stage {
	case StageTeamLead:
		r.TeamLeadStatus = status
	case StageSupervisor:
		r.SupervisorStatus = status
	case StageDirector:
		r.DirectorStatus = status
	}
}
