package leave

import (
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateLeaveRequestRequest struct {
	EmployeeID string `json:"-" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,date"`
	EndDate    string `json:"end_date" validate:"required,date"`
	Reason     string `json:"reason" validate:"required,max=1000"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	if r.EndDate < r.StartDate {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		}}
	}

	return nil
}

// Dates parses the validated start and end dates.
func (r *CreateLeaveRequestRequest) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

type DecisionRequest struct {
	RequestID string `json:"-" validate:"required"`
	ActorID   string `json:"-" validate:"required"`
	Reason    string `json:"reason" validate:"max=1000"`
}

func (r *DecisionRequest) Validate() error {
	return validator.Struct(r)
}

type LeaveRequestResponse struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee_id"`
	EmployeeName     string     `json:"employee_name"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	Reason           string     `json:"reason"`
	TeamLeadStatus   string     `json:"team_lead_status"`
	SupervisorStatus string     `json:"supervisor_status"`
	DirectorStatus   string     `json:"director_status"`
	FinalStatus      string     `json:"final_status"`
	DecidedBy        *string    `json:"decided_by"`
	DecidedAt        *time.Time `json:"decided_at"`
	RejectionReason  *string    `json:"rejection_reason"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// ActiveStage is the lane the requesting viewer may act on, if any.
	ActiveStage *string `json:"active_stage,omitempty"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		StartDate:        r.StartDate.Format(dateLayout),
		EndDate:          r.EndDate.Format(dateLayout),
		Reason:           r.Reason,
		TeamLeadStatus:   string(r.TeamLeadStatus),
		SupervisorStatus: string(r.SupervisorStatus),
		DirectorStatus:   string(r.DirectorStatus),
		FinalStatus:      string(r.FinalStatus),
		DecidedBy:        r.DecidedBy,
		DecidedAt:        r.DecidedAt,
		RejectionReason:  r.RejectionReason,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type DecisionResponse struct {
	Request LeaveRequestResponse `json:"request"`
	Stage   *string              `json:"stage"`
	Acted   bool                 `json:"acted"`
}
