package employee

import (
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/pkg/validator"
)

type SetOvertimeRequest struct {
	ActorID    string `json:"-" validate:"required"`
	EmployeeID string `json:"employee_id" validate:"required"`
	Enabled    *bool  `json:"ot_enabled" validate:"required"`
}

func (r *SetOvertimeRequest) Validate() error {
	return validator.Struct(r)
}

type ShiftResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type EmployeeResponse struct {
	ID                      string        `json:"id"`
	Code                    string        `json:"code"`
	Name                    string        `json:"name"`
	Email                   string        `json:"email"`
	Role                    string        `json:"role"`
	SupervisorID            *string       `json:"supervisor_id"`
	Shift                   ShiftResponse `json:"shift"`
	AllowedProjectIDs       []string      `json:"allowed_project_ids"`
	ActiveProjectID         string        `json:"active_project_id"`
	Status                  string        `json:"status"`
	LastActionTime          *time.Time    `json:"last_action_time"`
	TotalMinutesWorkedToday int           `json:"total_minutes_worked_today"`
	OTEnabled               bool          `json:"ot_enabled"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	allowed := e.AllowedProjectIDs
	if allowed == nil {
		allowed = []string{}
	}
	return EmployeeResponse{
		ID:                      e.ID,
		Code:                    e.Code,
		Name:                    e.Name,
		Email:                   e.Email,
		Role:                    string(e.Role),
		SupervisorID:            e.SupervisorID,
		Shift:                   ShiftResponse{Start: e.Shift.Start.String(), End: e.Shift.End.String()},
		AllowedProjectIDs:       allowed,
		ActiveProjectID:         e.ActiveProjectID,
		Status:                  string(e.Status),
		LastActionTime:          e.LastActionTime,
		TotalMinutesWorkedToday: e.TotalMinutesWorkedToday,
		OTEnabled:               e.OTEnabled,
	}
}
