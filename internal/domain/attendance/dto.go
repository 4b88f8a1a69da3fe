package attendance

import (
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/validator"
)

type UpdateStatusRequest struct {
	EmployeeID string `json:"-" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=ACTIVE BREAK OFF LEAVE active break off leave"`
	ProjectID  string `json:"project_id"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r)
}

type RecordFilter struct {
	ViewerID   string `json:"-" validate:"required"`
	EmployeeID string `json:"employee_id"`
	// Date range on organizational days, inclusive.
	From string `json:"from" validate:"omitempty,date"`
	To   string `json:"to" validate:"omitempty,date"`

	Page  int `json:"page" validate:"gte=0,max=100000"`
	Limit int `json:"limit" validate:"gte=0,max=500"`
}

func (f *RecordFilter) Validate() error {
	if err := validator.Struct(f); err != nil {
		return err
	}

	if f.From != "" && f.To != "" && f.To < f.From {
		return validator.ValidationErrors{{
			Field:   "to",
			Message: "to must not be before from",
		}}
	}

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 50
	}

	return nil
}

type RecordResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	ProjectID  *string   `json:"project_id"`
	Automatic  bool      `json:"automatic"`
}

func NewRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Type:       string(r.Type),
		Timestamp:  r.Timestamp,
		Automatic:  r.Automatic,
	}
	if r.ProjectID != "" {
		projectID := r.ProjectID
		resp.ProjectID = &projectID
	}
	return resp
}

type ListRecordsResponse struct {
	Records    []RecordResponse `json:"records"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type StatusResponse struct {
	Employee employee.EmployeeResponse `json:"employee"`
	Record   RecordResponse            `json:"record"`
}

type SessionResponse struct {
	Employee        employee.EmployeeResponse `json:"employee"`
	Reconciled      bool                      `json:"reconciled"`
	ClockInReminder bool                      `json:"clock_in_reminder"`
}

type TickSummary struct {
	Checked      int `json:"checked"`
	ForcedOff    int `json:"forced_off"`
	Accrued      int `json:"accrued"`
	DaysRolled   int `json:"days_rolled"`
	Failed       int `json:"failed"`
	MinutesAdded int `json:"minutes_added"`
}
