package activity

import (
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type SubmitActivityLogRequest struct {
	EmployeeID    string   `json:"-" validate:"required"`
	Date          string   `json:"date" validate:"required,date"`
	StartTime     string   `json:"start_time" validate:"required,clock"`
	EndTime       string   `json:"end_time" validate:"required,clock"`
	OvertimeHours float64  `json:"overtime_hours" validate:"gte=0,max=24"`
	ProjectIDs    []string `json:"project_ids" validate:"dive,required"`
	Note          string   `json:"note" validate:"max=2000"`
}

func (r *SubmitActivityLogRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	// HH:MM strings compare in time order.
	if r.EndTime <= r.StartTime {
		return validator.ValidationErrors{{
			Field:   "end_time",
			Message: ErrInvalidTimeRange.Error(),
		}}
	}

	return nil
}

type MyActivityLogFilter struct {
	EmployeeID string `json:"-" validate:"required"`
	From       string `json:"from" validate:"omitempty,date"`
	To         string `json:"to" validate:"omitempty,date"`
}

func (f *MyActivityLogFilter) Validate() error {
	return validator.Struct(f)
}

// Range parses the optional bounds; missing bounds are returned as zero times.
func (f *MyActivityLogFilter) Range() (from, to time.Time) {
	if f.From != "" {
		from, _ = time.Parse(dateLayout, f.From)
	}
	if f.To != "" {
		to, _ = time.Parse(dateLayout, f.To)
	}
	return from, to
}

type ActivityLogResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	OvertimeHours float64   `json:"overtime_hours"`
	ProjectIDs    []string  `json:"project_ids"`
	Note          string    `json:"note"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

func NewActivityLogResponse(l DailyActivityLog) ActivityLogResponse {
	projectIDs := l.ProjectIDs
	if projectIDs == nil {
		projectIDs = []string{}
	}
	return ActivityLogResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		Date:          l.Date.Format(dateLayout),
		StartTime:     l.StartTime,
		EndTime:       l.EndTime,
		OvertimeHours: l.OvertimeHours,
		ProjectIDs:    projectIDs,
		Note:          l.Note,
		SubmittedAt:   l.SubmittedAt,
	}
}
