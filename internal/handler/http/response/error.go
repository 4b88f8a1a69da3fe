package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/chronosforce/chronos-backend-go/internal/domain/activity"
	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
	"github.com/chronosforce/chronos-backend-go/internal/domain/auth"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/domain/leave"
	"github.com/chronosforce/chronos-backend-go/internal/domain/project"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountArchived):
		Forbidden(w, "Account is archived")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeArchived):
		Conflict(w, "Employee is archived")
	case errors.Is(err, employee.ErrInvalidStatus),
		errors.Is(err, employee.ErrInvalidRole),
		errors.Is(err, employee.ErrInvalidClockTime):
		BadRequest(w, err.Error(), nil)

	// Project domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrProjectEnded):
		UnprocessableEntity(w, "PROJECT_ENDED", err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrProjectNotAllowed):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyInStatus),
		errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrOnLeave),
		errors.Is(err, attendance.ErrNoProjectChanged):
		UnprocessableEntity(w, "INVALID_TRANSITION", err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrVersionConflict):
		Conflict(w, "Leave request was modified by someone else, please retry")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Activity domain errors
	case errors.Is(err, activity.ErrProjectNotAllowed):
		Forbidden(w, err.Error())
	case errors.Is(err, activity.ErrActivityLogNotFound):
		NotFound(w, "Activity log not found")
	case errors.Is(err, activity.ErrInvalidTimeRange):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
