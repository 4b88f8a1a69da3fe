package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/chronosforce/chronos-backend-go/internal/domain/leave"
	"github.com/chronosforce/chronos-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	DismissRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	viewerID := getEmployeeIDFromContext(r)
	if viewerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := l.leaveService.ListVisible(r.Context(), viewerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := l.leaveService.ListMine(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	viewerID := getEmployeeIDFromContext(r)
	if viewerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	req, err := l.leaveService.Get(r.Context(), requestID, viewerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, req)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, l.leaveService.Approve, "Leave request approved")
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, l.leaveService.Reject, "Leave request rejected")
}

func (l *LeaveHandlerImpl) decide(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, req leave.DecisionRequest) (leave.DecisionResponse, error),
	message string,
) {
	actorID := getEmployeeIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	// The body is optional; it only carries a reason.
	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Decision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ActorID = actorID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := action(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !result.Acted {
		response.NoChange(w, "No approval stage is pending for you on this request", result)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// DismissRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DismissRequest(w http.ResponseWriter, r *http.Request) {
	viewerID := getEmployeeIDFromContext(r)
	if viewerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := l.leaveService.Dismiss(r.Context(), chi.URLParam(r, "id"), viewerID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request dismissed", nil)
}
