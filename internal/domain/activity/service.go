package activity

import "context"

type ActivityService interface {
	Submit(ctx context.Context, req SubmitActivityLogRequest) (ActivityLogResponse, error)
	ListMine(ctx context.Context, filter MyActivityLogFilter) ([]ActivityLogResponse, error)
}
