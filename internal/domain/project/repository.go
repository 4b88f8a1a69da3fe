package project

import "context"

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (Project, error)
	Create(ctx context.Context, newProject Project) (Project, error)
	List(ctx context.Context) ([]Project, error)
}
