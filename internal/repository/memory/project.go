package memory

import (
	"context"
	"sort"

	"github.com/chronosforce/chronos-backend-go/internal/domain/project"
)

type projectRepositoryImpl struct {
	store *Store
}

func NewProjectRepository(store *Store) project.ProjectRepository {
	return &projectRepositoryImpl{store: store}
}

func (r *projectRepositoryImpl) GetByID(ctx context.Context, id string) (project.Project, error) {
	var (
		p  project.Project
		ok bool
	)
	r.store.read(func() {
		p, ok = r.store.projects[id]
	})
	if !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

func (r *projectRepositoryImpl) Create(ctx context.Context, newProject project.Project) (project.Project, error) {
	err := r.store.write(ctx, func() error {
		if newProject.ID == "" {
			newProject.ID = newID()
		}
		now := r.store.now()
		newProject.CreatedAt = now
		newProject.UpdatedAt = now
		id := newProject.ID
		prev, existed := r.store.projects[id]
		r.store.onRollback(ctx, func() {
			if existed {
				r.store.projects[id] = prev
			} else {
				delete(r.store.projects, id)
			}
		})
		r.store.projects[id] = newProject
		return nil
	})
	return newProject, err
}

func (r *projectRepositoryImpl) List(ctx context.Context) ([]project.Project, error) {
	var projects []project.Project
	r.store.read(func() {
		for _, p := range r.store.projects {
			projects = append(projects, p)
		}
	})
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}
