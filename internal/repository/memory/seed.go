package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/domain/project"
	"golang.org/x/crypto/bcrypt"
)

type seedEmployee struct {
	id, code, name, email string
	role                  employee.Role
	supervisorID          string
	shiftStart, shiftEnd  string
	projects              []string
	otEnabled             bool
}

var seedProjects = []project.Project{
	{ID: "p1", Name: "Harbor Ledger", Client: strPtr("Tidewater Freight"), Type: project.TypePermanent, Status: project.StatusActive, DirectorID: strPtr("dir1"), TeamLeadID: strPtr("tl1")},
	{ID: "p2", Name: "Signal Migration", Client: strPtr("Northwind Telecom"), Type: project.TypeTemporary, Status: project.StatusActive, DirectorID: strPtr("dir1"), TeamLeadID: strPtr("tl1")},
	{ID: "p3", Name: "Platform Operations", Client: strPtr("Internal"), Type: project.TypePermanent, Status: project.StatusActive, DirectorID: strPtr("tm1")},
}

// The supervisor chain runs e1/e2 -> tl1 -> sup1 -> dir1 -> tm1; dev-root sits outside it.
var seedEmployees = []seedEmployee{
	{"dev-root", "ROOT", "Root Admin", "root@chronosforce.dev", employee.RoleAdmin, "", "00:00", "23:59", []string{"p1", "p2", "p3"}, true},
	{"tm1", "TM001", "Helena Brandt", "h.brandt@chronosforce.dev", employee.RoleTopManagement, "", "08:00", "16:00", []string{"p1", "p2", "p3"}, true},
	{"dir1", "DIR001", "Tomas Ferreira", "t.ferreira@chronosforce.dev", employee.RoleDirector, "tm1", "09:00", "17:00", []string{"p1", "p2"}, false},
	{"sup1", "SUP001", "Amara Okafor", "a.okafor@chronosforce.dev", employee.RoleSupervisor, "dir1", "09:00", "17:00", []string{"p1", "p2"}, false},
	{"tl1", "TL001", "Ravi Menon", "r.menon@chronosforce.dev", employee.RoleTeamLead, "sup1", "09:00", "17:00", []string{"p1", "p2"}, false},
	{"e1", "EMP001", "Lena Sato", "l.sato@chronosforce.dev", employee.RoleEmployee, "tl1", "09:00", "17:00", []string{"p1"}, false},
	{"e2", "EMP002", "Owen Price", "o.price@chronosforce.dev", employee.RoleEmployee, "tl1", "22:00", "06:00", []string{"p1", "p2"}, true},
}

// Seed loads a small demo organization. Every seeded account uses password.
func Seed(ctx context.Context, store *Store, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	passwordHash := string(hash)

	projectRepo := NewProjectRepository(store)
	employeeRepo := NewEmployeeRepository(store)

	return store.WithinTx(ctx, func(ctx context.Context) error {
		for _, p := range seedProjects {
			if p.StartDate == nil {
				start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
				p.StartDate = &start
			}
			if _, err := projectRepo.Create(ctx, p); err != nil {
				return fmt.Errorf("failed to seed project %s: %w", p.ID, err)
			}
		}

		for _, s := range seedEmployees {
			shift, err := employee.NewShift(s.shiftStart, s.shiftEnd)
			if err != nil {
				return fmt.Errorf("invalid seed shift for %s: %w", s.id, err)
			}

			emp := employee.Employee{
				ID:                s.id,
				Code:              s.code,
				Name:              s.name,
				Email:             s.email,
				PasswordHash:      &passwordHash,
				Role:              s.role,
				Shift:             shift,
				AllowedProjectIDs: s.projects,
				ActiveProjectID:   s.projects[0],
				Status:            employee.StatusOff,
				OTEnabled:         s.otEnabled,
			}
			if s.supervisorID != "" {
				emp.SupervisorID = strPtr(s.supervisorID)
			}

			if _, err := employeeRepo.Create(ctx, emp); err != nil {
				return fmt.Errorf("failed to seed employee %s: %w", s.id, err)
			}
		}
		return nil
	})
}

func strPtr(s string) *string {
	return &s
}
