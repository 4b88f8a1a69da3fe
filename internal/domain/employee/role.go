package employee

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleEmployee      Role = "EMPLOYEE"
	RoleTeamLead      Role = "TEAM_LEAD"
	RoleSupervisor    Role = "SUPERVISOR"
	RoleDirector      Role = "DIRECTOR"
	RoleTopManagement Role = "TOP_MANAGEMENT"
	RoleAdmin         Role = "ADMIN"
)

var roleWeights = map[Role]int{
	RoleEmployee:      0,
	RoleTeamLead:      1,
	RoleSupervisor:    2,
	RoleDirector:      3,
	RoleTopManagement: 4,
	RoleAdmin:         5,
}

// Weight returns the role's rank in the hierarchy, -1 for unknown roles.
func (r Role) Weight() int {
	w, ok := roleWeights[r]
	if !ok {
		return -1
	}
	return w
}

func (r Role) IsValid() bool {
	_, ok := roleWeights[r]
	return ok
}

// Outranks reports whether r sits strictly above other.
func (r Role) Outranks(other Role) bool {
	return r.IsValid() && r.Weight() > other.Weight()
}

// AtLeast reports whether r sits at or above other.
func (r Role) AtLeast(other Role) bool {
	return r.IsValid() && r.Weight() >= other.Weight()
}

// IsExecutive covers the roles that may override any approval stage.
func (r Role) IsExecutive() bool {
	return r == RoleAdmin || r == RoleTopManagement
}

func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return role, nil
}
