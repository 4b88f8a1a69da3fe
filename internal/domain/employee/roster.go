package employee

// Roster is an id-indexed snapshot of the employee directory used for hierarchy checks.
type Roster map[string]Employee

func NewRoster(employees []Employee) Roster {
	r := make(Roster, len(employees))
	for _, e := range employees {
		r[e.ID] = e
	}
	return r
}

// IsSupervisorOf reports whether viewerID appears on the supervisor chain above employeeID.
// The walk stops with false on a missing record or a repeated id, so a cyclic chain cannot hang it.
func (r Roster) IsSupervisorOf(viewerID, employeeID string) bool {
	if viewerID == "" {
		return false
	}

	visited := map[string]struct{}{employeeID: {}}
	current, ok := r[employeeID]
	if !ok {
		return false
	}

	for current.SupervisorID != nil {
		supervisorID := *current.SupervisorID
		if supervisorID == viewerID {
			return true
		}
		if _, seen := visited[supervisorID]; seen {
			return false
		}
		visited[supervisorID] = struct{}{}

		current, ok = r[supervisorID]
		if !ok {
			return false
		}
	}

	return false
}

// Subordinates returns every employee that viewerID transitively supervises.
func (r Roster) Subordinates(viewerID string) []Employee {
	var result []Employee
	for id, e := range r {
		if id == viewerID {
			continue
		}
		if r.IsSupervisorOf(viewerID, id) {
			result = append(result, e)
		}
	}
	return result
}
