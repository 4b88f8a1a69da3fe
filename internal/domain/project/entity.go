package project

import "time"

type Type string

const (
	TypePermanent Type = "PERMANENT"
	TypeTemporary Type = "TEMPORARY"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusEnded  Status = "ENDED"
)

type Project struct {
	ID         string
	Name       string
	Client     *string
	Type       Type
	Status     Status
	DirectorID *string
	TeamLeadID *string
	StartDate  *time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}
