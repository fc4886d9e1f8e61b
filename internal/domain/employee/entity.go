package employee

import "time"

// Employee is the subset of the directory that attendance accounting needs.
type Employee struct {
	ID        string
	FullName  string
	Username  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
