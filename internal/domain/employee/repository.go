package employee

import "context"

// EmployeeRepository is the employee directory consumed by attendance accounting.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	SetActive(ctx context.Context, id string, active bool) error

	// ListActive returns active employees ordered by full name
	ListActive(ctx context.Context) ([]Employee, error)
	CountActive(ctx context.Context) (int64, error)
}
