package employee

import (
	"context"
	"errors"
	"fmt"
)

// RequireActive loads an employee and fails unless it exists and is active.
func RequireActive(ctx context.Context, repo EmployeeRepository, id string) (Employee, error) {
	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return Employee{}, ErrEmployeeInactive
	}
	return emp, nil
}
