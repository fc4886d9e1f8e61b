package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/employee"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, username, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.Username, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (id, full_name, username, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.FullName, newEmployee.Username, newEmployee.IsActive,
	).Scan(&newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrUsernameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// SetActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, e.db)

	result, err := q.Exec(ctx, `UPDATE employees SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update employee status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, username, is_active, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY full_name ASC, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.FullName, &emp.Username, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// CountActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, e.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}
