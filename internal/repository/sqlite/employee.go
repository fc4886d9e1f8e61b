package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/employee"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewEmployeeRepository(db *database.SQLiteDB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, full_name, username, is_active, created_at, updated_at`

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var (
		emp                  employee.Employee
		createdAt, updatedAt int64
	)
	if err := row.Scan(&emp.ID, &emp.FullName, &emp.Username, &emp.IsActive, &createdAt, &updatedAt); err != nil {
		return employee.Employee{}, err
	}
	emp.CreatedAt = fromMillis(createdAt)
	emp.UpdatedAt = fromMillis(updatedAt)
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	now := fromMillis(toMillis(time.Now()))

	_, err := q.ExecContext(ctx, `
		INSERT INTO employees (id, full_name, username, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		newEmployee.ID, newEmployee.FullName, newEmployee.Username, newEmployee.IsActive, toMillis(now), toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrUsernameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	return newEmployee, nil
}

// SetActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, e.db)

	result, err := q.ExecContext(ctx, `UPDATE employees SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, toMillis(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to update employee status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.QueryContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE is_active = 1
		ORDER BY full_name ASC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
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
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = 1`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}
