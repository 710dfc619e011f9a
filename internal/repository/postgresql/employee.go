package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, employee_code, email, username, first_name, last_name, password_hash, is_active, is_staff, is_admin, date_joined`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Code, &emp.Email, &emp.Username,
		&emp.FirstName, &emp.LastName, &emp.PasswordHash,
		&emp.IsActive, &emp.IsStaff, &emp.IsAdmin, &emp.DateJoined,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (employee_code, email, username, first_name, last_name, password_hash, is_active, is_staff, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, date_joined
	`

	err := q.QueryRow(ctx, query,
		emp.Code, emp.Email, emp.Username,
		emp.FirstName, emp.LastName, emp.PasswordHash,
		emp.IsActive, emp.IsStaff, emp.IsAdmin,
	).Scan(&emp.ID, &emp.DateJoined)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE employee_code = $1`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// GetByLogin implements employee.EmployeeRepository. The login value may be
// an employee code, an email address, or a username.
func (r *employeeRepository) GetByLogin(ctx context.Context, login string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE employee_code = $1 OR email = $1 OR username = $1
		LIMIT 1
	`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by login: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *employeeRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *employeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, "employee_code", code)
}

func (r *employeeRepository) exists(ctx context.Context, column, value string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM employees WHERE %s = $1)`, column)
	if err := q.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee %s: %w", column, err)
	}

	return exists, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf(
			"(employee_code ILIKE $%d OR username ILIKE $%d OR email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)",
			argPos, argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE %s
		ORDER BY date_joined DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.Code, &emp.Email, &emp.Username,
			&emp.FirstName, &emp.LastName, &emp.PasswordHash,
			&emp.IsActive, &emp.IsStaff, &emp.IsAdmin, &emp.DateJoined,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}
