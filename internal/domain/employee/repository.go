package employee

import "context"

type EmployeeRepository interface {
	// Create inserts a new employee and returns the stored row.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByCode looks an employee up by its unique employee code.
	GetByCode(ctx context.Context, code string) (Employee, error)

	// GetByLogin resolves a login value that may be an employee code, an
	// email address, or a username.
	GetByLogin(ctx context.Context, login string) (Employee, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// List returns employees ordered by join date, newest first.
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
}

type EmployeeService interface {
	Get(ctx context.Context, code string) (EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) (ListEmployeesResponse, error)
}
