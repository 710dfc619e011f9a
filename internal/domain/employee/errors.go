package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrUsernameExists   = errors.New("username already exists")
	ErrCodeGeneration   = errors.New("failed to generate a unique employee code")
	ErrUnauthorized     = errors.New("unauthorized to access this employee")
)
