package employee

import "time"

// Employee is the authenticated principal. Code is the opaque short employee
// code ("EMP" plus three hex characters), unique across the system and used
// as the foreign key on activity and worked-hours rows.
type Employee struct {
	ID           int64
	Code         string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsAdmin      bool
	DateJoined   time.Time
}
