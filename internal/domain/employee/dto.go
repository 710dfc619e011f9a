package employee

type EmployeeResponse struct {
	ID         int64  `json:"id"`
	Code       string `json:"employee_code"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsActive   bool   `json:"is_active"`
	IsStaff    bool   `json:"is_staff"`
	IsAdmin    bool   `json:"is_admin"`
	DateJoined string `json:"date_joined"`
}

type ListFilter struct {
	Search *string
	Page   int
	Limit  int
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
