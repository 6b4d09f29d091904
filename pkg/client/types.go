package client

import "time"

type Employee struct {
	ID         uint64    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Salary     *float64  `json:"salary"`
	HireDate   string    `json:"hire_date"`
	Address    *string   `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeInput is the body of create and update. Empty optional strings are
// stored as null by the server.
type EmployeeInput struct {
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	Position   string   `json:"position"`
	Department string   `json:"department"`
	Salary     *float64 `json:"salary,omitempty"`
	HireDate   string   `json:"hire_date"`
	Address    string   `json:"address,omitempty"`
}

type ListParams struct {
	Page       int
	Limit      int
	Search     string
	Department string
}

type Pagination struct {
	CurrentPage    int   `json:"currentPage"`
	TotalPages     int   `json:"totalPages"`
	TotalEmployees int64 `json:"totalEmployees"`
	HasNext        bool  `json:"hasNext"`
	HasPrev        bool  `json:"hasPrev"`
}

type EmployeePage struct {
	Employees  []Employee
	Pagination Pagination
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type Stats struct {
	Total         int64             `json:"total"`
	ByDepartment  []DepartmentCount `json:"byDepartment"`
	AverageSalary float64           `json:"averageSalary"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
