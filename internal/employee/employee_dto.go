package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRequest is the create/update payload. Every field is replaced on
// update; there is no partial patch.
type EmployeeRequest struct {
	FirstName  string           `json:"first_name" validate:"required,min=2,max=50,alphaspace"`
	LastName   string           `json:"last_name" validate:"required,min=2,max=50,alphaspace"`
	Email      string           `json:"email" validate:"required,email"`
	Phone      *string          `json:"phone,omitempty" validate:"omitempty,phone"`
	Position   string           `json:"position" validate:"required,min=2,max=100"`
	Department string           `json:"department" validate:"required,min=2,max=100"`
	Salary     *decimal.Decimal `json:"salary,omitempty" validate:"omitempty,gte=0,lte=9999999999.99"`
	HireDate   string           `json:"hire_date" validate:"required,isodate,notfuture"`
	Address    *string          `json:"address,omitempty" validate:"omitempty,max=500"`
}

// Normalize trims every string, turns blank optional fields into nil and
// canonicalizes the email address.
func (r *EmployeeRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = trimOptional(r.Phone)
	r.Position = strings.TrimSpace(r.Position)
	r.Department = strings.TrimSpace(r.Department)
	r.HireDate = strings.TrimSpace(r.HireDate)
	r.Address = trimOptional(r.Address)
}

type SearchRequest struct {
	SearchTerm *string `json:"searchTerm" validate:"omitnil,min=1,max=100"`
}

func (r *SearchRequest) Normalize() {
	if r.SearchTerm != nil {
		term := strings.TrimSpace(*r.SearchTerm)
		r.SearchTerm = &term
	}
}

// Term returns the trimmed search term, empty when absent.
func (r SearchRequest) Term() string {
	if r.SearchTerm == nil {
		return ""
	}
	return *r.SearchTerm
}

type ListParams struct {
	Search     string
	Department string
	Page       int
	Limit      int
}

type EmployeeResponse struct {
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

type EmployeePage struct {
	Items []EmployeeResponse
	Total int64
	Page  int
	Limit int
}

type DepartmentCountResponse struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type StatsResponse struct {
	Total         int64                     `json:"total"`
	ByDepartment  []DepartmentCountResponse `json:"byDepartment"`
	AverageSalary float64                   `json:"averageSalary"`
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
