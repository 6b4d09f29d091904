package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         uint64           `gorm:"primaryKey;autoIncrement"`
	FirstName  string           `gorm:"size:50;not null"`
	LastName   string           `gorm:"size:50;not null"`
	Email      string           `gorm:"size:100;not null;uniqueIndex:uq_employees_email"`
	Phone      *string          `gorm:"size:20"`
	Position   string           `gorm:"size:100;not null"`
	Department string           `gorm:"size:100;not null;index"`
	Salary     *decimal.Decimal `gorm:"type:numeric(12,2)"`
	HireDate   time.Time        `gorm:"type:date;not null"`
	Address    *string          `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Employee) TableName() string {
	return "employees"
}

type DepartmentCount struct {
	Department string
	Count      int64
}

type Stats struct {
	Total         int64
	ByDepartment  []DepartmentCount
	AverageSalary float64
}
