package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uint64) (*Employee, error)
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, id uint64, empl *Employee) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
	Search(ctx context.Context, term string) ([]Employee, error)
	FindByDepartment(ctx context.Context, department string) ([]Employee, error)
	Stats(ctx context.Context) (Stats, error)
	Ping(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const newestFirst = "created_at DESC, id DESC"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order(newestFirst).
		Find(&empls).Error
	if err != nil {
		return nil, wrapError("error fetching employees", err)
	}
	return empls, nil
}

// FindByID returns (nil, nil) when no row has the given id.
func (r *repository) FindByID(ctx context.Context, id uint64) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError("error fetching employee", err)
	}
	return &empl, nil
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	if err := r.db.WithContext(ctx).Create(empl).Error; err != nil {
		return mapRepositoryError("error creating employee", err)
	}
	return nil
}

// Update replaces every mutable column in a single statement and reports
// whether a row matched.
func (r *repository) Update(ctx context.Context, id uint64, empl *Employee) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"first_name": empl.FirstName,
			"last_name":  empl.LastName,
			"email":      empl.Email,
			"phone":      empl.Phone,
			"position":   empl.Position,
			"department": empl.Department,
			"salary":     empl.Salary,
			"hire_date":  empl.HireDate,
			"address":    empl.Address,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, mapRepositoryError("error updating employee", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return false, wrapError("error deleting employee", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Search matches term as a literal, case-insensitive substring of the name,
// email, position or department columns.
func (r *repository) Search(ctx context.Context, term string) ([]Employee, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

	var empls []Employee
	err := r.db.WithContext(ctx).
		Where(`LOWER(first_name) LIKE ? ESCAPE '\'`+
			` OR LOWER(last_name) LIKE ? ESCAPE '\'`+
			` OR LOWER(email) LIKE ? ESCAPE '\'`+
			` OR LOWER(position) LIKE ? ESCAPE '\'`+
			` OR LOWER(department) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern, pattern).
		Order(newestFirst).
		Find(&empls).Error
	if err != nil {
		return nil, wrapError("error searching employees", err)
	}
	return empls, nil
}

func (r *repository) FindByDepartment(ctx context.Context, department string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Order(newestFirst).
		Find(&empls).Error
	if err != nil {
		return nil, wrapError("error fetching employees by department", err)
	}
	return empls, nil
}

func (r *repository) Stats(ctx context.Context) (Stats, error) {
	db := r.db.WithContext(ctx)
	stats := Stats{ByDepartment: make([]DepartmentCount, 0)}

	if err := db.Model(&Employee{}).Count(&stats.Total).Error; err != nil {
		return Stats{}, wrapError("error fetching statistics", err)
	}

	err := db.Model(&Employee{}).
		Select("department, COUNT(*) AS count").
		Group("department").
		Order("department ASC").
		Scan(&stats.ByDepartment).Error
	if err != nil {
		return Stats{}, wrapError("error fetching statistics", err)
	}

	err = db.Model(&Employee{}).
		Select("COALESCE(AVG(salary), 0)").
		Where("salary IS NOT NULL").
		Scan(&stats.AverageSalary).Error
	if err != nil {
		return Stats{}, wrapError("error fetching statistics", err)
	}

	return stats, nil
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func wrapError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
