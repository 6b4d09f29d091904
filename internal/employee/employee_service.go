package employee

import (
	"context"

	employeeerrors "employee-management/internal/employee/errors"
	"employee-management/internal/metrics"
	"employee-management/internal/shared/contextutil"
	"employee-management/internal/shared/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	statsFlightKey = "employees:stats"
)

type Service interface {
	List(ctx context.Context, params ListParams) (EmployeePage, error)
	GetByID(ctx context.Context, id uint64) (EmployeeResponse, error)
	Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, id uint64, req EmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint64) error
	Search(ctx context.Context, term string) ([]EmployeeResponse, error)
	GetStats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Metrics
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithMetrics(repo, nil, logger...)
}

func NewServiceWithMetrics(
	repo Repository,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:    repo,
		metrics: m,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// List resolves search > department > all, then slices the requested page
// out of the full result.
func (s *service) List(ctx context.Context, params ListParams) (EmployeePage, error) {
	params = normalizeListParams(params)
	s.log(ctx).Debug("list employees requested",
		zap.String("search", params.Search),
		zap.String("department", params.Department),
		zap.Int("page", params.Page),
		zap.Int("limit", params.Limit),
	)

	var (
		empls []Employee
		err   error
	)
	switch {
	case params.Search != "":
		empls, err = s.repo.Search(ctx, params.Search)
	case params.Department != "":
		empls, err = s.repo.FindByDepartment(ctx, params.Department)
	default:
		empls, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.log(ctx).Error("list employees failed", zap.Error(err))
		return EmployeePage{}, err
	}

	total := len(empls)
	start, end := pageBounds(total, params.Page, params.Limit)

	return EmployeePage{
		Items: mapToListResponse(empls[start:end]),
		Total: int64(total),
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uint64) (EmployeeResponse, error) {
	s.log(ctx).Debug("get employee by id requested", zap.Uint64("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log(ctx).Error("get employee by id failed", zap.Uint64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if empl == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	return mapToResponse(*empl), nil
}

func (s *service) Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error) {
	s.log(ctx).Debug("create employee requested",
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	empl, err := newEmployeeFromRequest(req)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		s.log(ctx).Warn("create employee persist failed", zap.Error(err))
		s.observe("create", err)
		return EmployeeResponse{}, err
	}
	s.observe("create", nil)

	stored, err := s.repo.FindByID(ctx, empl.ID)
	if err != nil {
		s.log(ctx).Error("create employee reload failed", zap.Uint64("employee_id", empl.ID), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if stored == nil {
		stored = empl
	}

	s.log(ctx).Info("create employee success", zap.Uint64("employee_id", stored.ID))
	return mapToResponse(*stored), nil
}

func (s *service) Update(ctx context.Context, id uint64, req EmployeeRequest) (EmployeeResponse, error) {
	s.log(ctx).Debug("update employee requested", zap.Uint64("employee_id", id))

	empl, err := newEmployeeFromRequest(req)
	if err != nil {
		return EmployeeResponse{}, err
	}

	updated, err := s.repo.Update(ctx, id, empl)
	if err != nil {
		s.log(ctx).Warn("update employee persist failed", zap.Uint64("employee_id", id), zap.Error(err))
		s.observe("update", err)
		return EmployeeResponse{}, err
	}
	if !updated {
		s.observe("update", employeeerrors.ErrEmployeeNotFound)
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	s.observe("update", nil)

	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log(ctx).Error("update employee reload failed", zap.Uint64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if stored == nil {
		// deleted between the update and the reload
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	s.log(ctx).Info("update employee success", zap.Uint64("employee_id", id))
	return mapToResponse(*stored), nil
}

func (s *service) Delete(ctx context.Context, id uint64) error {
	s.log(ctx).Debug("delete employee requested", zap.Uint64("employee_id", id))

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log(ctx).Error("delete employee failed", zap.Uint64("employee_id", id), zap.Error(err))
		s.observe("delete", err)
		return err
	}
	if !deleted {
		s.observe("delete", employeeerrors.ErrEmployeeNotFound)
		return employeeerrors.ErrEmployeeNotFound
	}
	s.observe("delete", nil)

	s.log(ctx).Info("delete employee success", zap.Uint64("employee_id", id))
	return nil
}

func (s *service) Search(ctx context.Context, term string) ([]EmployeeResponse, error) {
	s.log(ctx).Debug("search employees requested", zap.String("term", term))

	empls, err := s.repo.Search(ctx, term)
	if err != nil {
		s.log(ctx).Error("search employees failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(empls), nil
}

// GetStats shares one in-flight aggregation between concurrent callers.
// Nothing is kept once the flight completes.
func (s *service) GetStats(ctx context.Context) (StatsResponse, error) {
	// followers must not inherit the first caller's cancellation
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := s.sf.Do(statsFlightKey, func() (interface{}, error) {
		return s.repo.Stats(flightCtx)
	})
	if err != nil {
		s.log(ctx).Error("get stats failed", zap.Error(err))
		return StatsResponse{}, err
	}
	if shared {
		s.log(ctx).Debug("get stats result shared with concurrent caller")
	}

	return mapToStatsResponse(v.(Stats)), nil
}

func (s *service) observe(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveEmployeeMutation(operation, err)
}

func normalizeListParams(p ListParams) ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// pageBounds returns the slice bounds of page within total items. Pages past
// the end are empty; page and limit are compared before multiplying so a huge
// page cannot overflow.
func pageBounds(total, page, limit int) (int, int) {
	if page-1 >= (total+limit-1)/limit {
		return total, total
	}
	start := (page - 1) * limit
	return start, min(start+limit, total)
}

func newEmployeeFromRequest(req EmployeeRequest) (*Employee, error) {
	hireDate, err := validation.ParseDate(req.HireDate)
	if err != nil {
		return nil, err
	}

	return &Employee{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		Salary:     req.Salary,
		HireDate:   hireDate,
		Address:    req.Address,
	}, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         empl.ID,
		FirstName:  empl.FirstName,
		LastName:   empl.LastName,
		Email:      empl.Email,
		Phone:      empl.Phone,
		Position:   empl.Position,
		Department: empl.Department,
		HireDate:   empl.HireDate.Format("2006-01-02"),
		Address:    empl.Address,
		CreatedAt:  empl.CreatedAt,
		UpdatedAt:  empl.UpdatedAt,
	}
	if empl.Salary != nil {
		salary := empl.Salary.InexactFloat64()
		resp.Salary = &salary
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapToStatsResponse(stats Stats) StatsResponse {
	byDept := make([]DepartmentCountResponse, len(stats.ByDepartment))
	for i, d := range stats.ByDepartment {
		byDept[i] = DepartmentCountResponse{Department: d.Department, Count: d.Count}
	}
	return StatsResponse{
		Total:         stats.Total,
		ByDepartment:  byDept,
		AverageSalary: stats.AverageSalary,
	}
}
