package payroll

import (
	"context"
	"errors"
	"time"

	"payrollhr/internal/domain/employee"
)

// AttendanceProvider supplies the aggregated attendance totals for a pay
// period. Implemented by the attendance service.
type AttendanceProvider interface {
	PeriodTotals(ctx context.Context, tenantID, employeeID string, start, end time.Time) (AttendanceSummary, error)
}

// EmployeeSource supplies base employee data for a run.
type EmployeeSource interface {
	Get(ctx context.Context, tenantID, employeeID string) (employee.Employee, error)
}

type Service struct {
	store      *Store
	employees  EmployeeSource
	attendance AttendanceProvider
	payslipDir string
}

func NewService(store *Store, employees EmployeeSource, attendance AttendanceProvider, payslipDir string) *Service {
	return &Service{store: store, employees: employees, attendance: attendance, payslipDir: payslipDir}
}

// Settings returns the tenant's persisted payroll configuration, falling
// back to the hard-coded defaults when none has been saved.
func (s *Service) Settings(ctx context.Context, tenantID string) (Settings, error) {
	settings, found, err := s.store.GetSettings(ctx, tenantID)
	if err != nil {
		return Settings{}, err
	}
	if !found {
		return DefaultSettings(), nil
	}
	return settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, tenantID string, settings Settings) error {
	return s.store.UpsertSettings(ctx, tenantID, settings)
}

func (s *Service) ListEarnings(ctx context.Context, tenantID, employeeID string) ([]Earning, error) {
	return s.store.ListEarnings(ctx, tenantID, employeeID)
}

func (s *Service) AddEarning(ctx context.Context, tenantID string, earning Earning) (string, error) {
	return s.store.CreateEarning(ctx, tenantID, earning)
}

func (s *Service) ListDeductions(ctx context.Context, tenantID, employeeID string) ([]Deduction, error) {
	return s.store.ListDeductions(ctx, tenantID, employeeID)
}

func (s *Service) AddDeduction(ctx context.Context, tenantID string, deduction Deduction) (string, error) {
	return s.store.CreateDeduction(ctx, tenantID, deduction)
}

func (s *Service) GetRun(ctx context.Context, tenantID, runID string) (Run, error) {
	return s.store.GetRun(ctx, tenantID, runID)
}

func (s *Service) ListRuns(ctx context.Context, tenantID, employeeID string, limit, offset int) ([]Run, error) {
	return s.store.ListRuns(ctx, tenantID, employeeID, limit, offset)
}

func (s *Service) MarkRunPaid(ctx context.Context, tenantID, runID string) error {
	return s.store.MarkRunPaid(ctx, tenantID, runID)
}

// RunPeriod assembles a calculation's inputs, invokes the pure calculator,
// and persists the breakdown. A run already marked paid is never
// recalculated.
func (s *Service) RunPeriod(ctx context.Context, tenantID, employeeID string, periodStart, periodEnd time.Time) (Run, error) {
	status, err := s.store.RunStatus(ctx, tenantID, employeeID, periodStart, periodEnd)
	if err != nil {
		return Run{}, err
	}
	if status == RunStatusPaid {
		return Run{}, ErrRunAlreadyPaid
	}

	emp, err := s.employees.Get(ctx, tenantID, employeeID)
	if errors.Is(err, employee.ErrNotFound) {
		return Run{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Run{}, err
	}

	settings, err := s.Settings(ctx, tenantID)
	if err != nil {
		return Run{}, err
	}

	summary, err := s.attendance.PeriodTotals(ctx, tenantID, employeeID, periodStart, periodEnd)
	if err != nil {
		return Run{}, err
	}

	earnings, err := s.store.ListActiveEarnings(ctx, tenantID, employeeID, periodEnd)
	if err != nil {
		return Run{}, err
	}
	deductions, err := s.store.ListActiveDeductions(ctx, tenantID, employeeID, periodEnd)
	if err != nil {
		return Run{}, err
	}

	result := Calculate(emp.BaseSalary, summary, earnings, deductions, settings)

	id, err := s.store.UpsertRun(ctx, tenantID, employeeID, periodStart, periodEnd, result)
	if err != nil {
		return Run{}, err
	}

	return Run{
		ID:          id,
		EmployeeID:  employeeID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      RunStatusDraft,
		Result:      result,
	}, nil
}
