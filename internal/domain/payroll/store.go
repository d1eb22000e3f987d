package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetSettings(ctx context.Context, tenantID string) (Settings, bool, error) {
	var settings Settings
	var bracketsJSON, schedulesJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT working_days_per_month, working_hours_per_day, overtime_multiplier, tax_brackets, contribution_schedules
    FROM payroll_settings
    WHERE tenant_id = $1
  `, tenantID).Scan(&settings.WorkingDaysPerMonth, &settings.WorkingHoursPerDay,
		&settings.OvertimeMultiplier, &bracketsJSON, &schedulesJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, false, nil
	}
	if err != nil {
		return Settings{}, false, err
	}

	if err := json.Unmarshal(bracketsJSON, &settings.TaxBrackets); err != nil {
		return Settings{}, false, err
	}
	var schedules []ContributionSchedule
	if err := json.Unmarshal(schedulesJSON, &schedules); err != nil {
		return Settings{}, false, err
	}
	if len(schedules) == 3 {
		settings.SSS, settings.PhilHealth, settings.PagIBIG = schedules[0], schedules[1], schedules[2]
	}
	return settings, true, nil
}

func (s *Store) UpsertSettings(ctx context.Context, tenantID string, settings Settings) error {
	bracketsJSON, err := json.Marshal(settings.TaxBrackets)
	if err != nil {
		return err
	}
	schedulesJSON, err := json.Marshal(settings.Schedules())
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO payroll_settings (tenant_id, working_days_per_month, working_hours_per_day, overtime_multiplier, tax_brackets, contribution_schedules)
    VALUES ($1,$2,$3,$4,$5,$6)
    ON CONFLICT (tenant_id) DO UPDATE SET
      working_days_per_month = EXCLUDED.working_days_per_month,
      working_hours_per_day = EXCLUDED.working_hours_per_day,
      overtime_multiplier = EXCLUDED.overtime_multiplier,
      tax_brackets = EXCLUDED.tax_brackets,
      contribution_schedules = EXCLUDED.contribution_schedules
  `, tenantID, settings.WorkingDaysPerMonth, settings.WorkingHoursPerDay,
		settings.OvertimeMultiplier, bracketsJSON, schedulesJSON)
	return err
}

func (s *Store) ListEarnings(ctx context.Context, tenantID, employeeID string) ([]Earning, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, earning_type, amount, frequency, is_active, effective_date, end_date
    FROM employee_earnings
    WHERE tenant_id = $1 AND employee_id = $2
    ORDER BY created_at
  `, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earnings []Earning
	for rows.Next() {
		var earning Earning
		if err := rows.Scan(&earning.ID, &earning.EmployeeID, &earning.Type, &earning.Amount,
			&earning.Frequency, &earning.IsActive, &earning.EffectiveDate, &earning.EndDate); err != nil {
			return nil, err
		}
		earnings = append(earnings, earning)
	}
	return earnings, rows.Err()
}

// ListActiveEarnings applies the active and effective-window pre-filtering
// the calculator expects its caller to have done.
func (s *Store) ListActiveEarnings(ctx context.Context, tenantID, employeeID string, asOf time.Time) ([]Earning, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, earning_type, amount, frequency, is_active, effective_date, end_date
    FROM employee_earnings
    WHERE tenant_id = $1 AND employee_id = $2 AND is_active
      AND (effective_date IS NULL OR effective_date <= $3)
      AND (end_date IS NULL OR end_date >= $3)
    ORDER BY created_at
  `, tenantID, employeeID, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earnings []Earning
	for rows.Next() {
		var earning Earning
		if err := rows.Scan(&earning.ID, &earning.EmployeeID, &earning.Type, &earning.Amount,
			&earning.Frequency, &earning.IsActive, &earning.EffectiveDate, &earning.EndDate); err != nil {
			return nil, err
		}
		earnings = append(earnings, earning)
	}
	return earnings, rows.Err()
}

func (s *Store) CreateEarning(ctx context.Context, tenantID string, earning Earning) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_earnings (tenant_id, employee_id, earning_type, amount, frequency, is_active, effective_date, end_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, tenantID, earning.EmployeeID, earning.Type, earning.Amount, earning.Frequency,
		earning.IsActive, earning.EffectiveDate, earning.EndDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListDeductions(ctx context.Context, tenantID, employeeID string) ([]Deduction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, deduction_type, amount, percentage, frequency, is_active, effective_date, end_date
    FROM employee_deductions
    WHERE tenant_id = $1 AND employee_id = $2
    ORDER BY created_at
  `, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []Deduction
	for rows.Next() {
		var deduction Deduction
		if err := rows.Scan(&deduction.ID, &deduction.EmployeeID, &deduction.Type, &deduction.Amount,
			&deduction.Percentage, &deduction.Frequency, &deduction.IsActive, &deduction.EffectiveDate, &deduction.EndDate); err != nil {
			return nil, err
		}
		deductions = append(deductions, deduction)
	}
	return deductions, rows.Err()
}

func (s *Store) ListActiveDeductions(ctx context.Context, tenantID, employeeID string, asOf time.Time) ([]Deduction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, deduction_type, amount, percentage, frequency, is_active, effective_date, end_date
    FROM employee_deductions
    WHERE tenant_id = $1 AND employee_id = $2 AND is_active
      AND (effective_date IS NULL OR effective_date <= $3)
      AND (end_date IS NULL OR end_date >= $3)
    ORDER BY created_at
  `, tenantID, employeeID, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []Deduction
	for rows.Next() {
		var deduction Deduction
		if err := rows.Scan(&deduction.ID, &deduction.EmployeeID, &deduction.Type, &deduction.Amount,
			&deduction.Percentage, &deduction.Frequency, &deduction.IsActive, &deduction.EffectiveDate, &deduction.EndDate); err != nil {
			return nil, err
		}
		deductions = append(deductions, deduction)
	}
	return deductions, rows.Err()
}

func (s *Store) CreateDeduction(ctx context.Context, tenantID string, deduction Deduction) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_deductions (tenant_id, employee_id, deduction_type, amount, percentage, frequency, is_active, effective_date, end_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, tenantID, deduction.EmployeeID, deduction.Type, deduction.Amount, deduction.Percentage,
		deduction.Frequency, deduction.IsActive, deduction.EffectiveDate, deduction.EndDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) RunStatus(ctx context.Context, tenantID, employeeID string, periodStart, periodEnd time.Time) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, `
    SELECT status FROM payroll_runs
    WHERE tenant_id = $1 AND employee_id = $2 AND period_start = $3 AND period_end = $4
  `, tenantID, employeeID, periodStart, periodEnd).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

func (s *Store) UpsertRun(ctx context.Context, tenantID, employeeID string, periodStart, periodEnd time.Time, result Result) (string, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO payroll_runs (tenant_id, employee_id, period_start, period_end, status, gross_pay, total_deductions, net_pay, result)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    ON CONFLICT (tenant_id, employee_id, period_start, period_end) DO UPDATE SET
      gross_pay = EXCLUDED.gross_pay,
      total_deductions = EXCLUDED.total_deductions,
      net_pay = EXCLUDED.net_pay,
      result = EXCLUDED.result
    RETURNING id
  `, tenantID, employeeID, periodStart, periodEnd, RunStatusDraft,
		result.GrossPay, result.TotalDeductions, result.NetPay, resultJSON).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetRun(ctx context.Context, tenantID, runID string) (Run, error) {
	var run Run
	var resultJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, period_start, period_end, status, result, created_at
    FROM payroll_runs
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, runID).Scan(&run.ID, &run.EmployeeID, &run.PeriodStart, &run.PeriodEnd,
		&run.Status, &resultJSON, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) ListRuns(ctx context.Context, tenantID, employeeID string, limit, offset int) ([]Run, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, period_start, period_end, status, result, created_at
    FROM payroll_runs
    WHERE tenant_id = $1 AND ($2 = '' OR employee_id::text = $2)
    ORDER BY period_start DESC
    LIMIT $3 OFFSET $4
  `, tenantID, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var resultJSON []byte
		if err := rows.Scan(&run.ID, &run.EmployeeID, &run.PeriodStart, &run.PeriodEnd,
			&run.Status, &resultJSON, &run.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) MarkRunPaid(ctx context.Context, tenantID, runID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_runs SET status = $3
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, runID, RunStatusPaid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return nil
}
