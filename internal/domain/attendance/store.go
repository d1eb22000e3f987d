package attendance

import (
	"context"
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

func (s *Store) ListRecords(ctx context.Context, tenantID, employeeID string, start, end time.Time) ([]DayRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, clock_in, clock_out, break_start, break_end
    FROM attendance_records
    WHERE tenant_id = $1 AND employee_id = $2 AND work_date BETWEEN $3 AND $4
    ORDER BY work_date
  `, tenantID, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []DayRecord
	for rows.Next() {
		var record DayRecord
		if err := rows.Scan(&record.ID, &record.EmployeeID, &record.Date, &record.ClockIn, &record.ClockOut, &record.BreakStart, &record.BreakEnd); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Store) CreateRecord(ctx context.Context, tenantID string, record DayRecord) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (tenant_id, employee_id, work_date, clock_in, clock_out, break_start, break_end)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    ON CONFLICT (tenant_id, employee_id, work_date) DO UPDATE SET
      clock_in = EXCLUDED.clock_in,
      clock_out = EXCLUDED.clock_out,
      break_start = EXCLUDED.break_start,
      break_end = EXCLUDED.break_end
    RETURNING id
  `, tenantID, record.EmployeeID, record.Date, record.ClockIn, record.ClockOut, record.BreakStart, record.BreakEnd).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetSchedule(ctx context.Context, tenantID, employeeID string) (WorkSchedule, bool, error) {
	var schedule WorkSchedule
	err := s.DB.QueryRow(ctx, `
    SELECT start_time, end_time, break_duration, regular_hours_per_day, overtime_multiplier, grace_minutes
    FROM work_schedules
    WHERE tenant_id = $1 AND employee_id = $2
  `, tenantID, employeeID).Scan(
		&schedule.StartTime, &schedule.EndTime, &schedule.BreakDuration,
		&schedule.RegularHoursPerDay, &schedule.OvertimeMultiplier, &schedule.GraceMinutes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return WorkSchedule{}, false, nil
	}
	if err != nil {
		return WorkSchedule{}, false, err
	}
	return schedule, true, nil
}

func (s *Store) UpsertSchedule(ctx context.Context, tenantID, employeeID string, schedule WorkSchedule) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO work_schedules (tenant_id, employee_id, start_time, end_time, break_duration, regular_hours_per_day, overtime_multiplier, grace_minutes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (tenant_id, employee_id) DO UPDATE SET
      start_time = EXCLUDED.start_time,
      end_time = EXCLUDED.end_time,
      break_duration = EXCLUDED.break_duration,
      regular_hours_per_day = EXCLUDED.regular_hours_per_day,
      overtime_multiplier = EXCLUDED.overtime_multiplier,
      grace_minutes = EXCLUDED.grace_minutes
  `, tenantID, employeeID, schedule.StartTime, schedule.EndTime, schedule.BreakDuration,
		schedule.RegularHoursPerDay, schedule.OvertimeMultiplier, schedule.GraceMinutes)
	return err
}
