package attendance

import (
	"context"
	"time"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) RecordDay(ctx context.Context, tenantID string, record DayRecord) (string, error) {
	return s.store.CreateRecord(ctx, tenantID, record)
}

func (s *Service) Schedule(ctx context.Context, tenantID, employeeID string) (WorkSchedule, error) {
	schedule, found, err := s.store.GetSchedule(ctx, tenantID, employeeID)
	if err != nil {
		return WorkSchedule{}, err
	}
	if !found {
		return DefaultSchedule(), nil
	}
	return schedule, nil
}

func (s *Service) SetSchedule(ctx context.Context, tenantID, employeeID string, schedule WorkSchedule) error {
	return s.store.UpsertSchedule(ctx, tenantID, employeeID, schedule)
}

// PeriodDetail computes per-day hours and statuses for a pay period.
func (s *Service) PeriodDetail(ctx context.Context, tenantID, employeeID string, start, end time.Time) ([]DayHours, error) {
	schedule, err := s.Schedule(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListRecords(ctx, tenantID, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	days := make([]DayHours, 0, len(records))
	for _, record := range records {
		days = append(days, ComputeDay(record, schedule))
	}
	return days, nil
}

// PeriodSummary aggregates a pay period into the summary the payroll
// calculator consumes.
func (s *Service) PeriodSummary(ctx context.Context, tenantID, employeeID string, start, end time.Time) (PeriodSummary, error) {
	days, err := s.PeriodDetail(ctx, tenantID, employeeID, start, end)
	if err != nil {
		return PeriodSummary{}, err
	}
	return Summarize(days), nil
}
