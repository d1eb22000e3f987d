package employeehandler

import (
	"testing"

	"payrollhr/internal/domain/employee"
)

func TestEmployeePayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload employeePayload
		wantErr bool
	}{
		{
			name: "valid minimal",
			payload: employeePayload{
				FirstName:  "Ana",
				LastName:   "Reyes",
				Email:      "ana@example.com",
				BaseSalary: 30000,
			},
		},
		{
			name: "missing first name",
			payload: employeePayload{
				LastName: "Reyes",
				Email:    "ana@example.com",
			},
			wantErr: true,
		},
		{
			name: "negative salary",
			payload: employeePayload{
				FirstName:  "Ana",
				LastName:   "Reyes",
				Email:      "ana@example.com",
				BaseSalary: -1,
			},
			wantErr: true,
		},
		{
			name: "bad status",
			payload: employeePayload{
				FirstName: "Ana",
				LastName:  "Reyes",
				Email:     "ana@example.com",
				Status:    "retired",
			},
			wantErr: true,
		},
		{
			name: "end date before start date",
			payload: employeePayload{
				FirstName: "Ana",
				LastName:  "Reyes",
				Email:     "ana@example.com",
				StartDate: "2026-02-01",
				EndDate:   "2026-01-01",
			},
			wantErr: true,
		},
		{
			name: "bad date format",
			payload: employeePayload{
				FirstName: "Ana",
				LastName:  "Reyes",
				Email:     "ana@example.com",
				StartDate: "01/02/2026",
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			v, _ := tc.payload.validate()
			if tc.wantErr && !v.HasIssues() {
				t.Fatal("expected validation issues")
			}
			if !tc.wantErr && v.HasIssues() {
				t.Fatalf("unexpected validation issues: %v", v.Issues())
			}
		})
	}
}

func TestEmployeePayloadDefaults(t *testing.T) {
	v, emp := employeePayload{
		FirstName:  "Ana",
		LastName:   "Reyes",
		Email:      "ana@example.com",
		BaseSalary: 30000,
	}.validate()
	if v.HasIssues() {
		t.Fatalf("unexpected validation issues: %v", v.Issues())
	}
	if emp.Currency != "PHP" {
		t.Fatalf("expected default currency PHP, got %q", emp.Currency)
	}
	if emp.Status != employee.StatusActive {
		t.Fatalf("expected default status active, got %q", emp.Status)
	}
}
