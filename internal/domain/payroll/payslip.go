package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// GeneratePayslipPDF renders a run's stored breakdown to a payslip file
// and returns its path.
func (s *Service) GeneratePayslipPDF(ctx context.Context, tenantID, runID string) (string, error) {
	run, err := s.store.GetRun(ctx, tenantID, runID)
	if err != nil {
		return "", err
	}
	emp, err := s.employees.Get(ctx, tenantID, run.EmployeeID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.payslipDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.payslipDir, run.ID+".pdf")

	result := run.Result

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", emp.FirstName, emp.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		run.PeriodStart.Format("2006-01-02"), run.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Regular Pay: %.2f %s", result.RegularPay, emp.Currency))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Overtime Pay: %.2f %s", result.OvertimePay, emp.Currency))
	pdf.Ln(6)
	for _, line := range result.EarningsBreakdown {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %.2f %s", line.Type, line.Amount, emp.Currency))
		pdf.Ln(6)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range result.DeductionsBreakdown {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %.2f %s", line.Type, line.Amount, emp.Currency))
		pdf.Ln(6)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f %s", result.GrossPay, emp.Currency))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total Deductions: %.2f %s", result.TotalDeductions, emp.Currency))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f %s", result.NetPay, emp.Currency))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
