package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/ledger"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

// ReportService derives the tabular report shapes from the full entity set.
// Every figure is recomputed from raw records at call time.
type ReportService struct{ DB *gorm.DB }

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{DB: db} }

type ProjectReportRow struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Client        string          `json:"client"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Profit        decimal.Decimal `json:"profit"`
	Status        string          `json:"status"`
}

type ProjectReportTotals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Profit        decimal.Decimal `json:"profit"`
}

type EmployeeReportRow struct {
	ID               uint                       `json:"id"`
	Name             string                     `json:"name"`
	Email            string                     `json:"email"`
	Role             string                     `json:"role,omitempty"`
	TotalPayouts     decimal.Decimal            `json:"totalPayouts"`
	ProjectsWorkedOn int                        `json:"projectsWorkedOn"`
	PayoutsByProject map[string]decimal.Decimal `json:"payoutsByProject"`
}

type EmployeeReportTotals struct {
	TotalPayouts decimal.Decimal `json:"totalPayouts"`
}

// TransactionRow is one entry in the system-wide money movement history.
// Payments carry positive amounts (income); payouts are negated (expense).
type TransactionRow struct {
	Date    time.Time       `json:"date"`
	Type    string          `json:"type"`
	Project string          `json:"project"`
	Amount  decimal.Decimal `json:"amount"`
	Details string          `json:"details"`
}

// Projects builds one row per project plus system-wide totals.
func (s *ReportService) Projects() ([]ProjectReportRow, ProjectReportTotals, error) {
	var projects []models.Project
	if err := s.DB.Preload("Invoices.Payments").Preload("Payouts").Find(&projects).Error; err != nil {
		return nil, ProjectReportTotals{}, err
	}
	rows := make([]ProjectReportRow, 0, len(projects))
	var totals ProjectReportTotals
	for _, p := range projects {
		income := ledger.ProjectIncome(p)
		expenses := ledger.ProjectExpenses(p)
		profit := income.Sub(expenses)
		rows = append(rows, ProjectReportRow{
			ID:            p.ID,
			Name:          p.Name,
			Client:        p.Client,
			TotalAmount:   p.TotalAmount,
			TotalIncome:   income,
			TotalExpenses: expenses,
			Profit:        profit,
			Status:        p.Status,
		})
		totals.TotalIncome = totals.TotalIncome.Add(income)
		totals.TotalExpenses = totals.TotalExpenses.Add(expenses)
		totals.Profit = totals.Profit.Add(profit)
	}
	return rows, totals, nil
}

// Employees builds one row per employee plus system-wide totals.
func (s *ReportService) Employees() ([]EmployeeReportRow, EmployeeReportTotals, error) {
	var employees []models.Employee
	if err := s.DB.Preload("Payouts.Project").Preload("Assignments").Find(&employees).Error; err != nil {
		return nil, EmployeeReportTotals{}, err
	}
	rows := make([]EmployeeReportRow, 0, len(employees))
	var totals EmployeeReportTotals
	for _, e := range employees {
		payouts := ledger.EmployeeTotalPayouts(e)
		rows = append(rows, EmployeeReportRow{
			ID:               e.ID,
			Name:             e.Name,
			Email:            e.Email,
			Role:             e.Role,
			TotalPayouts:     payouts,
			ProjectsWorkedOn: len(e.Assignments),
			PayoutsByProject: ledger.PayoutsByProject(e),
		})
		totals.TotalPayouts = totals.TotalPayouts.Add(payouts)
	}
	return rows, totals, nil
}

// Transactions is the union of all payments (income) and payouts (expense,
// negated) sorted by date descending. The sort is stable so entries sharing
// a date keep their insertion order.
func (s *ReportService) Transactions() ([]TransactionRow, error) {
	var payments []models.Payment
	if err := s.DB.Preload("Invoice.Project").Order("id asc").Find(&payments).Error; err != nil {
		return nil, err
	}
	var payouts []models.Payout
	if err := s.DB.Preload("Project").Preload("Employee").Order("id asc").Find(&payouts).Error; err != nil {
		return nil, err
	}

	rows := make([]TransactionRow, 0, len(payments)+len(payouts))
	for _, p := range payments {
		project := ""
		details := ""
		if p.Invoice != nil {
			details = "Invoice: " + p.Invoice.InvoiceNumber
			if p.Invoice.Project != nil {
				project = p.Invoice.Project.Name
			}
		}
		rows = append(rows, TransactionRow{
			Date:    p.PaymentDate,
			Type:    "Payment",
			Project: project,
			Amount:  p.Amount,
			Details: details,
		})
	}
	for _, p := range payouts {
		project := ""
		details := ""
		if p.Project != nil {
			project = p.Project.Name
		}
		if p.Employee != nil {
			details = "Employee: " + p.Employee.Name
		}
		rows = append(rows, TransactionRow{
			Date:    p.PayoutDate,
			Type:    "Payout",
			Project: project,
			Amount:  p.Amount.Neg(),
			Details: details,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows, nil
}

// CSVFilename names a report download: "<type>-report-<date>.csv".
func CSVFilename(reportType string, now time.Time) string {
	return fmt.Sprintf("%s-report-%s.csv", reportType, now.Format("2006-01-02"))
}

// WriteCSV streams the named report type as CSV with a fixed header row.
func (s *ReportService) WriteCSV(w io.Writer, reportType string) error {
	cw := csv.NewWriter(w)
	switch reportType {
	case "projects":
		rows, totals, err := s.Projects()
		if err != nil {
			return err
		}
		if err := cw.Write([]string{"Project Name", "Client", "Total Amount", "Total Income", "Total Expenses", "Profit", "Status"}); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write([]string{r.Name, r.Client, r.TotalAmount.String(), r.TotalIncome.String(), r.TotalExpenses.String(), r.Profit.String(), r.Status}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{"TOTAL", "", "", totals.TotalIncome.String(), totals.TotalExpenses.String(), totals.Profit.String(), ""}); err != nil {
			return err
		}
	case "employees":
		rows, totals, err := s.Employees()
		if err != nil {
			return err
		}
		if err := cw.Write([]string{"Employee Name", "Email", "Role", "Total Payouts", "Projects Worked On"}); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write([]string{r.Name, r.Email, r.Role, r.TotalPayouts.String(), fmt.Sprintf("%d", r.ProjectsWorkedOn)}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{"TOTAL", "", "", totals.TotalPayouts.String(), ""}); err != nil {
			return err
		}
	case "transactions":
		rows, err := s.Transactions()
		if err != nil {
			return err
		}
		if err := cw.Write([]string{"Date", "Type", "Project", "Amount", "Details"}); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write([]string{r.Date.Format("2006-01-02"), r.Type, r.Project, r.Amount.String(), r.Details}); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown report type: %s", reportType)
	}
	cw.Flush()
	return cw.Error()
}
