// Package ledger holds the pure financial derivations of the system. Every
// figure exposed by the API is recomputed here from raw entity sets on each
// read; nothing is persisted or cached, so totals can never drift from the
// records they are derived from.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

// InvoicePaid returns the sum of all recorded payments for the invoice.
func InvoicePaid(inv models.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, p := range inv.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// InvoiceRemaining returns the invoice face value minus recorded payments.
func InvoiceRemaining(inv models.Invoice) decimal.Decimal {
	return inv.Amount.Sub(InvoicePaid(inv))
}

// StatusForPayments returns the invoice status implied by the total paid
// against the face amount: paid when fully covered, sent when partially,
// draft when nothing has been received. A manually set overdue status
// survives only until the next payment mutation runs this rule.
func StatusForPayments(totalPaid, amount decimal.Decimal) string {
	switch {
	case totalPaid.GreaterThanOrEqual(amount):
		return models.InvoicePaid
	case totalPaid.GreaterThan(decimal.Zero):
		return models.InvoiceSent
	default:
		return models.InvoiceDraft
	}
}

// ProjectIncome returns realized income: the sum of payments received across
// the project's invoices. Invoice face values do not count as income.
func ProjectIncome(p models.Project) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range p.Invoices {
		total = total.Add(InvoicePaid(inv))
	}
	return total
}

// ProjectExpenses returns the sum of all payouts recorded for the project.
func ProjectExpenses(p models.Project) decimal.Decimal {
	total := decimal.Zero
	for _, po := range p.Payouts {
		total = total.Add(po.Amount)
	}
	return total
}

// ProjectProfit is income minus expenses.
func ProjectProfit(p models.Project) decimal.Decimal {
	return ProjectIncome(p).Sub(ProjectExpenses(p))
}

// EmployeeTotalPayouts sums the employee's payouts across all projects.
func EmployeeTotalPayouts(e models.Employee) decimal.Decimal {
	total := decimal.Zero
	for _, po := range e.Payouts {
		total = total.Add(po.Amount)
	}
	return total
}

// EmployeeTotalAllocated sums the budgeted payout allocation across all of
// the employee's project assignments.
func EmployeeTotalAllocated(e models.Employee) decimal.Decimal {
	total := decimal.Zero
	for _, a := range e.Assignments {
		total = total.Add(a.PayoutAmount)
	}
	return total
}

// EmployeeTotalPending is allocated minus paid out. It goes negative when an
// employee has been paid more than their allocation; the value is not
// clamped so overpayment stays visible.
func EmployeeTotalPending(e models.Employee) decimal.Decimal {
	return EmployeeTotalAllocated(e).Sub(EmployeeTotalPayouts(e))
}

// PayoutsByProject folds the employee's payouts into a project-name keyed
// sum. Payouts must have their Project association loaded.
func PayoutsByProject(e models.Employee) map[string]decimal.Decimal {
	byProject := make(map[string]decimal.Decimal)
	for _, po := range e.Payouts {
		name := ""
		if po.Project != nil {
			name = po.Project.Name
		}
		byProject[name] = byProject[name].Add(po.Amount)
	}
	return byProject
}
