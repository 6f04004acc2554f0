package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStatusForPayments(t *testing.T) {
	cases := []struct {
		name   string
		paid   string
		amount string
		want   string
	}{
		{"nothing paid", "0", "600", models.InvoiceDraft},
		{"partial", "300", "600", models.InvoiceSent},
		{"exact", "600", "600", models.InvoicePaid},
		{"over", "700", "600", models.InvoicePaid},
		{"zero amount invoice", "0", "0", models.InvoicePaid},
		{"cents partial", "599.99", "600", models.InvoiceSent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusForPayments(d(tc.paid), d(tc.amount)))
		})
	}
}

func TestInvoicePaidAndRemaining(t *testing.T) {
	inv := models.Invoice{
		Amount: d("600"),
		Payments: []models.Payment{
			{Amount: d("100.50")},
			{Amount: d("199.50")},
		},
	}
	assert.True(t, InvoicePaid(inv).Equal(d("300")))
	assert.True(t, InvoiceRemaining(inv).Equal(d("300")))
}

func TestProjectFigures(t *testing.T) {
	p := models.Project{
		Invoices: []models.Invoice{
			{Amount: d("600"), Payments: []models.Payment{{Amount: d("600")}}},
			{Amount: d("400"), Payments: nil},
		},
		Payouts: []models.Payout{{Amount: d("200")}},
	}
	assert.True(t, ProjectIncome(p).Equal(d("600")), "unpaid invoice face value is not income")
	assert.True(t, ProjectExpenses(p).Equal(d("200")))
	assert.True(t, ProjectProfit(p).Equal(d("400")))
}

func TestEmployeePendingNotClamped(t *testing.T) {
	e := models.Employee{
		Assignments: []models.ProjectEmployee{{PayoutAmount: d("500")}},
		Payouts:     []models.Payout{{Amount: d("700")}},
	}
	assert.True(t, EmployeeTotalPending(e).Equal(d("-200")), "overpayment must stay visible")
}

func TestPayoutsByProject(t *testing.T) {
	alpha := &models.Project{Name: "Alpha"}
	beta := &models.Project{Name: "Beta"}
	e := models.Employee{
		Payouts: []models.Payout{
			{Amount: d("100"), Project: alpha},
			{Amount: d("50"), Project: alpha},
			{Amount: d("25"), Project: beta},
		},
	}
	byProject := PayoutsByProject(e)
	assert.True(t, byProject["Alpha"].Equal(d("150")))
	assert.True(t, byProject["Beta"].Equal(d("25")))
}
