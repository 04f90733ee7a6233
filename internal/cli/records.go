package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fino/internal/model"
)

const (
	dateWidth     = 10
	amountWidth   = 12
	kindWidth     = 8
	categoryWidth = 16
	idWidth       = 8
)

// FormatRecords renders records as an aligned table, one per line.
func FormatRecords(records []model.Record) string {
	if len(records) == 0 {
		return SubtleStyle.Render("No transactions found")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-*s  %*s  %-*s  %-*s  %-*s  %s",
		dateWidth, "Date",
		amountWidth, "Amount",
		kindWidth, "Type",
		categoryWidth, "Category",
		idWidth, "Id",
		"Description")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, r := range records {
		amount := fmt.Sprintf("%*s", amountWidth, r.Amount.StringFixed(2))
		if r.IsExpense() {
			amount = ExpenseStyle.Render(amount)
		} else {
			amount = IncomeStyle.Render(amount)
		}
		fmt.Fprintf(&b, "%-*s  %s  %-*s  %-*s  %-*s  %s\n",
			dateWidth, r.Date.Format(model.DateLayout),
			amount,
			kindWidth, string(r.Kind),
			categoryWidth, clip(r.Category, categoryWidth),
			idWidth, clip(r.ID, idWidth),
			r.Description)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatBudgets renders category budgets as an aligned table.
func FormatBudgets(budgets []model.Budget) string {
	if len(budgets) == 0 {
		return SubtleStyle.Render("No budgets set")
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-*s  %*s", categoryWidth, "Category", amountWidth, "Budget")))
	for _, budget := range budgets {
		fmt.Fprintf(&b, "\n%-*s  %*s", categoryWidth, clip(budget.Category, categoryWidth), amountWidth, budget.Amount.StringFixed(2))
	}
	return b.String()
}

func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
