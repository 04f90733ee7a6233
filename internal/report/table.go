package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const categoryColumnWidth = 16

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// Share returns part as a percentage of whole, or zero for a zero whole.
func Share(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1)
}

// RenderCategoryTable lists every category with its total and share of the
// grand total, in the same order and colors as the chart.
func RenderCategoryTable(data *Data) string {
	if len(data.CategoryTotals) == 0 {
		return NoExpensesMessage
	}

	lines := make([]string, 0, len(data.CategoryTotals)+2)
	lines = append(lines, tableHeaderStyle.Render(
		fmt.Sprintf("%-*s  %12s  %6s", categoryColumnWidth, "Category", "Amount", "Share")))

	for _, ct := range data.CategoryTotals {
		name := truncate(ct.Category, categoryColumnWidth-2)
		swatch := lipgloss.NewStyle().Foreground(data.Color(ct.Category)).Render("■")
		lines = append(lines, fmt.Sprintf("%s %-*s  %12s  %5s%%",
			swatch, categoryColumnWidth-2, name, ct.Total.StringFixed(2),
			Share(ct.Total, data.GrandTotal).StringFixed(1)))
	}

	lines = append(lines, fmt.Sprintf("%-*s  %12s", categoryColumnWidth, "Total", data.GrandTotal.StringFixed(2)))
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
