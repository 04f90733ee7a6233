package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	barGlyph      = "█"
	minLabelWidth = 4
	labelLayout   = "01-02"
)

// Cell is one bucket column of one chart row.
type Cell struct {
	Category string
	Filled   bool
}

// ColumnWidth returns the width in cells given to each bucket.
func ColumnWidth(chartWidth, bucketCount int) int {
	if bucketCount <= 0 {
		return max(1, chartWidth)
	}
	return max(1, chartWidth/bucketCount)
}

// MaxBucketTotal returns the largest bucket total in data.
func MaxBucketTotal(data *Data) decimal.Decimal {
	maxTotal := decimal.Zero
	for _, b := range data.Buckets {
		if b.Total.GreaterThan(maxTotal) {
			maxTotal = b.Total
		}
	}
	return maxTotal
}

// BarRows lays out the stacked bars as barHeight rows, top row first, with
// one cell per bucket. Columns are scaled against the tallest bucket and each
// column's rows are apportioned among its categories, largest first at the
// bottom.
func BarRows(data *Data, barHeight int) [][]Cell {
	if barHeight <= 0 {
		return nil
	}

	rows := make([][]Cell, barHeight)
	for i := range rows {
		rows[i] = make([]Cell, len(data.Buckets))
	}

	maxTotal := MaxBucketTotal(data)
	for col, bucket := range data.Buckets {
		columnHeight := ScaledHeight(bucket.Total, maxTotal, barHeight)
		if columnHeight == 0 {
			continue
		}

		amounts := make([]decimal.Decimal, len(bucket.Totals))
		for i, ct := range bucket.Totals {
			amounts[i] = ct.Total
		}
		heights := Apportion(amounts, columnHeight)

		// level counts up from the baseline, starting at 1.
		for level := 1; level <= columnHeight; level++ {
			cumulative := 0
			for i, h := range heights {
				cumulative += h
				if level <= cumulative {
					rows[barHeight-level][col] = Cell{Category: bucket.Totals[i].Category, Filled: true}
					break
				}
			}
		}
	}

	return rows
}

// BucketLabels renders the MM-DD start date of every bucket, each truncated
// and padded to columnWidth. Narrow columns produce a blank line.
func BucketLabels(buckets []Bucket, width, columnWidth int) string {
	if columnWidth < minLabelWidth || len(buckets) == 0 {
		return strings.Repeat(" ", max(0, width))
	}

	var b strings.Builder
	for _, bucket := range buckets {
		label := bucket.Start.Format(labelLayout)
		if len(label) > columnWidth {
			label = label[:columnWidth]
		}
		fmt.Fprintf(&b, "%-*s", columnWidth, label)
	}
	return b.String()
}

// RenderChart draws the stacked bar chart into width x height cells: height-1
// bar rows followed by the bucket label row.
func RenderChart(data *Data, width, height int) string {
	if width <= 0 || height <= 1 || len(data.Buckets) == 0 {
		return ""
	}

	columnWidth := ColumnWidth(width, len(data.Buckets))
	rows := BarRows(data, height-1)
	styles := categoryStyles(data)
	blank := strings.Repeat(" ", columnWidth)
	block := strings.Repeat(barGlyph, columnWidth)

	lines := make([]string, 0, height)
	for _, row := range rows {
		var b strings.Builder
		for _, cell := range row {
			if !cell.Filled {
				b.WriteString(blank)
				continue
			}
			b.WriteString(styles[cell.Category].Render(block))
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, BucketLabels(data.Buckets, width, columnWidth))

	return strings.Join(lines, "\n")
}

func categoryStyles(data *Data) map[string]lipgloss.Style {
	styles := make(map[string]lipgloss.Style, len(data.Colors))
	for _, ct := range data.CategoryTotals {
		styles[ct.Category] = lipgloss.NewStyle().Foreground(data.Color(ct.Category))
	}
	return styles
}
