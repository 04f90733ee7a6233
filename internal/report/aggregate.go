// Package report turns a snapshot of ledger records into time-bucketed,
// per-category spending totals and renders them as stacked bars and a pie.
//
// Everything in this package is a pure function of its inputs.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// maxAutoBuckets caps the number of buckets produced for long ranges.
const maxAutoBuckets = 20

// Palette is cycled positionally over the sorted category list.
var Palette = []lipgloss.Color{
	lipgloss.Color("6"),  // cyan
	lipgloss.Color("5"),  // magenta
	lipgloss.Color("3"),  // yellow
	lipgloss.Color("2"),  // green
	lipgloss.Color("4"),  // blue
	lipgloss.Color("1"),  // red
	lipgloss.Color("14"), // light cyan
	lipgloss.Color("13"), // light magenta
	lipgloss.Color("11"), // light yellow
	lipgloss.Color("10"), // light green
	lipgloss.Color("12"), // light blue
}

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Bucket is a contiguous date sub-range of a report.
type Bucket struct {
	Start  time.Time
	End    time.Time
	Totals []CategoryTotal // descending by Total
	Total  decimal.Decimal
}

// Data is the aggregated result of one report invocation.
type Data struct {
	Start          time.Time
	End            time.Time
	Colors         map[string]lipgloss.Color
	Buckets        []Bucket
	CategoryTotals []CategoryTotal // descending by Total
	GrandTotal     decimal.Decimal
	BucketDays     int
}

// Color returns the color assigned to category, falling back to white.
func (d *Data) Color(category string) lipgloss.Color {
	if c, ok := d.Colors[category]; ok {
		return c
	}
	return lipgloss.Color("7")
}

// Title describes the range and bucket width.
func (d *Data) Title() string {
	return fmt.Sprintf("%s - %s (%d-day buckets)",
		d.Start.Format("02.01.2006"), d.End.Format("02.01.2006"), d.BucketDays)
}

// RangeDays returns the inclusive number of days in [start, end].
func RangeDays(start, end time.Time) int {
	return model.DaysBetween(start, end) + 1
}

// AutoBucketDays picks a bucket width for the range so that the chart stays
// readable: daily up to a week, weekly up to a quarter, fortnightly up to a
// year, and about twenty buckets beyond that.
func AutoBucketDays(start, end time.Time) int {
	days := RangeDays(start, end)
	switch {
	case days <= 7:
		return 1
	case days <= 90:
		return 7
	case days <= 365:
		return 14
	default:
		return (days + maxAutoBuckets - 1) / maxAutoBuckets
	}
}

// BucketCount returns ceil(rangeDays / bucketDays), minimum 1.
func BucketCount(rangeDays, bucketDays int) int {
	if bucketDays <= 0 || rangeDays <= 0 {
		return 1
	}
	return max(1, (rangeDays+bucketDays-1)/bucketDays)
}

// BucketIndex returns the bucket a date falls into. Dates before start land in
// bucket 0 and dates past the last bucket are clamped into it.
func BucketIndex(start, date time.Time, bucketDays, bucketCount int) int {
	diff := model.DaysBetween(start, date)
	if diff < 0 || bucketDays <= 0 {
		return 0
	}
	return min(diff/bucketDays, max(0, bucketCount-1))
}

// Build aggregates expense records into buckets of bucketDays days covering
// [start, end]. A bucketDays of zero or less selects AutoBucketDays. Income
// records and records dated after end are ignored; records dated before start
// are counted in the first bucket.
func Build(records []model.Record, start, end time.Time, bucketDays int) (*Data, error) {
	start, end = model.Day(start), model.Day(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s is after %s", common.ErrInvalidDateRange,
			start.Format(model.DateLayout), end.Format(model.DateLayout))
	}
	if bucketDays <= 0 {
		bucketDays = AutoBucketDays(start, end)
	}

	count := BucketCount(RangeDays(start, end), bucketDays)
	perBucket := make([]map[string]decimal.Decimal, count)
	for i := range perBucket {
		perBucket[i] = make(map[string]decimal.Decimal)
	}
	global := make(map[string]decimal.Decimal)

	for _, r := range records {
		if !r.IsExpense() {
			continue
		}
		day := model.Day(r.Date)
		if day.After(end) {
			continue
		}

		idx := BucketIndex(start, day, bucketDays, count)
		amount := r.Amount.Abs()
		perBucket[idx][r.Category] = perBucket[idx][r.Category].Add(amount)
		global[r.Category] = global[r.Category].Add(amount)
	}

	data := &Data{
		Start:          start,
		End:            end,
		BucketDays:     bucketDays,
		Buckets:        make([]Bucket, count),
		CategoryTotals: sortedTotals(global),
	}

	for i := range data.Buckets {
		bStart := start.AddDate(0, 0, i*bucketDays)
		bEnd := bStart.AddDate(0, 0, bucketDays-1)
		if bEnd.After(end) {
			bEnd = end
		}
		totals := sortedTotals(perBucket[i])
		data.Buckets[i] = Bucket{
			Start:  bStart,
			End:    bEnd,
			Totals: totals,
			Total:  sumTotals(totals),
		}
	}

	data.GrandTotal = sumTotals(data.CategoryTotals)
	data.Colors = AssignColors(categoryNames(data.CategoryTotals))

	return data, nil
}

// AssignColors maps each category to a palette entry by its position in
// categories, cycling the palette.
func AssignColors(categories []string) map[string]lipgloss.Color {
	colors := make(map[string]lipgloss.Color, len(categories))
	for i, category := range categories {
		colors[category] = Palette[i%len(Palette)]
	}
	return colors
}

// categoryNames returns the categories of totals in alphabetical order, so a
// category's color does not depend on how much was spent on it.
func categoryNames(totals []CategoryTotal) []string {
	names := make([]string, 0, len(totals))
	for _, ct := range totals {
		names = append(names, ct.Category)
	}
	sort.Strings(names)
	return names
}

// sortedTotals orders totals descending; ties keep alphabetical order.
func sortedTotals(m map[string]decimal.Decimal) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(m))
	for category, total := range m {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals
}

func sumTotals(totals []CategoryTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, ct := range totals {
		sum = sum.Add(ct.Total)
	}
	return sum
}
