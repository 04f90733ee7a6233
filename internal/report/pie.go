package report

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	pieRadiusStep = 0.04
	pieAngleStep  = 0.05
	pieGlyph      = "●"

	// NoExpensesMessage replaces the pie when nothing was spent.
	NoExpensesMessage = "No expenses in this range"
)

// Slice is the angular span of one category in the pie, in radians.
type Slice struct {
	Category string
	Start    float64
	End      float64
}

// PieSlices assigns each category a contiguous span proportional to its share
// of the grand total, starting at angle 0 in category order.
func PieSlices(data *Data) []Slice {
	if !data.GrandTotal.IsPositive() {
		return nil
	}

	grand := data.GrandTotal.InexactFloat64()
	slices := make([]Slice, 0, len(data.CategoryTotals))
	angle := 0.0
	for _, ct := range data.CategoryTotals {
		sweep := ct.Total.InexactFloat64() / grand * 2 * math.Pi
		slices = append(slices, Slice{Category: ct.Category, Start: angle, End: angle + sweep})
		angle += sweep
	}
	return slices
}

// RasterizePie plots slices into a width x height grid of slice indices, -1
// marking empty cells. Terminal cells are about twice as tall as wide, so the
// circle is drawn into a box twice as wide as it is tall and centered.
func RasterizePie(slices []Slice, width, height int) [][]int {
	if width <= 0 || height <= 0 {
		return nil
	}

	grid := make([][]int, height)
	for i := range grid {
		grid[i] = make([]int, width)
		for j := range grid[i] {
			grid[i][j] = -1
		}
	}

	boxHeight := min(height, (width+1)/2)
	boxWidth := min(width, boxHeight*2)
	offsetX := (width - boxWidth) / 2
	offsetY := (height - boxHeight) / 2

	radiusSteps := int(math.Round(1 / pieRadiusStep))
	for idx, s := range slices {
		angleSteps := int((s.End - s.Start) / pieAngleStep)
		for ri := 0; ri <= radiusSteps; ri++ {
			r := float64(ri) * pieRadiusStep
			for ai := 0; ai <= angleSteps; ai++ {
				a := s.Start + float64(ai)*pieAngleStep
				x := r * math.Cos(a)
				y := r * math.Sin(a)

				col := offsetX + int(math.Round((x+1)/2*float64(boxWidth-1)))
				row := offsetY + int(math.Round((1-y)/2*float64(boxHeight-1)))
				if row < 0 || row >= height || col < 0 || col >= width {
					continue
				}
				grid[row][col] = idx
			}
		}
	}

	return grid
}

// RenderPie draws the category pie into width x height cells, or the
// NoExpensesMessage placeholder when the grand total is not positive.
func RenderPie(data *Data, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	slices := PieSlices(data)
	if len(slices) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, NoExpensesMessage)
	}

	styles := categoryStyles(data)
	grid := RasterizePie(slices, width, height)
	lines := make([]string, len(grid))
	for i, row := range grid {
		var b strings.Builder
		for _, idx := range row {
			if idx < 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(styles[slices[idx].Category].Render(pieGlyph))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
