package report

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

// Apportion splits height rows among amounts by the largest-remainder method.
// Each share is floor(|amount|/total*height); the rows left over go one at a
// time to the largest fractional remainders, earlier entries winning ties.
// The result sums to height whenever the total is positive.
func Apportion(amounts []decimal.Decimal, height int) []int {
	heights := make([]int, len(amounts))
	if height <= 0 || len(amounts) == 0 {
		return heights
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Abs())
	}
	if !total.IsPositive() {
		return heights
	}

	totalRat := total.Rat()
	h := new(big.Rat).SetInt64(int64(height))
	remainders := make([]*big.Rat, len(amounts))
	assigned := 0

	for i, a := range amounts {
		exact := new(big.Rat).Mul(a.Abs().Rat(), h)
		exact.Quo(exact, totalRat)

		floor := new(big.Int).Quo(exact.Num(), exact.Denom())
		heights[i] = int(floor.Int64())
		assigned += heights[i]
		remainders[i] = exact.Sub(exact, new(big.Rat).SetInt(floor))
	}

	order := make([]int, len(amounts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return remainders[order[i]].Cmp(remainders[order[j]]) > 0
	})

	for i := 0; assigned < height; i++ {
		heights[order[i%len(order)]]++
		assigned++
	}

	return heights
}

// ScaledHeight returns how many of barHeight rows a column with total should
// fill when the tallest column has maxTotal, rounding up so that any nonzero
// total is visible.
func ScaledHeight(total, maxTotal decimal.Decimal, barHeight int) int {
	if barHeight <= 0 || !total.IsPositive() || !maxTotal.IsPositive() {
		return 0
	}
	if total.GreaterThanOrEqual(maxTotal) {
		return barHeight
	}
	scaled := new(big.Rat).Mul(total.Rat(), new(big.Rat).SetInt64(int64(barHeight)))
	scaled.Quo(scaled, maxTotal.Rat())

	rows := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	if !scaled.IsInt() {
		rows.Add(rows, big.NewInt(1))
	}
	return min(int(rows.Int64()), barHeight)
}
