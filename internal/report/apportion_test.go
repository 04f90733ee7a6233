package report

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimals(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func TestApportion(t *testing.T) {
	tests := []struct {
		name    string
		amounts []decimal.Decimal
		height  int
		want    []int
	}{
		{"exact split", decimals("30", "10"), 4, []int{3, 1}},
		{"ties go to earlier entries", decimals("1", "1", "1"), 10, []int{4, 3, 3}},
		{"largest remainder wins", decimals("0.25", "0.5", "0.25"), 1, []int{0, 1, 0}},
		{"small share can round to zero", decimals("99", "1"), 5, []int{5, 0}},
		{"negative amounts use magnitude", decimals("-3", "-1"), 4, []int{3, 1}},
		{"zero total", decimals("0", "0"), 5, []int{0, 0}},
		{"zero height", decimals("1", "2"), 0, []int{0, 0}},
		{"empty", nil, 5, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apportion(tt.amounts, tt.height))
		})
	}
}

func TestApportion_SumsToHeight(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 500 {
		n := 1 + rng.Intn(12)
		amounts := make([]decimal.Decimal, n)
		for i := range amounts {
			amounts[i] = decimal.New(1+int64(rng.Intn(1_000_000)), -2)
		}
		height := 1 + rng.Intn(60)

		heights := Apportion(amounts, height)

		sum := 0
		for _, h := range heights {
			assert.GreaterOrEqual(t, h, 0)
			sum += h
		}
		assert.Equal(t, height, sum, "amounts %v height %d", amounts, height)
	}
}

func TestScaledHeight(t *testing.T) {
	d := decimal.NewFromInt
	assert.Equal(t, 10, ScaledHeight(d(50), d(50), 10))
	assert.Equal(t, 5, ScaledHeight(d(25), d(50), 10))
	assert.Equal(t, 1, ScaledHeight(d(1), d(1000), 10))
	assert.Equal(t, 4, ScaledHeight(d(31), d(100), 10))
	assert.Equal(t, 0, ScaledHeight(d(0), d(50), 10))
	assert.Equal(t, 0, ScaledHeight(d(5), d(0), 10))
}
