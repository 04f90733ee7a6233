package model

import "github.com/shopspring/decimal"

// Budget is a spending allowance for one category.
type Budget struct {
	Category string
	Amount   decimal.Decimal
	ID       int
}
