package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyCount is a row count grouped by the first instant of a month
type MonthlyCount struct {
	Month time.Time `db:"month"`
	Count int64     `db:"count"`
}

// MonthlyAmount is a decimal sum grouped by the first instant of a month
type MonthlyAmount struct {
	Month  time.Time       `db:"month"`
	Amount decimal.Decimal `db:"amount"`
}
