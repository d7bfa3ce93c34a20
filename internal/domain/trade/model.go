package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a recorded trade entry. Trades are immutable once created.
type Trade struct {
	ID       string `db:"id" json:"id"`
	Product  string `db:"product" json:"product"`
	Quantity int    `db:"quantity" json:"quantity"`
	// Price is the price of the whole entry, not a unit price
	Price     decimal.Decimal `db:"price" json:"price" swaggertype:"string"`
	TradeDate time.Time       `db:"trade_date" json:"trade_date"`
	UserID    string          `db:"user_id" json:"user_id"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
