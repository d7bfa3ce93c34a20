package dto

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/logiport/portal/internal/domain/trade"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/logiport/portal/internal/validator"
	"github.com/shopspring/decimal"
)

const (
	tradeDateLayout = "2006-01-02"

	// trades.price is NUMERIC(12,2)
	priceMaxScale = 2
)

var priceLimit = decimal.New(1, 10)

// CreateTradeRequest records a trade. TradeDate defaults to today (UTC).
type CreateTradeRequest struct {
	Product   string           `json:"product" validate:"required,max=255"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	Price     *decimal.Decimal `json:"price" swaggertype:"string"`
	TradeDate string           `json:"trade_date,omitempty"`
}

func (r *CreateTradeRequest) Validate() error {
	r.Product = strings.TrimSpace(r.Product)

	if r.Quantity <= 0 {
		return ierr.NewError("quantity must be positive").
			WithHint("Quantity must be greater than zero").
			WithReportableDetails(map[string]any{
				"quantity": r.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.Quantity > math.MaxInt32 {
		return ierr.NewError("quantity out of range").
			WithHintf("Quantity must not exceed %d", math.MaxInt32).
			WithReportableDetails(map[string]any{
				"quantity": r.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.validatePrice(); err != nil {
		return err
	}
	return r.validateTradeDate()
}

func (r *CreateTradeRequest) validatePrice() error {
	if r.Price == nil {
		return ierr.NewError("price is required").
			WithHint("Price is required").
			Mark(ierr.ErrValidation)
	}
	if r.Price.IsNegative() {
		return ierr.NewError("price cannot be negative").
			WithHint("Price must be zero or greater").
			Mark(ierr.ErrValidation)
	}
	if r.Price.Exponent() < -priceMaxScale && !r.Price.Equal(r.Price.Truncate(priceMaxScale)) {
		return ierr.NewError("price has too many decimal places").
			WithHintf("Price can have at most %d decimal places", priceMaxScale).
			WithReportableDetails(map[string]any{
				"price": r.Price.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if r.Price.GreaterThanOrEqual(priceLimit) {
		return ierr.NewError("price out of range").
			WithHintf("Price must be less than %s", priceLimit.String()).
			WithReportableDetails(map[string]any{
				"price": r.Price.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateTradeRequest) validateTradeDate() error {
	if r.TradeDate != "" {
		if _, err := time.Parse(tradeDateLayout, r.TradeDate); err != nil {
			return ierr.WithError(err).
				WithHintf("Trade date must use the %s format", tradeDateLayout).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func (r *CreateTradeRequest) ToTrade(actor types.Actor) *trade.Trade {
	now := time.Now().UTC()
	tradeDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if r.TradeDate != "" {
		// already validated
		tradeDate, _ = time.Parse(tradeDateLayout, r.TradeDate)
	}
	return &trade.Trade{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRADE),
		Product:   r.Product,
		Quantity:  r.Quantity,
		Price:     *r.Price,
		TradeDate: tradeDate,
		UserID:    actor.ID,
		CreatedAt: now,
	}
}

type TradeResponse struct {
	*trade.Trade
}

// CreateTradeResponse carries the created trade plus any non-fatal problems
// that happened after it was stored
type CreateTradeResponse struct {
	Trade    *TradeResponse `json:"trade"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ListTradesResponse represents the response for listing trades
type ListTradesResponse = types.ListResponse[*TradeResponse]

// TradeConfirmation renders the confirmation mail sent to the trade owner
func TradeConfirmation(username string, t *trade.Trade) (subject, body string) {
	subject = "New Trade Entry Recorded"
	body = fmt.Sprintf("Dear %s,\n\n"+
		"Your trade entry has been successfully recorded.\n\n"+
		"Product: %s\n"+
		"Quantity: %d\n"+
		"Price: %s\n"+
		"Date: %s\n\n"+
		"Thank you for using our service.",
		username, t.Product, t.Quantity, t.Price.StringFixed(2), t.TradeDate.Format(tradeDateLayout))
	return subject, body
}
