package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

// FormatPrice renders a price with its folder currency, e.g. "12.50 EUR".
func FormatPrice(price decimal.Decimal, currency string) string {
	s := price.StringFixed(2)
	if currency == "" {
		return s
	}

	return s + " " + currency
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
