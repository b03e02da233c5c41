package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

// MaxDecimalPlaces defines the number of decimal places used when rendering money
const MaxDecimalPlaces = 2

// CurrencySymbol is prefixed to rendered amounts
const CurrencySymbol = "₹"

// MaxAmount is the exclusive upper bound of a storable amount, decimal(18,2)
var MaxAmount = decimal.New(1, 16)

// ParseAmount parses a captured amount such as "1,234.50".
// Thousands separators are stripped and the value is rounded half away from
// zero to MaxDecimalPlaces, so the stored amount is the one that is displayed.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if amount.IsNegative() {
		return decimal.Zero, errs.ErrNegativeAmount
	}

	amount = amount.Round(MaxDecimalPlaces)
	if amount.GreaterThanOrEqual(MaxAmount) {
		return decimal.Zero, fmt.Errorf("%w: %s exceeds the storable range", errs.ErrInvalidAmount, cleaned)
	}

	return amount, nil
}

// FormatAmount renders an amount with exactly two decimal places
// Example: 40 becomes "40.00", 1234.5 becomes "1234.50"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}

// FormatSignedAmount renders "-₹40.00" for expenses and "+₹66.00" for income
func FormatSignedAmount(direction Direction, amount decimal.Decimal) string {
	sign := "+"
	if direction == DirectionExpense {
		sign = "-"
	}
	return sign + CurrencySymbol + FormatAmount(amount)
}
