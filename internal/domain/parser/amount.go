package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

// amountStrategy locates the amount; group 1 of pattern captures the number
type amountStrategy struct {
	name    string
	pattern *regexp.Regexp
}

// amountStrategies are tried in order and the first match wins.
// Intervening text may span line breaks.
var amountStrategies = []amountStrategy{
	{
		name:    "keyword-before-amount",
		pattern: regexp.MustCompile(`(?is)(?:sent|spent|paid|debited|credited|received|deposited|transferred).*?(?:rs\.?|inr)\s*([0-9,]+(?:\.[0-9]+)?)`),
	},
	{
		name:    "amount-before-keyword",
		pattern: regexp.MustCompile(`(?is)(?:rs\.?|inr)\s*([0-9,]+(?:\.[0-9]+)?).*?(?:credited|debited|transferred|deposited)`),
	},
}

// Income keywords take precedence over expense keywords.
var (
	incomeKeywords  = []string{"credited", "received", "deposited"}
	expenseKeywords = []string{"debited", "spent", "paid", "sent", "transferred"}
)

// AmountMatch is the outcome of amount extraction
type AmountMatch struct {
	Amount    decimal.Decimal
	Direction entity.Direction
	Strategy  string
}

// ExtractAmount finds the amount with the first matching strategy and classifies direction
func ExtractAmount(body string) (AmountMatch, error) {
	for _, strategy := range amountStrategies {
		groups := strategy.pattern.FindStringSubmatch(body)
		if groups == nil {
			continue
		}

		amount, err := entity.ParseAmount(groups[1])
		if err != nil {
			return AmountMatch{}, fmt.Errorf("%w: %q", errs.ErrUnparseableAmount, groups[1])
		}

		return AmountMatch{
			Amount:    amount,
			Direction: ClassifyDirection(body),
			Strategy:  strategy.name,
		}, nil
	}
	return AmountMatch{}, errs.ErrNoAmountPattern
}

// ClassifyDirection applies keyword precedence to the full body.
// A body with no keyword at all is treated as an expense.
func ClassifyDirection(body string) entity.Direction {
	lower := strings.ToLower(body)
	switch {
	case containsAny(lower, incomeKeywords):
		return entity.DirectionIncome
	case containsAny(lower, expenseKeywords):
		return entity.DirectionExpense
	default:
		return entity.DirectionExpense
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
