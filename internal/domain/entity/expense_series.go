package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

// SeriesMode selects the bucket size of an expense series
type SeriesMode string

// Series modes
const (
	SeriesMonthly SeriesMode = "monthly" // one bucket per day of a month
	SeriesYearly  SeriesMode = "yearly"  // one bucket per month of a year
)

// ParseSeriesMode validates a series mode, defaulting to monthly when empty
func ParseSeriesMode(mode string) (SeriesMode, error) {
	switch SeriesMode(mode) {
	case "":
		return SeriesMonthly, nil
	case SeriesMonthly, SeriesYearly:
		return SeriesMode(mode), nil
	default:
		return "", fmt.Errorf("%w: %s", errs.ErrInvalidSeriesMode, mode)
	}
}

// ExpensePoint is one bucket of an expense series
type ExpensePoint struct {
	Label  string
	Start  int64 // inclusive, epoch millis
	End    int64 // exclusive, epoch millis
	Amount decimal.Decimal
}

// ExpenseSeries is the Main-account spending for one month or one year
type ExpenseSeries struct {
	Mode   SeriesMode
	Label  string
	Offset int
	Points []ExpensePoint
}

// Total sums every bucket of the series
func (s ExpenseSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Points {
		total = total.Add(p.Amount)
	}
	return total
}
