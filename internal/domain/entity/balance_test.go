package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewBalance(t *testing.T) {
	main := Totals{Income: decimal.NewFromInt(1000), Expense: decimal.RequireFromString("250.50")}
	secondary := Totals{Income: decimal.NewFromInt(100), Expense: decimal.NewFromInt(300)}

	balance := NewBalance(main, secondary)

	assert.True(t, balance.Main.Equal(decimal.RequireFromString("749.50")))
	assert.True(t, balance.Secondary.Equal(decimal.NewFromInt(-200)))
	assert.True(t, balance.Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, balance.Expense.Equal(decimal.RequireFromString("250.50")))
}

func TestParseSeriesMode(t *testing.T) {
	mode, err := ParseSeriesMode("")
	assert.NoError(t, err)
	assert.Equal(t, SeriesMonthly, mode)

	mode, err = ParseSeriesMode("yearly")
	assert.NoError(t, err)
	assert.Equal(t, SeriesYearly, mode)

	_, err = ParseSeriesMode("weekly")
	assert.Error(t, err)
}

func TestExpenseSeries_Total(t *testing.T) {
	series := ExpenseSeries{Points: []ExpensePoint{
		{Amount: decimal.NewFromInt(10)},
		{Amount: decimal.RequireFromString("2.5")},
		{Amount: decimal.Zero},
	}}

	assert.True(t, series.Total().Equal(decimal.RequireFromString("12.5")))
}
