package entity

import "github.com/shopspring/decimal"

// Balance summarizes net positions per account
type Balance struct {
	Main      decimal.Decimal // Main income minus Main expense
	Secondary decimal.Decimal // Secondary income minus Secondary expense
	Income    decimal.Decimal // Main income
	Expense   decimal.Decimal // Main expense
}

// Totals holds income and expense sums for one account
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// NewBalance combines per-account totals into a Balance
func NewBalance(main, secondary Totals) Balance {
	return Balance{
		Main:      main.Net(),
		Secondary: secondary.Net(),
		Income:    main.Income,
		Expense:   main.Expense,
	}
}
