package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

// Direction tells whether a transaction increases or decreases a balance
type Direction string

// Category is the fixed spending category assigned to a transaction
type Category string

// Account is the sub-account a transaction is booked against
type Account string

// Directions
const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Categories
const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryTransfer      Category = "Transfer"
	CategoryOthers        Category = "Others"
	CategoryManual        Category = "Manual"
)

// Accounts
const (
	AccountMain      Account = "Main"
	AccountSecondary Account = "Secondary"
)

const (
	// UnknownMerchant is used when no counterparty could be located
	UnknownMerchant = "Unknown"

	// GeneratedReferencePrefix prefixes the fallback reference of records without one
	GeneratedReferencePrefix = "GEN-"
)

// Transaction is a normalized financial event extracted from a message or entered manually.
// Values are produced once and never mutated afterwards.
type Transaction struct {
	ID           string          // Deterministic identity, see parser.DeriveID
	Amount       decimal.Decimal // Non-negative amount
	Direction    Direction       // Income or expense
	Category     Category        // One of the fixed categories
	Merchant     string          // Counterparty or UnknownMerchant
	Description  string          // Raw source text
	OccurredAt   int64           // Epoch millis from the message itself
	ReferenceID  *string         // Token found in the message, nil when absent
	AutoCaptured bool            // False for manual entries
	Account      Account         // Main or Secondary
}

// Reference returns the message reference or the generated fallback
func (t *Transaction) Reference() string {
	if t.ReferenceID != nil && *t.ReferenceID != "" {
		return *t.ReferenceID
	}
	return GeneratedReferencePrefix + t.ID
}

// HasReference reports whether the reference was found in the message content
func (t *Transaction) HasReference() bool {
	return t.ReferenceID != nil && *t.ReferenceID != ""
}

// IsIncome returns true if this transaction increases the balance
func (t *Transaction) IsIncome() bool {
	return t.Direction == DirectionIncome
}

// IsExpense returns true if this transaction decreases the balance
func (t *Transaction) IsExpense() bool {
	return t.Direction == DirectionExpense
}

// SignedAmount returns the amount negated for expenses
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// OccurredTime converts OccurredAt into a time in the given location
func (t *Transaction) OccurredTime(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(t.OccurredAt).In(loc)
}

// ManualEntry carries the caller-provided fields of a manually recorded transaction
type ManualEntry struct {
	Amount      decimal.Decimal
	Direction   Direction
	Merchant    string
	Description string
	OccurredAt  int64
	Account     Account
}

// NewManualTransaction builds a record that did not come from a message
func NewManualTransaction(id string, entry ManualEntry) (*Transaction, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.ErrInvalidTransactionID
	}
	if entry.Amount.IsNegative() {
		return nil, errs.ErrNegativeAmount
	}
	if entry.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}
	if !IsValidDirection(string(entry.Direction)) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidDirection, entry.Direction)
	}

	account := entry.Account
	if account == "" {
		account = AccountMain
	}
	if !IsValidAccount(string(account)) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidAccount, account)
	}

	merchant := strings.TrimSpace(entry.Merchant)
	if merchant == "" {
		merchant = UnknownMerchant
	}

	return &Transaction{
		ID:           id,
		Amount:       entry.Amount,
		Direction:    entry.Direction,
		Category:     CategoryManual,
		Merchant:     merchant,
		Description:  entry.Description,
		OccurredAt:   entry.OccurredAt,
		AutoCaptured: false,
		Account:      account,
	}, nil
}

// Helper functions

// IsValidDirection validates if the direction is allowed
func IsValidDirection(direction string) bool {
	return direction == string(DirectionIncome) || direction == string(DirectionExpense)
}

// IsValidAccount validates if the account is allowed
func IsValidAccount(account string) bool {
	return account == string(AccountMain) || account == string(AccountSecondary)
}

// IsValidCategory validates if the category is one of the fixed set
func IsValidCategory(category string) bool {
	switch Category(category) {
	case CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment,
		CategoryTransfer, CategoryOthers, CategoryManual:
		return true
	default:
		return false
	}
}
