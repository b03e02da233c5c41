package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for transactions
type Transaction struct {
	ID           string          `gorm:"primaryKey;size:36"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Direction    string          `gorm:"not null;size:16;index:idx_transactions_account_direction,priority:2"`
	Category     string          `gorm:"not null;size:32"`
	Merchant     string          `gorm:"not null;size:255"`
	Description  string          `gorm:"type:text"`
	OccurredAt   int64           `gorm:"not null;index"`
	ReferenceID  *string         `gorm:"size:64;index"`
	AutoCaptured bool            `gorm:"not null"`
	Account      string          `gorm:"not null;size:16;index:idx_transactions_account_direction,priority:1"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
