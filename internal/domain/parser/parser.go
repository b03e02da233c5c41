// Package parser turns bank and wallet notification text into transactions.
//
// Every function in this package is pure: compiled patterns are read-only
// package state and no call observes another, so callers may parse
// concurrently without coordination.
package parser

import (
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

// Rejection stages reported through errs.RejectionError
const (
	StageFilter   = "filter"
	StageAmount   = "amount"
	StageMerchant = "merchant"
)

// Parse returns the transaction described by a message, or ok=false when the
// message is not a completed financial event.
func Parse(sender, body string, occurredAt int64) (*entity.Transaction, bool) {
	tx, err := ParseMessage(entity.Message{Sender: sender, Body: body, OccurredAt: occurredAt})
	return tx, err == nil
}

// ParseMessage is Parse with the rejection reason. Errors satisfy errs.IsRejection.
func ParseMessage(msg entity.Message) (*entity.Transaction, error) {
	if err := Filter(msg.Body); err != nil {
		return nil, errs.NewRejectionError(msg.Sender, msg.OccurredAt, StageFilter, err)
	}

	match, err := ExtractAmount(msg.Body)
	if err != nil {
		return nil, errs.NewRejectionError(msg.Sender, msg.OccurredAt, StageAmount, err)
	}

	merchant := ExtractMerchant(msg.Body)
	if containsOneTimePassword(msg.Body) {
		return nil, errs.NewRejectionError(msg.Sender, msg.OccurredAt, StageMerchant, errs.ErrOneTimePassword)
	}

	reference := ExtractReference(msg.Body)
	category := Categorize(merchant)
	id := DeriveID(msg.Sender, msg.Body, msg.OccurredAt)
	account := ClassifyAccount(msg.Sender, msg.Body)

	return &entity.Transaction{
		ID:           id,
		Amount:       match.Amount,
		Direction:    match.Direction,
		Category:     category,
		Merchant:     merchant,
		Description:  msg.Body,
		OccurredAt:   msg.OccurredAt,
		ReferenceID:  reference,
		AutoCaptured: true,
		Account:      account,
	}, nil
}

// Engine adapts the package functions to the usecase.MessageParser port
type Engine struct{}

// NewEngine creates a parser engine
func NewEngine() *Engine {
	return &Engine{}
}

// Parse implements usecase.MessageParser
func (e *Engine) Parse(msg entity.Message) (*entity.Transaction, error) {
	return ParseMessage(msg)
}
