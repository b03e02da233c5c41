package ingestion

import (
	"fmt"
	"unicode/utf8"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

// Default limits for incoming messages
const (
	DefaultMaxBodyLength   = 4096
	DefaultMaxSenderLength = 64
)

// MessageValidator checks the shape of an incoming message before it is queued.
// Content is judged by the parser, never here.
type MessageValidator struct {
	maxBodyLength   int
	maxSenderLength int
}

// NewMessageValidator creates a MessageValidator; non-positive limits use the defaults
func NewMessageValidator(maxBodyLength, maxSenderLength int) *MessageValidator {
	if maxBodyLength <= 0 {
		maxBodyLength = DefaultMaxBodyLength
	}
	if maxSenderLength <= 0 {
		maxSenderLength = DefaultMaxSenderLength
	}
	return &MessageValidator{
		maxBodyLength:   maxBodyLength,
		maxSenderLength: maxSenderLength,
	}
}

// ValidateMessage validates all message fields
func (v *MessageValidator) ValidateMessage(msg entity.Message) error {
	if msg.OccurredAt <= 0 {
		return fmt.Errorf("%w: occurredAt must be a positive epoch millis value", errs.ErrInvalidRequest)
	}

	if n := utf8.RuneCountInString(msg.Body); n > v.maxBodyLength {
		return fmt.Errorf("%w: body has %d characters, limit is %d", errs.ErrInvalidRequest, n, v.maxBodyLength)
	}

	if n := utf8.RuneCountInString(msg.Sender); n > v.maxSenderLength {
		return fmt.Errorf("%w: sender has %d characters, limit is %d", errs.ErrInvalidRequest, n, v.maxSenderLength)
	}

	return nil
}
