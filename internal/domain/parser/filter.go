package parser

import (
	"regexp"
	"unicode/utf8"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

// ignoreRule marks a message as something other than a completed transaction
type ignoreRule struct {
	name    string
	pattern *regexp.Regexp
	reason  error
}

// ignoreRules are checked in order against the whole body
var ignoreRules = []ignoreRule{
	{"future-debit", regexp.MustCompile(`(?i)will\s+be\s+(?:deducted|debited)`), errs.ErrIgnoredIntent},
	{"upcoming-mandate", regexp.MustCompile(`(?i)upcoming\s+mandate`), errs.ErrIgnoredIntent},
	{"mandate-execution", regexp.MustCompile(`(?i)execution\s+for\s+the\s+same`), errs.ErrIgnoredIntent},
	{"debit-request", regexp.MustCompile(`(?i)request\s+received\s+(?:to|for)\s+debit`), errs.ErrIgnoredIntent},
	{"verification-code", regexp.MustCompile(`(?i)verification\s+code`), errs.ErrOneTimePassword},
	{"otp", regexp.MustCompile(`(?i)otp`), errs.ErrOneTimePassword},
}

// Filter rejects bodies that are too short or describe no completed transaction.
// It returns nil when the body may be parsed further.
func Filter(body string) error {
	if utf8.RuneCountInString(body) < entity.MinMessageLength {
		return errs.ErrMessageTooShort
	}
	for _, rule := range ignoreRules {
		if rule.pattern.MatchString(body) {
			return rule.reason
		}
	}
	return nil
}
