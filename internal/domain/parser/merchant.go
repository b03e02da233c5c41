package parser

import (
	"regexp"
	"strings"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// merchantAnchor captures the counterparty run after a preposition. The anchor
// must end a word but may close a longer one ("Auto renewal" anchors on "to").
// The run stays on one line.
var merchantAnchor = regexp.MustCompile(`(?i)(?:to|at|vp|by)\b\s*:?\s*([a-zA-Z0-9 /_-]+)`)

// stopPhrases end the counterparty text; the leftmost occurrence wins
var stopPhrases = []string{" thru", " on", " ref", " bal", " dated", " from"}

// ExtractMerchant returns the counterparty name or entity.UnknownMerchant
func ExtractMerchant(body string) string {
	groups := merchantAnchor.FindStringSubmatch(body)
	if groups == nil {
		return entity.UnknownMerchant
	}

	merchant := strings.TrimSpace(TruncateAtStopPhrase(strings.TrimSpace(groups[1])))
	if merchant == "" {
		return entity.UnknownMerchant
	}
	return merchant
}

// TruncateAtStopPhrase cuts text at the lowest index of any stop-phrase
func TruncateAtStopPhrase(text string) string {
	lower := strings.ToLower(text)
	cut := -1
	for _, phrase := range stopPhrases {
		if idx := strings.Index(lower, phrase); idx >= 0 && (cut < 0 || idx < cut) {
			cut = idx
		}
	}
	if cut < 0 {
		return text
	}
	return text[:cut]
}

// containsOneTimePassword is the late guard run after merchant extraction
func containsOneTimePassword(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "otp") || strings.Contains(lower, "verification code")
}
