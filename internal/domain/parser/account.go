package parser

import (
	"strings"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

const secondaryAccountKeyword = "slice"

// ClassifyAccount routes messages mentioning the secondary card issuer to AccountSecondary
func ClassifyAccount(sender, body string) entity.Account {
	if strings.Contains(strings.ToLower(sender), secondaryAccountKeyword) ||
		strings.Contains(strings.ToLower(body), secondaryAccountKeyword) {
		return entity.AccountSecondary
	}
	return entity.AccountMain
}
