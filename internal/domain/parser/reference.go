package parser

import "regexp"

var referencePattern = regexp.MustCompile(`(?i)(?:ref|txn|no)\s*[:.]?\s*([a-zA-Z0-9]+)`)

// ExtractReference returns the first reference token in body, or nil
func ExtractReference(body string) *string {
	groups := referencePattern.FindStringSubmatch(body)
	if groups == nil {
		return nil
	}
	ref := groups[1]
	return &ref
}
