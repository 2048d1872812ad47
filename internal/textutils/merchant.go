// Package textutils cleans raw bank descriptions into comparable merchant text.
package textutils

import (
	"regexp"
	"strings"
)

var (
	processorPrefix = regexp.MustCompile(`(?i)^(SQ \*|PAR\*|PP\*|TST\*|SNACK\*|SP \*)`)
	onlinePayment   = regexp.MustCompile(`(?i)ONLINE PAYMENT.*`)
	regionMask      = regexp.MustCompile(`(?i)\s+[A-Z]{2}(\s+null)?\s+X+\d+$`)
	phoneRegion     = regexp.MustCompile(`(?i)\s+\d{3}-\d{3}-\d{4}\s+[A-Z]{2}$`)
	cardMask        = regexp.MustCompile(`X+\d{4}`)
	nullToken       = regexp.MustCompile(`(?i)(^|\s)null(\s|$)`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// CleanMerchantName strips payment-processor prefixes, region and phone
// suffixes, masked card numbers and stray "null" tokens from a bank
// description. The steps run in a fixed order; empty input yields "".
func CleanMerchantName(description string) string {
	if description == "" {
		return ""
	}

	cleaned := processorPrefix.ReplaceAllString(description, "")
	cleaned = onlinePayment.ReplaceAllString(cleaned, "payment")
	cleaned = regionMask.ReplaceAllString(cleaned, "")
	cleaned = phoneRegion.ReplaceAllString(cleaned, "")
	cleaned = cardMask.ReplaceAllString(cleaned, "")

	// Adjacent tokens share separators, so one pass can miss "null null".
	for nullToken.MatchString(cleaned) {
		cleaned = nullToken.ReplaceAllString(cleaned, " ")
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(cleaned, " "))
}

// NormalizeMerchant is CleanMerchantName lower-cased, the form matched
// against rule keywords.
func NormalizeMerchant(description string) string {
	return strings.ToLower(CleanMerchantName(description))
}
