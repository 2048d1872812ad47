// Package currencyutils parses and formats the money strings found in bank
// exports.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencySymbols = regexp.MustCompile(`[€$£¥₣₹₽₩\s]`)
	currencyCodes   = regexp.MustCompile(`(?i)(USD|EUR|CHF|GBP|CAD|AUD)`)
	hundred         = decimal.NewFromInt(100)
)

// ParseAmount parses strings like "$1,234.56", "-12.00", "(12.00)",
// "1.234,56" or "CHF 1'234.56". Empty input is zero. The sign is kept;
// callers that store magnitudes take Abs themselves.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized, negative := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': no digits", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// StandardizeAmount strips currency markers and thousands separators and
// returns a string decimal.NewFromString accepts, plus whether the input
// was written as a negative in accounting parentheses.
func StandardizeAmount(amountStr string) (string, bool) {
	s := currencyCodes.ReplaceAllString(amountStr, "")
	s = currencySymbols.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "'", "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	return s, negative
}

// FormatAmount renders amount with two decimals and a currency marker.
// An empty currency renders a bare number.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)

	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "USD":
		return prefixSymbol("$", formatted)
	case "EUR":
		return prefixSymbol("€", formatted)
	case "GBP":
		return prefixSymbol("£", formatted)
	default:
		return currency + " " + formatted
	}
}

func prefixSymbol(symbol, formatted string) string {
	if strings.HasPrefix(formatted, "-") {
		return "-" + symbol + formatted[1:]
	}
	return symbol + formatted
}

// Percent returns part/whole*100, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
