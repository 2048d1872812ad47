// Package dateutils normalizes the date formats found in bank exports.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutUS       = "01/02/2006"
	DateLayoutUSShort  = "1/2/2006"
	DateLayoutUSYY     = "1/2/06"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutMonthKey = "2006-01"
)

// CommonFormats is tried in order by ParseDate. Slash dates are read
// month-first, as US bank exports are.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutUS,
	DateLayoutUSShort,
	DateLayoutUSYY,
	DateLayoutEuropean,
	DateLayoutFull,
	time.RFC3339,
	"2006/01/02",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var multiSpace = regexp.MustCompile(`\s+`)

// ParseDate tries each of CommonFormats and returns the parsed time and the
// layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeISO parses dateStr in any known format and returns it as YYYY-MM-DD.
func NormalizeISO(dateStr string) (string, error) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// ToISODate formats t as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// IsMonthKey reports whether s is a valid YYYY-MM month key.
func IsMonthKey(s string) bool {
	if len(s) != len(DateLayoutMonthKey) {
		return false
	}
	_, err := time.Parse(DateLayoutMonthKey, s)
	return err == nil
}

// CleanDateString trims and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
