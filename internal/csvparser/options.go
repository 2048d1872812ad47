package csvparser

import (
	"strings"

	"fjacquet/spend-insights/internal/config"
)

// Options selects the columns and dialect of a statement export. Column
// names are matched case-insensitively against the trimmed header.
type Options struct {
	Delimiter         rune
	Encoding          string
	DateColumn        string
	DescriptionColumn string
	DebitColumn       string
	CreditColumn      string
	// AmountColumn is consulted only when debit and credit are both zero.
	AmountColumn string
	// ExcludeKeyword drops rows whose description contains it. Empty
	// disables the filter.
	ExcludeKeyword string
}

// DefaultOptions matches the plain date,description,debit,credit export.
func DefaultOptions() Options {
	return Options{
		Delimiter:         ',',
		DateColumn:        "date",
		DescriptionColumn: "description",
		DebitColumn:       "debit",
		CreditColumn:      "credit",
		ExcludeKeyword:    "payment",
	}
}

// OptionsFromConfig reads the csv section of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		Delimiter:         cfg.DelimiterRune(),
		Encoding:          cfg.CSV.Encoding,
		DateColumn:        cfg.CSV.DateColumn,
		DescriptionColumn: cfg.CSV.DescriptionColumn,
		DebitColumn:       cfg.CSV.DebitColumn,
		CreditColumn:      cfg.CSV.CreditColumn,
		AmountColumn:      cfg.CSV.AmountColumn,
		ExcludeKeyword:    cfg.CSV.ExcludeKeyword,
	}
}

func (o Options) normalized() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	o.DateColumn = normalizeHeader(o.DateColumn)
	o.DescriptionColumn = normalizeHeader(o.DescriptionColumn)
	o.DebitColumn = normalizeHeader(o.DebitColumn)
	o.CreditColumn = normalizeHeader(o.CreditColumn)
	o.AmountColumn = normalizeHeader(o.AmountColumn)
	o.ExcludeKeyword = strings.ToLower(strings.TrimSpace(o.ExcludeKeyword))
	return o
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}
