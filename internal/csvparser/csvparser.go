// Package csvparser reads bank-exported CSV statements into uncategorized
// transactions. Several files can be ingested at once; they are parsed
// concurrently and merged into one deduplicated set.
package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html/charset"
)

const parserName = "CSV"

// Stats counts what happened to the rows of one document.
type Stats struct {
	RowsRead int `json:"rowsRead" yaml:"rows_read"`
	// Skipped rows were malformed (ParseError).
	Skipped int `json:"skipped" yaml:"skipped"`
	// Filtered rows were well-formed but are not spending: missing fields,
	// zero amount or the exclude keyword.
	Filtered int `json:"filtered" yaml:"filtered"`
	Accepted int `json:"accepted" yaml:"accepted"`
}

func (s *Stats) add(o Stats) {
	s.RowsRead += o.RowsRead
	s.Skipped += o.Skipped
	s.Filtered += o.Filtered
	s.Accepted += o.Accepted
}

// Parser reads a single CSV document. It holds no per-document state and
// may be shared between goroutines.
type Parser struct {
	opts   Options
	logger logging.Logger
}

// NewParser creates a Parser. A nil logger uses the process default.
func NewParser(opts Options, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{opts: opts.normalized(), logger: logger}
}

// Options returns the effective, normalized options.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse reads one document. A document without a usable header is an
// *parsererror.InvalidFormatError; malformed rows are logged and skipped.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	txs, _, err := p.parseDocument("", r)
	return txs, err
}

// columns holds header positions; -1 means absent.
type columns struct {
	date, description, debit, credit, amount int
	width                                   int
}

func (c columns) field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (p *Parser) parseDocument(name string, r io.Reader) ([]models.Transaction, Stats, error) {
	var stats Stats
	logger := p.logger.WithFields(
		logging.F(logging.FieldParser, parserName),
		logging.F(logging.FieldFile, name))

	if p.opts.Encoding != "" {
		decoded, err := charset.NewReaderLabel(p.opts.Encoding, r)
		if err != nil {
			return nil, stats, &parsererror.InvalidFormatError{
				FilePath:       name,
				ExpectedFormat: "CSV",
				Msg:            fmt.Sprintf("unsupported encoding %q: %v", p.opts.Encoding, err),
			}
		}
		r = decoded
	}

	reader := csv.NewReader(r)
	reader.Comma = p.opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		msg := "failed to read header"
		if errors.Is(err, io.EOF) {
			msg = "empty document"
		}
		return nil, stats, &parsererror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: "CSV with a header row",
			Msg:            fmt.Sprintf("%s: %v", msg, err),
		}
	}

	cols, err := p.locateColumns(name, header)
	if err != nil {
		return nil, stats, err
	}

	txs := make([]models.Transaction, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		stats.RowsRead++

		if err != nil {
			var csvErr *csv.ParseError
			if !errors.As(err, &csvErr) {
				return nil, stats, fmt.Errorf("error reading CSV %s: %w", name, err)
			}
			stats.Skipped++
			logger.WithError(&parsererror.ParseError{Parser: parserName, Field: "row", Line: csvErr.Line, Err: csvErr.Err}).
				Warn("Skipping malformed CSV row", logging.F(logging.FieldLine, csvErr.Line))
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(record) != cols.width {
			stats.Skipped++
			logger.WithError(&parsererror.ParseError{
				Parser: parserName,
				Field:  "row",
				Value:  parsererror.Snip(strings.Join(record, string(p.opts.Delimiter)), 40),
				Line:   line,
				Err:    fmt.Errorf("expected %d fields, got %d", cols.width, len(record)),
			}).Warn("Skipping malformed CSV row", logging.F(logging.FieldLine, line))
			continue
		}

		tx, keep, err := p.convertRow(record, cols, line)
		if err != nil {
			stats.Skipped++
			logger.WithError(err).Warn("Failed to convert row to transaction, skipping",
				logging.F(logging.FieldLine, line))
			continue
		}
		if !keep {
			stats.Filtered++
			continue
		}

		stats.Accepted++
		txs = append(txs, tx)
	}

	logger.Debug("Parsed CSV document",
		logging.F("rows_read", stats.RowsRead),
		logging.F("accepted", stats.Accepted),
		logging.F("skipped", stats.Skipped),
		logging.F("filtered", stats.Filtered))
	return txs, stats, nil
}

func (p *Parser) locateColumns(name string, header []string) (columns, error) {
	cols := columns{date: -1, description: -1, debit: -1, credit: -1, amount: -1, width: len(header)}
	for i, h := range header {
		switch h = normalizeHeader(h); {
		case h == "":
		case h == p.opts.DateColumn && cols.date < 0:
			cols.date = i
		case h == p.opts.DescriptionColumn && cols.description < 0:
			cols.description = i
		case h == p.opts.DebitColumn && cols.debit < 0:
			cols.debit = i
		case h == p.opts.CreditColumn && cols.credit < 0:
			cols.credit = i
		case h == p.opts.AmountColumn && cols.amount < 0:
			cols.amount = i
		}
	}

	var missing []string
	if cols.date < 0 {
		missing = append(missing, p.opts.DateColumn)
	}
	if cols.description < 0 {
		missing = append(missing, p.opts.DescriptionColumn)
	}
	if cols.debit < 0 && cols.credit < 0 && cols.amount < 0 {
		missing = append(missing, "debit, credit or amount")
	}
	if len(missing) > 0 {
		return cols, &parsererror.InvalidFormatError{
			FilePath:             name,
			ExpectedFormat:       "CSV with date, description and amount columns",
			ActualContentSnippet: parsererror.Snip(strings.Join(header, ","), 80),
			Msg:                  "missing columns: " + strings.Join(missing, "; "),
		}
	}
	return cols, nil
}

// convertRow returns keep=false for rows that are well-formed but are not
// spending.
func (p *Parser) convertRow(record []string, cols columns, line int) (models.Transaction, bool, error) {
	rawDate := cols.field(record, cols.date)
	description := cols.field(record, cols.description)
	if rawDate == "" || description == "" {
		return models.Transaction{}, false, nil
	}
	if p.opts.ExcludeKeyword != "" && strings.Contains(strings.ToLower(description), p.opts.ExcludeKeyword) {
		return models.Transaction{}, false, nil
	}

	amount, err := p.resolveAmount(record, cols, line)
	if err != nil {
		return models.Transaction{}, false, err
	}
	if amount.IsZero() {
		return models.Transaction{}, false, nil
	}

	date, err := dateutils.NormalizeISO(rawDate)
	if err != nil {
		return models.Transaction{}, false, &parsererror.ParseError{
			Parser: parserName, Field: "date", Value: rawDate, Line: line, Err: err,
		}
	}

	return models.NewTransaction(date, description, amount), true, nil
}

// resolveAmount takes debit when non-zero, else credit, else the generic
// amount column when one is configured.
func (p *Parser) resolveAmount(record []string, cols columns, line int) (decimal.Decimal, error) {
	candidates := []struct {
		field string
		idx   int
	}{
		{"debit", cols.debit},
		{"credit", cols.credit},
		{"amount", cols.amount},
	}
	for _, c := range candidates {
		raw := cols.field(record, c.idx)
		if raw == "" {
			continue
		}
		amount, err := currencyutils.ParseAmount(raw)
		if err != nil {
			return decimal.Zero, &parsererror.ParseError{
				Parser: parserName, Field: c.field, Value: raw, Line: line, Err: err,
			}
		}
		if !amount.IsZero() {
			return amount.Abs(), nil
		}
	}
	return decimal.Zero, nil
}
