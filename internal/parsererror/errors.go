// Package parsererror defines the typed errors shared by ingest,
// categorization and analysis.
package parsererror

import "fmt"

// ParseError is a single malformed row or field. The row is skipped and
// ingest continues.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: failed to parse %s='%s': %v",
			e.Parser, e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// FallbackError records why a merchant fell back to the "other" category.
// It is logged, never returned to callers of the pipeline.
type FallbackError struct {
	Merchant string
	Strategy string
	Err      error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("categorization failed for %s using %s: %v",
		e.Merchant, e.Strategy, e.Err)
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}

// InvalidFormatError means a whole input could not be read as a statement,
// for example a CSV without a usable header.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// ExtractionError means no well-formed JSON value could be found in an
// analysis response.
type ExtractionError struct {
	Snippet string
	Reason  string
}

func (e *ExtractionError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("json extraction failed: %s. Response snippet: '%s'", e.Reason, e.Snippet)
	}
	return fmt.Sprintf("json extraction failed: %s", e.Reason)
}

// Snip shortens s to at most n runes for inclusion in error messages.
func Snip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
