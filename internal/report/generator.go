// Package report renders command results as text, JSON or YAML.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/spend-insights/internal/logging"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml or yml in any case. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// ReportGenerator provides functionality to generate reports in various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ReportGenerator{logger: logger.WithField("component", "ReportGenerator")}
}

// GenerateReport renders v in format. Text output supports the view types
// of this package plus the insights and trend results; JSON and YAML accept
// any value.
func (g *ReportGenerator) GenerateReport(v interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSONReport(v)
	case FormatYAML:
		return g.generateYAMLReport(v)
	case FormatText, "":
		return g.generateTextReport(v)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Write renders v and writes it to w.
func (g *ReportGenerator) Write(w io.Writer, v interface{}, format Format) error {
	out, err := g.GenerateReport(v, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (g *ReportGenerator) generateJSONReport(v interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) generateTextReport(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeText(&buf, v); err != nil {
		g.logger.WithError(err).Error("Failed to render text report")
		return nil, err
	}
	return buf.Bytes(), nil
}
