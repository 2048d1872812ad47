package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/spend-insights/internal/analytics"
	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/jsonextract"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds one analysis request.
const DefaultTimeout = 60 * time.Second

// ErrNoAnalyzer is returned when no model is configured.
var ErrNoAnalyzer = errors.New("no analyzer configured: set GEMINI_API_KEY and ai.enabled")

// Requester builds prompts, calls the Analyzer and decodes replies.
type Requester struct {
	analyzer Analyzer
	timeout  time.Duration
	logger   logging.Logger
}

// NewRequester creates a Requester. A nil analyzer makes every request
// fail with ErrNoAnalyzer; a non-positive timeout uses DefaultTimeout.
func NewRequester(analyzer Analyzer, timeout time.Duration, logger logging.Logger) *Requester {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Requester{analyzer: analyzer, timeout: timeout, logger: logger}
}

// Insights asks for 4-6 general insight cards about s.
func (r *Requester) Insights(ctx context.Context, s Summary) ([]Insight, error) {
	reply, err := r.analyze(ctx, "insights", insightsPrompt(s))
	if err != nil {
		return nil, err
	}
	raw, err := jsonextract.ExtractArray(reply)
	if err != nil {
		return nil, err
	}

	var decoded []Insight
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, shapeError(raw, err)
	}

	out := make([]Insight, 0, len(decoded))
	for _, in := range decoded {
		if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Message) == "" {
			continue
		}
		in.Type = normalizeInsightType(in.Type)
		out = append(out, in)
	}
	return out, nil
}

// LifestyleCreep asks for a creep report over trends. RawTrends is set to
// trends ordered by |change| and action items are ordered high, medium,
// low.
func (r *Requester) LifestyleCreep(ctx context.Context, trends []models.CategoryTrend) (CreepReport, error) {
	sorted := analytics.SortByMagnitude(trends)
	reply, err := r.analyze(ctx, "lifestyle_creep", creepPrompt(sorted))
	if err != nil {
		return CreepReport{}, err
	}
	raw, err := jsonextract.ExtractObject(reply)
	if err != nil {
		return CreepReport{}, err
	}

	var report CreepReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return CreepReport{}, shapeError(raw, err)
	}

	report.OverallScore = clamp(report.OverallScore, 0, 100)
	for i := range report.Categories {
		report.Categories[i].Severity = normalizeSeverity(report.Categories[i].Severity)
	}
	sort.SliceStable(report.ActionItems, func(i, j int) bool {
		return priorityRank(report.ActionItems[i].Priority) < priorityRank(report.ActionItems[j].Priority)
	})
	if report.PositiveHabits == nil {
		report.PositiveHabits = []string{}
	}
	report.RawTrends = sorted
	return report, nil
}

// Goal checks a savings goal. Target and Months must be positive.
func (r *Requester) Goal(ctx context.Context, g GoalRequest) (GoalAnalysis, error) {
	if !g.Target.IsPositive() || g.Months < 1 {
		return GoalAnalysis{}, &parsererror.ValidationError{Reason: "goal target and months must be positive"}
	}

	required := g.Target.Div(decimal.NewFromInt(int64(g.Months))).Round(2)
	projected := g.Income.Sub(g.MonthlySpending).Round(2)

	reply, err := r.analyze(ctx, "goal", goalPrompt(g,
		currencyutils.FormatAmount(required, currency),
		currencyutils.FormatAmount(projected, currency)))
	if err != nil {
		return GoalAnalysis{}, err
	}
	raw, err := jsonextract.ExtractObject(reply)
	if err != nil {
		return GoalAnalysis{}, err
	}

	var analysis GoalAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return GoalAnalysis{}, shapeError(raw, err)
	}
	analysis.RequiredMonthly = required
	analysis.ProjectedSavings = projected
	return analysis, nil
}

func (r *Requester) analyze(ctx context.Context, operation, prompt string) (string, error) {
	if r.analyzer == nil {
		return "", ErrNoAnalyzer
	}

	logger := r.logger.WithField(logging.FieldOperation, operation)
	logger.Debug("Sending analysis request", logging.F("prompt_chars", len(prompt)))
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.analyzer.Analyze(callCtx, prompt)
	if err != nil {
		logger.WithError(err).Warn("Analysis request failed")
		return "", fmt.Errorf("%s analysis failed: %w", operation, err)
	}
	logger.Debug("Received analysis reply",
		logging.F("reply_chars", len(reply)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return reply, nil
}

func shapeError(raw json.RawMessage, err error) error {
	return &parsererror.ExtractionError{
		Snippet: parsererror.Snip(string(raw), 80),
		Reason:  "unexpected JSON shape: " + err.Error(),
	}
}

func normalizeInsightType(t string) string {
	switch t = strings.ToLower(strings.TrimSpace(t)); t {
	case TypeSavings, TypeWarning, TypeAlert, TypeSuccess, TypeTip:
		return t
	default:
		return TypeTip
	}
}

func normalizeSeverity(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return s
	default:
		return SeverityLow
	}
}

func priorityRank(p string) int {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// UnavailableInsight is the placeholder card shown when analysis fails.
func UnavailableInsight(err error) Insight {
	msg := "analysis unavailable"
	if err != nil {
		msg = err.Error()
	}
	return Insight{
		Type:    TypeTip,
		Icon:    "💡",
		Title:   "AI Unavailable",
		Message: "Error: " + msg,
	}
}
