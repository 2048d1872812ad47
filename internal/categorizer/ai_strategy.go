package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"
	"fjacquet/spend-insights/internal/textutils"

	"golang.org/x/time/rate"
)

// DefaultAITimeout bounds a single categorization call.
const DefaultAITimeout = 15 * time.Second

// ErrAIDisabled is the fallback cause when no AI client is configured.
var ErrAIDisabled = errors.New("ai categorization disabled")

// AIStrategy is the fallback for merchants no rule matched. Each call is
// bounded by a timeout and paced by a shared limiter. Any failure yields
// models.CategoryOther together with a *parsererror.FallbackError that the
// caller is expected to log, not propagate.
type AIStrategy struct {
	client  AIClient
	limiter *rate.Limiter
	timeout time.Duration
	logger  logging.Logger
}

// AIOption configures an AIStrategy.
type AIOption func(*AIStrategy)

// WithTimeout sets the per-call deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) AIOption {
	return func(s *AIStrategy) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRequestsPerMinute paces calls through a token bucket shared by all
// goroutines using the strategy. Zero disables pacing.
func WithRequestsPerMinute(rpm int) AIOption {
	return func(s *AIStrategy) {
		if rpm > 0 {
			s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
		} else {
			s.limiter = nil
		}
	}
}

// NewAIStrategy creates the fallback strategy. A nil client makes every
// call fall back to "other" without network access.
func NewAIStrategy(client AIClient, logger logging.Logger, opts ...AIOption) *AIStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	s := &AIStrategy{client: client, timeout: DefaultAITimeout, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AIStrategy) Name() string {
	return "AI"
}

// Enabled reports whether a client is configured.
func (s *AIStrategy) Enabled() bool {
	return s.client != nil
}

// Categorize asks the AI client about tx's cleaned merchant name.
func (s *AIStrategy) Categorize(ctx context.Context, tx models.Transaction) (models.Category, bool, error) {
	return s.CategorizeMerchant(ctx, textutils.CleanMerchantName(tx.Description))
}

// CategorizeMerchant resolves merchant, which should already be cleaned.
// On failure the category is models.CategoryOther and found is false.
func (s *AIStrategy) CategorizeMerchant(ctx context.Context, merchant string) (models.Category, bool, error) {
	if s.client == nil {
		return models.CategoryOther, false, s.fallback(merchant, ErrAIDisabled)
	}
	if strings.TrimSpace(merchant) == "" {
		return models.CategoryOther, false, s.fallback(merchant, errors.New("empty merchant"))
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return models.CategoryOther, false, s.fallback(merchant, fmt.Errorf("rate limiter: %w", err))
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.client.Categorize(callCtx, merchant)
	if err != nil {
		return models.CategoryOther, false, s.fallback(merchant, err)
	}

	cat, err := parseAIReply(reply)
	if err != nil {
		return models.CategoryOther, false, s.fallback(merchant, err)
	}

	s.logger.Debug("Transaction categorized using AI",
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F(logging.FieldMerchant, merchant),
		logging.F(logging.FieldCategory, cat))
	return cat, true, nil
}

func (s *AIStrategy) fallback(merchant string, err error) error {
	return &parsererror.FallbackError{Merchant: merchant, Strategy: s.Name(), Err: err}
}

// parseAIReply accepts "dining", " Dining.\n", "\"dining\"" or
// "Category: dining"; anything outside the enum is an error.
func parseAIReply(reply string) (models.Category, error) {
	s := strings.ToLower(strings.TrimSpace(reply))
	s = strings.TrimPrefix(s, "category:")
	s = strings.Trim(s, " \t\r\n\"'`.!*")
	cat, err := models.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("reply outside category set: %q", parsererror.Snip(reply, 40))
	}
	return cat, nil
}
