package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient talks to the Google Gemini API. It implements AIClient for
// merchant categorization and Analyze for free-form analysis prompts.
type GeminiClient struct {
	client   *genai.Client
	classify *genai.GenerativeModel
	analyze  *genai.GenerativeModel
	logger   logging.Logger
}

// NewGeminiClient opens a Gemini client for model using apiKey.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	classify := client.GenerativeModel(model)
	classify.SetTemperature(0.3)
	analyze := client.GenerativeModel(model)
	analyze.SetTemperature(0.7)

	return &GeminiClient{client: client, classify: classify, analyze: analyze, logger: logger}, nil
}

// Categorize implements AIClient.
func (c *GeminiClient) Categorize(ctx context.Context, merchant string) (string, error) {
	c.logger.Debug("Requesting Gemini categorization",
		logging.F(logging.FieldOperation, "gemini_categorization"),
		logging.F(logging.FieldMerchant, merchant))
	return c.generate(ctx, c.classify, categorizePrompt(merchant))
}

// Analyze sends prompt as-is and returns the raw text reply.
func (c *GeminiClient) Analyze(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("Requesting Gemini analysis",
		logging.F(logging.FieldOperation, "gemini_analysis"),
		logging.F("prompt_chars", len(prompt)))
	return c.generate(ctx, c.analyze, prompt)
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini response contained no text")
	}
	return sb.String(), nil
}

func categorizePrompt(merchant string) string {
	names := make([]string, 0, len(models.AllCategories()))
	for _, c := range models.AllCategories() {
		names = append(names, "- "+c.String())
	}
	return fmt.Sprintf(`Categorize this merchant: %q

Return ONLY one of these categories:
%s

Return only the category name, nothing else.`, merchant, strings.Join(names, "\n"))
}
