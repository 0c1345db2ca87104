package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/job-scam-detector/internal/core"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient is an implementation of the NarrativeClient interface using Google Gemini
type GeminiClient struct {
	client       *genai.Client
	model        *genai.GenerativeModel
	modelName    string
	maxTextSize  int
	logger       *zap.Logger
	promptFormat string
}

// NewGeminiClient creates a new Gemini narrative client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiClient{
		client:      client,
		model:       model,
		modelName:   modelName,
		maxTextSize: maxTextSize,
		logger:      logger,
		promptFormat: `You are a cybersecurity expert.

Analyze the following job offer and explain clearly:
- Why it may or may not be a scam
- Mention scam patterns
- Explain risks in simple terms
- Give clear advice to the user

Job Offer:
%s

Rule-based findings (trust score %.2f, risk level %q):
%s

Write a detailed explanation (6-10 lines).`,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// truncateText truncates the offer text if it exceeds the maximum size
func (c *GeminiClient) truncateText(text string) string {
	if c.maxTextSize <= 0 || len(text) <= c.maxTextSize {
		return text
	}

	truncated := text[:c.maxTextSize]
	c.logger.Debug("Offer text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", c.maxTextSize))

	return truncated + "\n[... Content truncated due to size limits ...]"
}

// Explain asks Gemini for a prose explanation of the rule-based findings
func (c *GeminiClient) Explain(ctx context.Context, text string, result *core.AnalysisResult) (string, error) {
	findings, err := json.Marshal(result.DetectionReport)
	if err != nil {
		return "", fmt.Errorf("failed to encode findings: %w", err)
	}

	prompt := fmt.Sprintf(c.promptFormat, c.truncateText(text), result.TrustScore, result.RiskLevel, findings)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
