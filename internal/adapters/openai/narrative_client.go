package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mikey/job-scam-detector/internal/core"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the NarrativeClient interface using OpenAI
type OpenAIClient struct {
	client       *openai.Client
	modelName    string
	maxTokens    int
	temperature  float32
	topP         float32
	maxTextSize  int
	logger       *zap.Logger
	promptFormat string
}

// NewOpenAIClient creates a new OpenAI narrative client
func NewOpenAIClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
) *OpenAIClient {
	client := openai.NewClient(apiKey)

	return &OpenAIClient{
		client:      client,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
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
	}
}

// truncateText truncates the offer text if it exceeds the maximum size
func (c *OpenAIClient) truncateText(text string) string {
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

// Explain asks OpenAI for a prose explanation of the rule-based findings
func (c *OpenAIClient) Explain(ctx context.Context, text string, result *core.AnalysisResult) (string, error) {
	findings, err := json.Marshal(result.DetectionReport)
	if err != nil {
		return "", fmt.Errorf("failed to encode findings: %w", err)
	}

	prompt := fmt.Sprintf(c.promptFormat, c.truncateText(text), result.TrustScore, result.RiskLevel, findings)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a cybersecurity expert who explains employment scams in plain language.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}
