package factory

import (
	"context"
	"fmt"

	"github.com/mikey/job-scam-detector/internal/adapters/bedrock"
	"github.com/mikey/job-scam-detector/internal/adapters/gemini"
	"github.com/mikey/job-scam-detector/internal/adapters/openai"
	"github.com/mikey/job-scam-detector/internal/config"
	"github.com/mikey/job-scam-detector/internal/core"
	"go.uber.org/zap"
)

// NarrativeFactory creates narrative provider clients
type NarrativeFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNarrativeFactory creates a new narrative factory
func NewNarrativeFactory(cfg *config.Config, logger *zap.Logger) *NarrativeFactory {
	return &NarrativeFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateNarrativeClient creates a narrative client based on the configuration.
// The "none" provider returns a nil client; the analyzer service then uses the
// deterministic fallback for every submission.
func (f *NarrativeFactory) CreateNarrativeClient(ctx context.Context) (core.NarrativeClient, error) {
	narrativeCfg := f.cfg.GetNarrative()

	switch narrativeCfg.Provider {
	case "gemini":
		c := f.cfg.GetGemini()
		return gemini.NewGeminiClient(
			c.APIKey,
			c.ModelName,
			c.MaxTokens,
			c.Temperature,
			c.TopP,
			c.MaxTextSize,
			f.logger,
		)
	case "openai":
		c := f.cfg.GetOpenAI()
		return openai.NewOpenAIClient(
			c.APIKey,
			c.ModelName,
			c.MaxTokens,
			c.Temperature,
			c.TopP,
			c.MaxTextSize,
			f.logger,
		), nil
	case "bedrock":
		c := f.cfg.GetBedrock()
		return bedrock.NewBedrockClient(
			ctx,
			c.Region,
			c.ModelID,
			c.MaxTokens,
			c.Temperature,
			c.TopP,
			c.MaxTextSize,
			f.logger,
		)
	case "none", "":
		f.logger.Info("No narrative provider configured, using deterministic fallback")
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported narrative provider: %s", narrativeCfg.Provider)
	}
}
