package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mikey/job-scam-detector/internal/adapters/netcheck"
	"github.com/mikey/job-scam-detector/internal/config"
	"github.com/mikey/job-scam-detector/internal/core"
	"github.com/mikey/job-scam-detector/internal/factory"
	"github.com/mikey/job-scam-detector/internal/logging"
	"go.uber.org/zap"
)

var (
	// Narrative provider flags
	provider    = flag.String("provider", "none", "Narrative provider (none, bedrock, gemini, openai)")
	maxTokens   = flag.Int("max-tokens", 1000, "Maximum tokens for narrative response")
	temperature = flag.Float64("temperature", 0.1, "Temperature for narrative generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for narrative generation")
	maxTextSize = flag.Int("max-text-size", 4096, "Maximum offer text size to send to the provider")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Input flags
	inputFile      = flag.String("file", "", "Input offer text file (use stdin if not specified)")
	companyEmail   = flag.String("email", "", "Recruiter or company contact email")
	companyWebsite = flag.String("website", "", "Claimed company website")
	websiteTimeout = flag.Duration("website-timeout", 5*time.Second, "Timeout for the website reachability check")
	verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog        = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile     = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Initialize narrative client (nil when provider is "none")
	narrativeFactory := factory.NewNarrativeFactory(cfg, logger)
	narrative, err := narrativeFactory.CreateNarrativeClient(context.Background())
	if err != nil {
		logger.Fatal("Failed to create narrative client", zap.Error(err))
	}

	// Read offer text from file or stdin
	var textReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		textReader = file
		logger.Info("Reading offer text from file", zap.String("file", *inputFile))
	} else {
		textReader = os.Stdin
		logger.Info("Reading offer text from stdin")
	}

	textBytes, err := io.ReadAll(textReader)
	if err != nil {
		logger.Fatal("Failed to read offer text", zap.Error(err))
	}
	text := strings.TrimSpace(string(textBytes))
	if text == "" {
		logger.Fatal("No offer text supplied")
	}

	// Assemble the engine and service; the CLI runs without persistence
	checker := netcheck.NewChecker(*websiteTimeout, logger)
	engine := core.NewEngine(core.DefaultLexicon(), checker, core.DefaultScoreWeights(), logger)
	narrativeTimeout, err := cfg.GetDuration("engine.narrative_timeout")
	if err != nil {
		logger.Fatal("Invalid narrative timeout", zap.Error(err))
	}
	service := core.NewAnalyzerService(engine, narrative, nil, logger, narrativeTimeout)

	input := core.AnalysisInput{
		Text:           text,
		CompanyEmail:   *companyEmail,
		CompanyWebsite: *companyWebsite,
	}

	// Print offer summary
	fmt.Printf("\n=== Offer Summary ===\n")
	fmt.Printf("Text length: %d bytes\n", len(text))
	if *companyEmail != "" {
		fmt.Printf("Company email: %s\n", *companyEmail)
	}
	if *companyWebsite != "" {
		fmt.Printf("Company website: %s\n", *companyWebsite)
	}
	fmt.Printf("\n")

	// Analyze offer
	fmt.Printf("=== Analysis ===\n")
	fmt.Printf("Narrative provider: %s\n", cfg.GetString("narrative.provider"))

	startTime := time.Now()
	rec := service.Analyze(context.Background(), "", input)
	duration := time.Since(startTime)
	result := rec.Result

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Trust score: %.2f\n", result.TrustScore)
	fmt.Printf("Risk level: %s\n", result.RiskLevel)
	fmt.Printf("Word count: %d\n", result.WordCount)
	if result.WebsiteStatus != "" {
		fmt.Printf("Website: %s\n", result.WebsiteStatus)
	}
	if result.EmailDomain != "" {
		fmt.Printf("Email domain: %s (free provider: %t)\n", result.EmailDomain, result.EmailDomainSuspicious)
	}
	fmt.Printf("Processing time: %v\n", duration)

	fmt.Printf("\n=== Explanations ===\n")
	for _, e := range result.Explanations {
		fmt.Printf("- %s\n", e)
	}

	if len(result.RedFlags) > 0 {
		fmt.Printf("\n=== Red Flags ===\n")
		for _, f := range result.RedFlags {
			fmt.Printf("- %s\n", f)
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Printf("\n=== Recommendations ===\n")
		for _, rcm := range result.Recommendations {
			fmt.Printf("- %s\n", rcm)
		}
	}

	if result.Narrative != "" {
		fmt.Printf("\n=== Detailed Assessment ===\n%s\n", result.Narrative)
	}

	// Close any resources that need closing
	if closer, ok := narrative.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close narrative client", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set narrative provider
	v.Set("narrative.provider", *provider)

	// Set provider-specific configuration
	switch *provider {
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.top_p", *topP)
		v.Set("bedrock.max_text_size", *maxTextSize)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.top_p", *topP)
		v.Set("gemini.max_text_size", *maxTextSize)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.top_p", *topP)
		v.Set("openai.max_text_size", *maxTextSize)
	}

	// Set website check timeout
	v.Set("engine.website_timeout", websiteTimeout.String())

	return config.NewFromViper(v)
}
