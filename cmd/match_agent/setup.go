package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-match/internal/analysis"
	"github.com/jonathan/resume-match/internal/config"
	"github.com/jonathan/resume-match/internal/extraction"
	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/scoring"
)

// buildRunner wires the full pipeline from configuration: one Gemini client
// shared by a primary extractor (with a repair retry) and a fallback extractor
// on the advanced tier (no retries), plus the scoring engine. The returned
// cleanup closes the client.
func buildRunner(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*analysis.Runner, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	modelCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		modelCfg = modelCfg.WithModel(llm.TierStandard, cfg.Model)
	}
	if cfg.FallbackModel != "" {
		modelCfg = modelCfg.WithModel(llm.TierAdvanced, cfg.FallbackModel)
	}

	client, err := llm.NewGeminiClient(ctx, modelCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	cleanup := func() { _ = client.Close() }

	callTimeout := time.Duration(cfg.CallTimeoutSeconds) * time.Second

	primary := extraction.New(client, extraction.Options{
		Provider:      "gemini-primary",
		Tier:          llm.TierStandard,
		CallTimeout:   callTimeout,
		RepairRetries: 1,
	})
	fallback := extraction.New(client, extraction.Options{
		Provider:      "gemini-fallback",
		Tier:          llm.TierAdvanced,
		CallTimeout:   callTimeout,
		RepairRetries: 0,
	})

	scoringCfg := scoring.DefaultConfig()
	// The engine itself never reads the clock; the reference year is fixed
	// here at wiring time.
	scoringCfg.ReferenceYear = time.Now().UTC().Year()
	if cfg.RecencyThresholdYears > 0 {
		scoringCfg.RecencyThresholdYears = cfg.RecencyThresholdYears
	}
	engine := scoring.NewEngine(scoringCfg)

	return analysis.NewRunner(primary, fallback, engine, logger), cleanup, nil
}

// loadConfig loads the optional JSON config file and environment overrides.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
