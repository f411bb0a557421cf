package main

import (
	"context"
	"fmt"

	"github.com/marcus/persona-map/internal/config"
	"github.com/marcus/persona-map/internal/llm"
	"github.com/marcus/persona-map/internal/persona"
	"github.com/marcus/persona-map/internal/pipeline"
	"github.com/marcus/persona-map/internal/recommend"
	"github.com/marcus/persona-map/internal/search"
)

// buildPipeline constructs the adapters and orchestrator from config.
// The returned cleanup closes the generation client.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	searchClient, err := search.NewHTTPClient(cfg.SearchAPIKey, cfg.RequestTimeout)
	if err != nil {
		_ = llmClient.Close()
		return nil, nil, fmt.Errorf("failed to create search client: %w", err)
	}

	orch := pipeline.NewOrchestrator(
		search.NewAdapter(searchClient, cfg.RequestTimeout),
		persona.NewSynthesizer(llmClient, cfg.RequestTimeout),
		recommend.NewSynthesizer(llmClient, cfg),
		cfg,
	)

	cleanup := func() { _ = llmClient.Close() }
	return orch, cleanup, nil
}
