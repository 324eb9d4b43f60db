package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/config"
	"github.com/muhammadolammi/cvmatch/internal/feedback"
	"github.com/muhammadolammi/cvmatch/internal/narrative"
	"github.com/muhammadolammi/cvmatch/internal/taxonomy"
)

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// buildAnalyzer assembles the lexical strategy and, when a backend is configured, the
// narrative one.
func buildAnalyzer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*analysis.Analyzer, error) {
	tax := taxonomy.Default()
	if cfg.TaxonomyFile != "" {
		loaded, err := taxonomy.Load(cfg.TaxonomyFile)
		if err != nil {
			return nil, err
		}
		tax = loaded
		logger.Info("taxonomy loaded",
			slog.String("file", cfg.TaxonomyFile),
			slog.Int("categories", tax.Len()),
			slog.Int("terms", tax.TermCount()),
		)
	}

	composer := feedback.NewComposer(feedback.WithLocale(feedback.ParseLocale(cfg.Locale)))
	lexical, err := analysis.NewLexicalStrategy(tax, composer)
	if err != nil {
		return nil, fmt.Errorf("failed to build lexical strategy: %w", err)
	}

	opts := []analysis.Option{analysis.WithComposer(composer), analysis.WithLogger(logger)}

	var gen narrative.Generator
	switch cfg.NarrativeBackend {
	case config.BackendOllama:
		gen, err = narrative.NewOllamaGenerator(cfg.OllamaURL, cfg.OllamaModel)
	case config.BackendGemini:
		gen, err = narrative.NewGeminiGenerator(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", cfg.NarrativeBackend, err)
	}
	if gen != nil {
		opts = append(opts, analysis.WithNarrative(analysis.NewNarrativeStrategy(gen, cfg.NarrativeTimeout)))
		logger.Info("narrative strategy enabled", slog.String("backend", cfg.NarrativeBackend))
	}

	return analysis.New(lexical, opts...), nil
}
