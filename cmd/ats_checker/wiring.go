package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jonathan/ats-checker/internal/analysis"
	"github.com/jonathan/ats-checker/internal/cache"
	"github.com/jonathan/ats-checker/internal/config"
	"github.com/jonathan/ats-checker/internal/fetch"
	"github.com/jonathan/ats-checker/internal/keywords"
	"github.com/jonathan/ats-checker/internal/llm"
	"github.com/jonathan/ats-checker/internal/similarity"
	"github.com/jonathan/ats-checker/internal/suggestions"
)

// pipeline is the wired analyzer and job fetcher with the resources they hold.
type pipeline struct {
	analyzer *analysis.Analyzer
	fetcher  *fetch.JobFetcher
	closers  []func() error
}

func (p *pipeline) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		errs = append(errs, p.closers[i]())
	}
	return errors.Join(errs...)
}

// llmConfig applies the provider section to the provider defaults. A live
// provider without an API key degrades to ProviderNone.
func llmConfig(cfg config.ProviderConfig, apiKey string, logger *zap.Logger) *llm.Config {
	provider := llm.Provider(cfg.Name)
	if provider != llm.ProviderNone && apiKey == "" {
		logger.Warn("no API key for provider, every stage uses its fallback", zap.String("provider", cfg.Name))
		provider = llm.ProviderNone
	}

	out := llm.DefaultConfigFor(provider)
	if provider == llm.ProviderNone {
		return out
	}
	if cfg.ChatModel != "" {
		out = out.WithModel(llm.TierLite, cfg.ChatModel).WithModel(llm.TierStandard, cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "" {
		out.EmbeddingModel = cfg.EmbeddingModel
	}
	out.BaseURL = cfg.BaseURL
	return out
}

// buildPipeline wires providers, the embedding cache and the analyzer from cfg.
func buildPipeline(ctx context.Context, cfg *config.Config, observer analysis.Observer, logger *zap.Logger) (*pipeline, error) {
	p := &pipeline{}

	llmCfg := llmConfig(cfg.Provider, cfg.APIKey(), logger)
	clients, err := llm.NewProviderClients(ctx, llmCfg, cfg.APIKey())
	if err != nil {
		return nil, err
	}
	p.closers = append(p.closers, clients.Client.Close)
	live := llmCfg.Provider != llm.ProviderNone

	var enhancer keywords.Enhancer = keywords.NoEnhancer{}
	if live && cfg.Provider.EnhanceKeywords {
		enhancer = keywords.NewLLMEnhancer(clients.Client)
	}

	var suggester suggestions.Provider = suggestions.FallbackProvider{}
	if live {
		suggester = suggestions.NewLLMProvider(clients.Client, logger)
	}

	embedder := clients.Embedder
	if live {
		store, err := cache.Open(ctx, cache.Options{
			Backend:     cfg.Cache.Backend,
			DatabaseURL: cfg.Cache.DatabaseURL,
			RedisAddr:   cfg.Cache.RedisAddr,
			TTL:         cfg.Cache.TTL,
		})
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		if store != nil {
			p.closers = append(p.closers, store.Close)
			embedder = similarity.NewCachedEmbedder(embedder, store, llmCfg.EmbeddingModel, logger)
		}
	}

	p.analyzer = analysis.New(analysis.Deps{
		Extractor:   keywords.NewExtractor(enhancer, logger),
		Scorer:      similarity.NewScorer(embedder, logger),
		Synthesizer: suggestions.NewSynthesizer(suggester, logger),
		Observer:    observer,
		Logger:      logger,
	}, analysis.Options{
		MaxKeywords:     cfg.Analysis.MaxKeywords,
		DisplayKeywords: cfg.Analysis.DisplayKeywords,
		MinResumeLength: cfg.Analysis.MinResumeLength,
		MinJobLength:    cfg.Analysis.MinJobLength,
		Timeout:         cfg.Analysis.Timeout,
	})

	fetchOpts := fetch.DefaultOptions()
	if cfg.Fetch.Timeout > 0 {
		fetchOpts.Timeout = cfg.Fetch.Timeout
	}
	fetchOpts.AllowPrivateHosts = cfg.Fetch.AllowPrivateHosts
	var renderer fetch.Renderer
	if cfg.Fetch.UseBrowser {
		renderer = fetch.NewChromeRenderer(logger)
	}
	p.fetcher = fetch.NewJobFetcher(fetchOpts, renderer, logger)

	logger.Debug("pipeline ready",
		zap.String("provider", string(llmCfg.Provider)),
		zap.String("cache", cfg.Cache.Backend),
		zap.Bool("browser", cfg.Fetch.UseBrowser),
	)
	return p, nil
}
