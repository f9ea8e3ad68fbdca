package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/lessonforge-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/lessonforge-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/lessonforge-backend/internal/adapter/provider/openai"
	"github.com/heartmarshall/lessonforge-backend/internal/config"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/adapter"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/cache"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/router"
)

const (
	providerOpenAI    = "openai"
	providerGemini    = "gemini"
	providerAnthropic = "anthropic"

	lessonMaxTokens   = 4096
	lessonTemperature = 0.7
)

// buildProviders creates one adapter per configured credential. The
// returned closers release the HTTP transports on shutdown.
func buildProviders(cfg config.AIConfig, c cache.Cache, log *slog.Logger) (*llm.Registry, []io.Closer) {
	var (
		providers []llm.Provider
		closers   []io.Closer
	)

	imageAdapter := ""
	if cfg.HasGemini() {
		imageAdapter = providerGemini
	}

	if cfg.HasOpenAI() {
		model := openai.NewClient(openai.Config{
			Name:           providerOpenAI,
			APIKey:         cfg.OpenAI.APIKey,
			BaseURL:        cfg.OpenAI.BaseURL,
			SupportsImages: cfg.OpenAI.SupportsImages,
		}, log)
		closers = append(closers, model)
		providers = append(providers, adapter.New(model, c, adapter.Config{
			Policy:       adapter.ModelPolicy{Light: cfg.OpenAI.LightModel, Heavy: cfg.OpenAI.HeavyModel},
			CacheTTL:     cfg.CacheTTL,
			ImageAdapter: imageAdapter,
			MaxTokens:    lessonMaxTokens,
			Temperature:  lessonTemperature,
		}, log))
	}

	if cfg.HasGemini() {
		model := gemini.NewClient(gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			BaseURL: cfg.Gemini.BaseURL,
		}, log)
		closers = append(closers, model)
		providers = append(providers, adapter.New(model, c, adapter.Config{
			Policy:      adapter.ModelPolicy{Light: cfg.Gemini.Model},
			CacheTTL:    cfg.CacheTTL,
			MaxTokens:   lessonMaxTokens,
			Temperature: lessonTemperature,
		}, log))
	}

	if cfg.HasReviewer() {
		model := anthropic.NewClient(anthropic.Config{
			APIKey:    cfg.Anthropic.APIKey,
			BaseURL:   cfg.Anthropic.BaseURL,
			MaxTokens: cfg.Anthropic.MaxTokens,
		}, log)
		providers = append(providers, adapter.New(model, c, adapter.Config{
			Policy:       adapter.ModelPolicy{Light: cfg.Anthropic.Model},
			CacheTTL:     cfg.CacheTTL,
			ImageAdapter: imageAdapter,
			MaxTokens:    cfg.Anthropic.MaxTokens,
		}, log))
	}

	return llm.NewRegistry(providers...), closers
}

// routeConfig derives the routing table from the configured credentials.
//
// OpenAI serves the light and heavy routes when configured, Gemini
// otherwise. Gemini takes image input; without it the multimodal route
// points at OpenAI, which reports ErrNotSupported unless images are
// enabled. With both configured Gemini is the lesson fallback.
func routeConfig(cfg config.AIConfig) router.Config {
	geminiRef := llm.ModelRef{Provider: providerGemini, Name: cfg.Gemini.Model}

	light, heavy := geminiRef, geminiRef
	if cfg.HasOpenAI() {
		light = llm.ModelRef{Provider: providerOpenAI, Name: cfg.OpenAI.LightModel}
		heavy = llm.ModelRef{Provider: providerOpenAI, Name: cfg.OpenAI.HeavyModel}
	}

	var multimodal llm.ModelRef
	switch {
	case cfg.HasGemini():
		multimodal = geminiRef
	case cfg.OpenAI.SupportsImages:
		multimodal = heavy
	default:
		multimodal = light
	}

	rc := router.Config{
		Light:           light,
		Heavy:           heavy,
		Multimodal:      multimodal,
		Default:         light,
		ReviewerEnabled: cfg.HasReviewer(),
	}
	if cfg.HasReviewer() {
		rc.Reviewer = llm.ModelRef{Provider: providerAnthropic, Name: cfg.Anthropic.Model}
	}
	if cfg.HasOpenAI() && cfg.HasGemini() {
		rc.Fallback = geminiRef
	}
	return rc
}

// checkRoutes fails when a route points at a provider that has no adapter.
func checkRoutes(reg *llm.Registry, rc router.Config) error {
	routes := map[string]llm.ModelRef{
		"light":      rc.Light,
		"heavy":      rc.Heavy,
		"multimodal": rc.Multimodal,
		"default":    rc.Default,
		"reviewer":   rc.Reviewer,
		"fallback":   rc.Fallback,
	}
	for name, ref := range routes {
		if ref.IsZero() {
			continue
		}
		if !reg.Has(ref.Provider) {
			return fmt.Errorf("%s route %s: %w", name, ref, llm.ErrUnknownProvider)
		}
	}
	return nil
}
