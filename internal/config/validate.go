package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.AI.validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}

	if c.AI.CacheBackend == CacheBackendRedis && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("redis.addr is required when ai.cache_backend is %q", CacheBackendRedis)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit.requests_per_second must be > 0 (got %v)", c.RateLimit.RequestsPerSecond)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit.burst must be >= 1 (got %d)", c.RateLimit.Burst)
		}
	}

	return nil
}

// Cache backends accepted by ai.cache_backend.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

func (a *AIConfig) validate() error {
	if !a.HasOpenAI() && !a.HasGemini() {
		return fmt.Errorf("at least one lesson provider must be configured (openai or gemini)")
	}
	if a.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be >= 1 (got %d)", a.MaxRetries)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", a.Timeout)
	}
	if a.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 (got %v)", a.CacheTTL)
	}
	switch a.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("cache_backend must be %q or %q (got %q)", CacheBackendMemory, CacheBackendRedis, a.CacheBackend)
	}
	if a.ChatHistory < 0 {
		return fmt.Errorf("chat_history must be >= 0 (got %d)", a.ChatHistory)
	}
	if a.HasReviewer() && a.Anthropic.MaxTokens <= 0 {
		return fmt.Errorf("anthropic.max_tokens must be > 0 (got %d)", a.Anthropic.MaxTokens)
	}
	return nil
}
