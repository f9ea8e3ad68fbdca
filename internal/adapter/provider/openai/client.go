// Package openai is a ChatModel over the OpenAI chat completions API. Any
// compatible endpoint (OpenRouter, Groq) works by changing the base URL.
package openai

import (
	"context"
	"log/slog"
	"time"

	"resty.dev/v3"

	"github.com/heartmarshall/lessonforge-backend/internal/adapter/provider"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultName    = "openai"
)

// Config configures a Client.
type Config struct {
	// Name is the provider name used in model references. Defaults to "openai".
	Name           string
	APIKey         string
	BaseURL        string
	SupportsImages bool
	// Timeout bounds a single HTTP exchange; zero leaves it to the caller's context.
	Timeout time.Duration
}

// Client implements llm.ChatModel.
type Client struct {
	http   *resty.Client
	name   string
	images bool
	log    *slog.Logger
}

var _ llm.ChatModel = (*Client)(nil)

// NewClient creates a Client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Name == "" {
		cfg.Name = defaultName
	}

	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		hc.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:   hc,
		name:   cfg.Name,
		images: cfg.SupportsImages,
		log:    logger.With("adapter", cfg.Name),
	}
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) Name() string         { return c.name }
func (c *Client) SupportsImages() bool { return c.images }

// Complete sends one chat completion request.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	ref := llm.ModelRef{Provider: c.name, Name: req.Model}.String()

	body := chatCompletionRequest{
		Model:       req.Model,
		Messages:    toMessages(req.Messages, req.ImageURL),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	c.log.DebugContext(ctx, "chat completion request",
		slog.String("model", req.Model),
		slog.Int("messages", len(body.Messages)),
	)

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&chatCompletionResponse{}).
		SetError(&errorResponse{}).
		Post("/chat/completions")
	if err != nil {
		return llm.Completion{}, provider.FromTransport(err, ref)
	}
	if res.IsError() {
		detail := res.String()
		if e, ok := res.Error().(*errorResponse); ok && e.Error.Message != "" {
			detail = e.Error.Message
		}
		return llm.Completion{}, provider.FromStatus(res.StatusCode(), ref, detail)
	}

	out, ok := res.Result().(*chatCompletionResponse)
	if !ok || len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return llm.Completion{}, provider.EmptyReply(ref)
	}

	model := out.Model
	if model == "" {
		model = req.Model
	}
	return llm.Completion{
		Text:  out.Choices[0].Message.Content,
		Model: model,
		Usage: domain.TokenUsage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
		},
	}, nil
}

// toMessages converts prompt messages. An image is attached to the last
// user message as an image_url part.
func toMessages(msgs []llm.Message, imageURL string) []message {
	last := -1
	if imageURL != "" {
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role == domain.ChatRoleUser {
				last = i
				break
			}
		}
	}

	out := make([]message, 0, len(msgs))
	for i, m := range msgs {
		if i == last {
			out = append(out, message{
				Role: string(m.Role),
				Content: []contentPart{
					{Type: "text", Text: m.Content},
					{Type: "image_url", ImageURL: &imageURLPart{URL: imageURL}},
				},
			})
			continue
		}
		out = append(out, message{Role: string(m.Role), Content: m.Content})
	}
	return out
}
