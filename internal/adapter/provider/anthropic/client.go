// Package anthropic is a ChatModel over the Anthropic Messages API. It backs
// the content reviewer and has no image support.
package anthropic

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/lessonforge-backend/internal/adapter/provider"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
)

const (
	defaultName      = "anthropic"
	defaultMaxTokens = 1024
)

// Config configures a Client.
type Config struct {
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// Client implements llm.ChatModel.
type Client struct {
	api       anthropic.Client
	maxTokens int
	log       *slog.Logger
}

var _ llm.ChatModel = (*Client)(nil)

// NewClient creates a Client. The SDK's own retries are disabled; retrying
// is done by the caller.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	return &Client{
		api:       anthropic.NewClient(opts...),
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", defaultName),
	}
}

func (c *Client) Name() string         { return defaultName }
func (c *Client) SupportsImages() bool { return false }

// Complete sends one Messages API request. System messages are joined into
// the system prompt.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	ref := llm.ModelRef{Provider: defaultName, Name: req.Model}.String()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(req.Temperature),
	}
	for _, m := range req.Messages {
		switch m.Role {
		case domain.ChatRoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case domain.ChatRoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	c.log.DebugContext(ctx, "messages request",
		slog.String("model", req.Model),
		slog.Int("messages", len(params.Messages)),
	)

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return llm.Completion{}, provider.FromStatus(apiErr.StatusCode, ref, apiErr.Error())
		}
		return llm.Completion{}, provider.FromTransport(err, ref)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return llm.Completion{}, provider.EmptyReply(ref)
	}

	model := string(msg.Model)
	if model == "" {
		model = req.Model
	}
	in, out := int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)
	return llm.Completion{
		Text:  sb.String(),
		Model: model,
		Usage: domain.TokenUsage{
			PromptTokens:     in,
			CompletionTokens: out,
			TotalTokens:      in + out,
		},
	}, nil
}
