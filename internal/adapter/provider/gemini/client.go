// Package gemini is a ChatModel over the Gemini generateContent API.
package gemini

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/heartmarshall/lessonforge-backend/internal/adapter/provider"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	name           = "gemini"
)

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client implements llm.ChatModel. Gemini models accept image input.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

var _ llm.ChatModel = (*Client)(nil)

// NewClient creates a Client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("x-goog-api-key", cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		hc.SetTimeout(cfg.Timeout)
	}
	return &Client{http: hc, log: logger.With("adapter", name)}
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) Name() string         { return name }
func (c *Client) SupportsImages() bool { return true }

// Complete calls models/{model}:generateContent.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	ref := llm.ModelRef{Provider: name, Name: req.Model}.String()

	body := buildRequest(req)

	c.log.DebugContext(ctx, "generateContent request",
		slog.String("model", req.Model),
		slog.Int("contents", len(body.Contents)),
		slog.Bool("image", req.ImageURL != ""),
	)

	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("model", req.Model).
		SetBody(body).
		SetResult(&generateContentResponse{}).
		SetError(&errorResponse{}).
		Post("/models/{model}:generateContent")
	if err != nil {
		return llm.Completion{}, provider.FromTransport(err, ref)
	}
	if res.IsError() {
		detail := res.String()
		if e, ok := res.Error().(*errorResponse); ok && e.Error.Message != "" {
			detail = e.Error.Status + ": " + e.Error.Message
		}
		return llm.Completion{}, provider.FromStatus(res.StatusCode(), ref, detail)
	}

	out, ok := res.Result().(*generateContentResponse)
	if !ok || len(out.Candidates) == 0 {
		return llm.Completion{}, provider.EmptyReply(ref)
	}

	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return llm.Completion{}, provider.EmptyReply(ref)
	}

	completion := llm.Completion{Text: text.String(), Model: req.Model}
	if out.UsageMetadata != nil {
		completion.Usage = domain.TokenUsage{
			PromptTokens:     out.UsageMetadata.PromptTokenCount,
			CompletionTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      out.UsageMetadata.TotalTokenCount,
		}
	}
	return completion, nil
}

// buildRequest maps prompt messages onto Gemini contents. System messages
// become the system instruction; assistant turns use the "model" role.
func buildRequest(req llm.CompletionRequest) generateContentRequest {
	var (
		system   []string
		contents []content
	)
	lastUser := -1
	for _, m := range req.Messages {
		switch m.Role {
		case domain.ChatRoleSystem:
			system = append(system, m.Content)
		case domain.ChatRoleAssistant:
			contents = append(contents, content{Role: "model", Parts: []part{{Text: m.Content}}})
		default:
			contents = append(contents, content{Role: "user", Parts: []part{{Text: m.Content}}})
			lastUser = len(contents) - 1
		}
	}

	if req.ImageURL != "" {
		img := part{FileData: &fileData{MimeType: mimeFromURL(req.ImageURL), FileURI: req.ImageURL}}
		if lastUser == -1 {
			contents = append(contents, content{Role: "user", Parts: []part{img}})
		} else {
			contents[lastUser].Parts = append(contents[lastUser].Parts, img)
		}
	}

	out := generateContentRequest{
		Contents: contents,
		GenerationConfig: &generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if len(system) > 0 {
		out.SystemInstruction = &content{Parts: []part{{Text: strings.Join(system, "\n\n")}}}
	}
	if req.JSON {
		out.GenerationConfig.ResponseMimeType = "application/json"
	}
	return out
}

func mimeFromURL(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	switch strings.ToLower(path.Ext(u)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
