// Package adapter implements llm.Provider on top of a llm.ChatModel: it
// builds prompts, consults the response cache, parses JSON replies into the
// shared schemas and picks the adapter's own model variant.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/cache"
)

// Operation names, also used as cache key namespaces.
const (
	opLesson      = "lesson"
	opReview      = "review"
	opExplanation = "explanation"
	opImage       = "image"
)

// ModelPolicy is the adapter-internal choice of model variant when the
// caller does not force one.
type ModelPolicy struct {
	Light string
	Heavy string
}

func (p ModelPolicy) pick(grade int, difficulty domain.Difficulty) string {
	if p.Heavy != "" && (grade >= 9 || difficulty == domain.DifficultyAdvanced) {
		return p.Heavy
	}
	return p.Light
}

// Config holds adapter settings.
type Config struct {
	Policy   ModelPolicy
	CacheTTL time.Duration
	// ImageAdapter names the adapter callers should use for image analysis
	// when this one has no image support.
	ImageAdapter string
	MaxTokens    int
	Temperature  float64
}

// Adapter is a Provider backed by one ChatModel.
type Adapter struct {
	model llm.ChatModel
	cache cache.Cache
	cfg   Config
	log   *slog.Logger
	now   func() time.Time
}

var _ llm.Provider = (*Adapter)(nil)

// New creates an Adapter. A nil cache disables caching.
func New(model llm.ChatModel, c cache.Cache, cfg Config, log *slog.Logger) *Adapter {
	return &Adapter{
		model: model,
		cache: c,
		cfg:   cfg,
		log:   log.With("adapter", model.Name()),
		now:   time.Now,
	}
}

// Name returns the provider name of the underlying ChatModel.
func (a *Adapter) Name() string { return a.model.Name() }

// GenerateLesson produces a lesson for in.Request.
func (a *Adapter) GenerateLesson(ctx context.Context, in llm.LessonInput) (domain.ProviderResponse[domain.LessonContent], error) {
	model := in.Model
	if model == "" {
		model = a.cfg.Policy.pick(in.Request.TargetGrade, in.Request.Difficulty)
	}
	req := a.request(model, lessonMessages(in.Request))
	return call(ctx, a, opLesson, model, in.Request, req, parseLesson)
}

// ValidateContent runs the safety review over in.Content.
func (a *Adapter) ValidateContent(ctx context.Context, in llm.ReviewInput) (domain.ProviderResponse[domain.ContentValidationResult], error) {
	model := in.Model
	if model == "" {
		model = a.cfg.Policy.Light
	}
	req := a.request(model, reviewMessages(in))
	req.Temperature = 0
	keyIn := llm.ReviewInput{Content: in.Content, Subject: in.Subject, TargetGrade: in.TargetGrade}
	return call(ctx, a, opReview, model, keyIn, req, parseReview)
}

// GenerateExplanation answers in.Question, using in.History as context.
func (a *Adapter) GenerateExplanation(ctx context.Context, in llm.ExplanationInput) (domain.ProviderResponse[domain.Explanation], error) {
	model := in.Model
	if model == "" {
		model = a.cfg.Policy.pick(in.TargetGrade, in.Difficulty)
	}
	req := a.request(model, explanationMessages(in))
	keyIn := in
	keyIn.Model = ""
	return call(ctx, a, opExplanation, model, keyIn, req, parseExplanation)
}

// AnalyzeImage describes the image at in.ImageURL. Models without image
// input fail with domain.ErrNotSupported.
func (a *Adapter) AnalyzeImage(ctx context.Context, in llm.ImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error) {
	if !a.model.SupportsImages() {
		alt := a.cfg.ImageAdapter
		if alt == "" {
			alt = "a multimodal"
		}
		return domain.ProviderResponse[domain.ImageAnalysis]{},
			fmt.Errorf("%s adapter cannot analyze images, use the %s adapter: %w", a.Name(), alt, domain.ErrNotSupported)
	}
	model := in.Model
	if model == "" {
		model = a.cfg.Policy.Light
	}
	req := a.request(model, imageMessages(in))
	req.ImageURL = in.ImageURL
	keyIn := in
	keyIn.Model = ""
	return call(ctx, a, opImage, model, keyIn, req, parseImage)
}

func (a *Adapter) request(model string, msgs []llm.Message) llm.CompletionRequest {
	return llm.CompletionRequest{
		Model:       model,
		Messages:    msgs,
		JSON:        true,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	}
}

// call is the cache-then-upstream sequence shared by every operation.
// Cache failures are logged and treated as misses.
func call[T any](
	ctx context.Context,
	a *Adapter,
	op, model string,
	keyInput any,
	req llm.CompletionRequest,
	parse func(string) (T, error),
) (domain.ProviderResponse[T], error) {
	var zero domain.ProviderResponse[T]
	ref := llm.ModelRef{Provider: a.Name(), Name: model}.String()

	key := ""
	if a.cache != nil {
		k, err := cache.Key(op, a.Name(), model, keyInput)
		if err != nil {
			a.log.WarnContext(ctx, "cache key", slog.String("op", op), slog.String("error", err.Error()))
		} else {
			key = k
			hit, ok, err := cache.GetJSON[domain.ProviderResponse[T]](ctx, a.cache, key)
			switch {
			case err != nil:
				a.log.WarnContext(ctx, "cache get", slog.String("op", op), slog.String("error", err.Error()))
			case ok:
				a.log.DebugContext(ctx, "cache hit", slog.String("op", op), slog.String("model", ref))
				hit.Cached = true
				return hit, nil
			}
		}
	}

	completion, err := a.model.Complete(ctx, req)
	if err != nil {
		return zero, err
	}

	payload, err := parse(completion.Text)
	if err != nil {
		a.log.WarnContext(ctx, "unparseable reply",
			slog.String("op", op),
			slog.String("model", ref),
			slog.Int("reply_len", len(completion.Text)),
			slog.String("error", err.Error()),
		)
		return zero, domain.NewProviderError(domain.CodeUnknownError, ref, fmt.Errorf("parse %s reply: %w", op, err))
	}

	if completion.Model != "" {
		ref = llm.ModelRef{Provider: a.Name(), Name: completion.Model}.String()
	}
	resp := domain.ProviderResponse[T]{
		Payload:     payload,
		Model:       ref,
		Usage:       completion.Usage,
		GeneratedAt: a.now().UTC(),
	}

	if key != "" {
		if err := cache.SetJSON(ctx, a.cache, key, resp, a.cfg.CacheTTL); err != nil {
			a.log.WarnContext(ctx, "cache set", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
	return resp, nil
}
