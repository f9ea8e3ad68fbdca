package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/retry"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/router"
	"github.com/heartmarshall/lessonforge-backend/internal/metrics"
	"github.com/heartmarshall/lessonforge-backend/pkg/ctxutil"
)

// visualKeyword in the additional instructions turns on resource enrichment.
const visualKeyword = "visual"

type lessonResponse = domain.ProviderResponse[domain.LessonContent]

// Generate runs one generation request through validation, primary
// generation, optional visual enrichment and the safety review, then
// persists the approved lesson.
//
// Errors: *domain.ValidationError, *domain.ProviderError,
// *domain.SafetyRejectionError, *domain.PersistenceError.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*domain.Lesson, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	start := s.now()

	if err := input.Validate(); err != nil {
		s.metrics.ObserveGeneration(metrics.OutcomeInvalid, s.now().Sub(start))
		return nil, err
	}

	req := input.request()
	log := s.log.With(
		slog.String("user_id", userID.String()),
		slog.String("subject", req.Subject),
		slog.String("topic", req.Topic),
		slog.Int("target_grade", req.TargetGrade),
	)

	lesson, err := s.generate(ctx, log, userID, req)
	s.metrics.ObserveGeneration(outcomeOf(err), s.now().Sub(start))
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "lesson generated",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("model", lesson.Metadata.Model),
		slog.Duration("took", s.now().Sub(start)),
	)
	return lesson, nil
}

func (s *Service) generate(ctx context.Context, log *slog.Logger, userID uuid.UUID, req domain.GenerationRequest) (*domain.Lesson, error) {
	primary, primaryRef, err := s.generatePrimary(ctx, log, req)
	if err != nil {
		log.ErrorContext(ctx, "primary generation failed", slog.String("error", err.Error()))
		return nil, err
	}

	content := primary.Payload
	usage := primary.Usage
	var enrichedBy string

	if wantsVisual(req.AdditionalInstructions) {
		secondary, ok := s.enrich(ctx, log, req, primaryRef)
		if ok {
			content = mergeResources(content, secondary.Payload.Resources)
			usage = usage.Add(secondary.Usage)
			enrichedBy = secondary.Model
		}
	}

	review, err := s.review(ctx, req, content)
	if err != nil {
		log.ErrorContext(ctx, "safety review failed", slog.String("error", err.Error()))
		return nil, err
	}
	usage = usage.Add(review.Usage)

	verdict := review.Payload
	if !verdict.IsAppropriate {
		log.WarnContext(ctx, "lesson rejected by safety review",
			slog.String("model", primary.Model),
			slog.String("reviewer", review.Model),
			slog.Float64("confidence", verdict.ConfidenceScore),
			slog.Any("flags", verdict.Flags),
		)
		return nil, &domain.SafetyRejectionError{
			Flags:       verdict.Flags,
			Suggestions: verdict.Suggestions,
			Confidence:  verdict.ConfidenceScore,
		}
	}

	generatedAt := primary.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = s.now()
	}

	now := s.now().UTC()
	lesson := &domain.Lesson{
		ID:           uuid.New(),
		AuthorID:     userID,
		Subject:      req.Subject,
		Topic:        req.Topic,
		TargetGrade:  req.TargetGrade,
		LessonLength: req.LessonLength,
		Difficulty:   req.Difficulty,
		Content:      content,
		Metadata: domain.LessonMetadata{
			Model:         primary.Model,
			GeneratedAt:   generatedAt.UTC(),
			SchemaVersion: domain.LessonSchemaVersion,
			IsAIGenerated: true,
			EnrichedBy:    enrichedBy,
			ReviewedBy:    review.Model,
			TokenUsage:    usage,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.lessons.Create(ctx, lesson)
	if err != nil {
		log.ErrorContext(ctx, "persist approved lesson failed",
			slog.String("model", primary.Model),
			slog.String("title", content.Title),
			slog.Int("sections", len(content.Sections)),
			slog.Int("total_tokens", usage.TotalTokens),
			slog.String("error", err.Error()),
		)
		return nil, &domain.PersistenceError{Op: "create lesson", Err: err}
	}
	return saved, nil
}

// generatePrimary calls the routed lesson model and, when it fails with a
// retryable error, the fallback model once. It returns the model that
// produced the payload.
func (s *Service) generatePrimary(ctx context.Context, log *slog.Logger, req domain.GenerationRequest) (lessonResponse, llm.ModelRef, error) {
	ref := s.router.Route(llm.TaskLessonGeneration, router.Input{
		TargetGrade: req.TargetGrade,
		Difficulty:  req.Difficulty,
	})

	resp, err := s.callLesson(ctx, llm.TaskLessonGeneration, ref, req)
	if err == nil {
		return resp, ref, nil
	}

	var pe *domain.ProviderError
	if !errors.As(err, &pe) || !pe.Retryable {
		return lessonResponse{}, ref, err
	}
	fallback, ok := s.router.Fallback(ref)
	if !ok {
		return lessonResponse{}, ref, err
	}

	log.WarnContext(ctx, "primary model exhausted, trying fallback",
		slog.String("model", ref.String()),
		slog.String("fallback", fallback.String()),
		slog.String("code", pe.Code.String()),
	)
	s.metrics.ObserveFallback(ref.String(), fallback.String())
	resp, err = s.callLesson(ctx, llm.TaskLessonGeneration, fallback, req)
	return resp, fallback, err
}

// enrich asks the multimodal model for the same lesson. Failures are logged
// and reported as ok=false; the primary payload is used as is. Nothing is
// asked when the multimodal route is the model that wrote the primary.
func (s *Service) enrich(ctx context.Context, log *slog.Logger, req domain.GenerationRequest, primary llm.ModelRef) (lessonResponse, bool) {
	ref := s.router.Route(llm.TaskMultimodal, router.Input{
		TargetGrade: req.TargetGrade,
		Difficulty:  req.Difficulty,
		ContentType: visualKeyword,
	})
	if ref == primary {
		log.DebugContext(ctx, "visual enrichment skipped, multimodal route is the primary model",
			slog.String("model", ref.String()),
		)
		s.metrics.ObserveEnrichmentSkipped()
		return lessonResponse{}, false
	}

	resp, err := s.callLesson(ctx, llm.TaskMultimodal, ref, req)
	if err != nil {
		log.WarnContext(ctx, "visual enrichment skipped",
			slog.String("model", ref.String()),
			slog.String("error", err.Error()),
		)
		s.metrics.ObserveEnrichmentSkipped()
		return lessonResponse{}, false
	}
	return resp, true
}

func (s *Service) callLesson(ctx context.Context, task llm.TaskType, ref llm.ModelRef, req domain.GenerationRequest) (lessonResponse, error) {
	p, err := s.providers.For(ref)
	if err != nil {
		return lessonResponse{}, fmt.Errorf("resolve provider for %s: %w", ref, err)
	}

	resp, err := retry.Do(ctx, s.retrier, ref.String(), func(ctx context.Context) (lessonResponse, error) {
		return p.GenerateLesson(ctx, llm.LessonInput{Request: req, Model: ref.Name})
	})
	s.observeCall(task, ref, resp.Cached, err)
	return resp, err
}

// review submits the serialized lesson to the content-review model.
func (s *Service) review(ctx context.Context, req domain.GenerationRequest, content domain.LessonContent) (domain.ProviderResponse[domain.ContentValidationResult], error) {
	type reviewResponse = domain.ProviderResponse[domain.ContentValidationResult]

	ref := s.router.Route(llm.TaskContentReview, router.Input{
		TargetGrade: req.TargetGrade,
		Difficulty:  req.Difficulty,
	})
	p, err := s.providers.For(ref)
	if err != nil {
		return reviewResponse{}, fmt.Errorf("resolve reviewer for %s: %w", ref, err)
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return reviewResponse{}, fmt.Errorf("serialize lesson for review: %w", err)
	}

	resp, err := retry.Do(ctx, s.retrier, ref.String(), func(ctx context.Context) (reviewResponse, error) {
		return p.ValidateContent(ctx, llm.ReviewInput{
			Content:     string(payload),
			Subject:     req.Subject,
			TargetGrade: req.TargetGrade,
			Model:       ref.Name,
		})
	})
	s.observeCall(llm.TaskContentReview, ref, resp.Cached, err)
	return resp, err
}

func (s *Service) observeCall(task llm.TaskType, ref llm.ModelRef, cached bool, err error) {
	result := "ok"
	var pe *domain.ProviderError
	switch {
	case errors.As(err, &pe):
		result = pe.Code.String()
	case err != nil:
		result = "error"
	case cached:
		result = "cached"
	}
	s.metrics.ObserveAICall(string(task), ref.String(), result)
}

// wantsVisual reports whether the instructions ask for visual material.
func wantsVisual(instructions string) bool {
	return strings.Contains(strings.ToLower(instructions), visualKeyword)
}

// mergeResources returns a copy of primary with the video and document
// resources of extra appended. Resources already present (same URL, or
// same type and title when there is no URL) are skipped.
func mergeResources(primary domain.LessonContent, extra []domain.Resource) domain.LessonContent {
	out := primary
	out.Resources = make([]domain.Resource, len(primary.Resources), len(primary.Resources)+len(extra))
	copy(out.Resources, primary.Resources)

	seen := make(map[string]struct{}, len(out.Resources))
	for _, r := range out.Resources {
		seen[resourceKey(r)] = struct{}{}
	}
	for _, r := range extra {
		if r.Type != domain.ResourceTypeVideo && r.Type != domain.ResourceTypeDocument {
			continue
		}
		k := resourceKey(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out.Resources = append(out.Resources, r)
	}
	return out
}

func resourceKey(r domain.Resource) string {
	if u := strings.TrimSpace(r.URL); u != "" {
		return "url:" + strings.ToLower(u)
	}
	return string(r.Type) + ":" + strings.ToLower(strings.TrimSpace(r.Title))
}

func outcomeOf(err error) string {
	var (
		ve *domain.ValidationError
		pe *domain.ProviderError
		se *domain.SafetyRejectionError
		de *domain.PersistenceError
	)
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &ve):
		return metrics.OutcomeInvalid
	case errors.As(err, &se):
		return metrics.OutcomeSafetyRejected
	case errors.As(err, &de):
		return metrics.OutcomePersistError
	case errors.As(err, &pe):
		return metrics.OutcomeProviderError
	default:
		return metrics.OutcomeUnexpectedError
	}
}
