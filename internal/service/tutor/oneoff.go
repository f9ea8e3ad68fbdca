package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/retry"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/router"
	"github.com/heartmarshall/lessonforge-backend/pkg/ctxutil"
)

// Explain answers a single question without storing anything.
func (s *Service) Explain(ctx context.Context, input ExplainInput) (domain.ProviderResponse[domain.Explanation], error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ProviderResponse[domain.Explanation]{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.ProviderResponse[domain.Explanation]{}, err
	}

	return s.explain(ctx, llm.ExplanationInput{
		Question:    strings.TrimSpace(input.Question),
		Subject:     strings.TrimSpace(input.Subject),
		TargetGrade: input.TargetGrade,
		Difficulty:  input.Difficulty,
	})
}

// AnalyzeImage describes an image from a teaching perspective using the
// multimodal model.
func (s *Service) AnalyzeImage(ctx context.Context, input AnalyzeImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error) {
	type imageResponse = domain.ProviderResponse[domain.ImageAnalysis]

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return imageResponse{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return imageResponse{}, err
	}

	ref := s.router.Route(llm.TaskMultimodal, router.Input{TargetGrade: input.TargetGrade, ContentType: "image"})
	p, err := s.providers.For(ref)
	if err != nil {
		return imageResponse{}, fmt.Errorf("resolve provider for %s: %w", ref, err)
	}

	resp, err := retry.Do(ctx, s.retrier, ref.String(), func(ctx context.Context) (imageResponse, error) {
		return p.AnalyzeImage(ctx, llm.ImageInput{
			ImageURL:    input.ImageURL,
			Prompt:      strings.TrimSpace(input.Prompt),
			Subject:     strings.TrimSpace(input.Subject),
			TargetGrade: input.TargetGrade,
			Model:       ref.Name,
		})
	})
	if err != nil {
		s.log.ErrorContext(ctx, "image analysis failed",
			slog.String("user_id", userID.String()),
			slog.String("model", ref.String()),
			slog.String("error", err.Error()),
		)
		return imageResponse{}, err
	}
	return resp, nil
}
