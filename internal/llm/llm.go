// Package llm defines the contract between the orchestration layer and AI
// providers: model references, task types, the Provider operations and the
// lower-level ChatModel transport each provider adapter is built on.
package llm

import (
	"context"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

// ModelRef identifies a model on a specific provider.
type ModelRef struct {
	Provider string
	Name     string
}

// String returns the "provider/name" form used in logs and lesson metadata.
func (m ModelRef) String() string {
	if m.Provider == "" {
		return m.Name
	}
	return m.Provider + "/" + m.Name
}

// IsZero reports whether the reference is unset.
func (m ModelRef) IsZero() bool { return m.Provider == "" && m.Name == "" }

// TaskType is the kind of work a model is routed for.
type TaskType string

const (
	TaskLessonGeneration TaskType = "lesson_generation"
	TaskContentReview    TaskType = "content_review"
	TaskExplanation      TaskType = "explanation"
	TaskMultimodal       TaskType = "multimodal"
)

// LessonInput is the input of Provider.GenerateLesson. An empty Model lets
// the adapter pick its own variant.
type LessonInput struct {
	Request domain.GenerationRequest
	Model   string
}

// ReviewInput is the input of Provider.ValidateContent.
type ReviewInput struct {
	Content     string
	Subject     string
	TargetGrade int
	Model       string
}

// ExplanationInput is the input of Provider.GenerateExplanation.
type ExplanationInput struct {
	Question    string
	Subject     string
	TargetGrade int
	Difficulty  domain.Difficulty
	History     []domain.ChatMessage
	Model       string
}

// ImageInput is the input of Provider.AnalyzeImage.
type ImageInput struct {
	ImageURL    string
	Prompt      string
	Subject     string
	TargetGrade int
	Model       string
}

// Provider is the set of AI operations the services depend on.
type Provider interface {
	Name() string
	GenerateLesson(ctx context.Context, in LessonInput) (domain.ProviderResponse[domain.LessonContent], error)
	ValidateContent(ctx context.Context, in ReviewInput) (domain.ProviderResponse[domain.ContentValidationResult], error)
	GenerateExplanation(ctx context.Context, in ExplanationInput) (domain.ProviderResponse[domain.Explanation], error)
	AnalyzeImage(ctx context.Context, in ImageInput) (domain.ProviderResponse[domain.ImageAnalysis], error)
}

// Message is one role-tagged prompt message.
type Message struct {
	Role    domain.ChatRole
	Content string
}

// CompletionRequest is a single chat completion call.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	ImageURL    string
	JSON        bool
	MaxTokens   int
	Temperature float64
}

// Completion is the raw text reply of a ChatModel.
type Completion struct {
	Text  string
	Model string
	Usage domain.TokenUsage
}

// ChatModel is the transport-level client for one upstream API. Complete
// returns *domain.ProviderError for upstream failures.
type ChatModel interface {
	Name() string
	SupportsImages() bool
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}
