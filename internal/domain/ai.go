package domain

import "time"

// TokenUsage holds the token counters reported by a provider.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Add returns the sum of two usage records.
func (u TokenUsage) Add(o TokenUsage) TokenUsage {
	return TokenUsage{
		PromptTokens:     u.PromptTokens + o.PromptTokens,
		CompletionTokens: u.CompletionTokens + o.CompletionTokens,
		TotalTokens:      u.TotalTokens + o.TotalTokens,
	}
}

// ProviderResponse is the result of one provider call. It is never mutated;
// enrichment produces a new composite value instead.
type ProviderResponse[T any] struct {
	Payload     T          `json:"payload"`
	Model       string     `json:"model"`
	Usage       TokenUsage `json:"usage"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Cached      bool       `json:"cached"`
}

// ContentValidationResult is the verdict of a content safety review.
type ContentValidationResult struct {
	IsAppropriate   bool     `json:"isAppropriate"`
	ConfidenceScore float64  `json:"confidenceScore"`
	Flags           []string `json:"flags"`
	Suggestions     []string `json:"suggestions"`
}

// ImageAnalysis describes an image from a teaching perspective.
type ImageAnalysis struct {
	Description      string   `json:"description"`
	Objects          []string `json:"objects,omitempty"`
	Text             string   `json:"text,omitempty"`
	EducationalValue string   `json:"educationalValue,omitempty"`
	SuggestedTopics  []string `json:"suggestedTopics,omitempty"`
}

// Explanation is a tutor answer to a learner question.
type Explanation struct {
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples,omitempty"`
	KeyPoints   []string `json:"keyPoints,omitempty"`
	FollowUps   []string `json:"followUpQuestions,omitempty"`
}
