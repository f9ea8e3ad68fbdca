// Package router picks the model for each AI task. Routing is a pure
// function of the task type, the request and the static configuration.
package router

import (
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
)

// HeavyGradeThreshold is the lowest grade routed to the heavy model.
const HeavyGradeThreshold = 9

// Config lists the model for every route.
type Config struct {
	Light      llm.ModelRef
	Heavy      llm.ModelRef
	Multimodal llm.ModelRef
	Reviewer   llm.ModelRef
	Default    llm.ModelRef
	// Fallback is tried once when the primary lesson model fails with a
	// retryable error. Zero disables provider fallback.
	Fallback llm.ModelRef
	// ReviewerEnabled is true when the reviewer's credential is configured.
	ReviewerEnabled bool
}

// Input carries the request attributes routing depends on.
type Input struct {
	TargetGrade int
	Difficulty  domain.Difficulty
	ContentType string
}

// Router implements the routing table.
type Router struct {
	cfg Config
}

// New creates a Router.
func New(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// Route returns the model for task. Unknown task types get the default model.
func (r *Router) Route(task llm.TaskType, in Input) llm.ModelRef {
	switch task {
	case llm.TaskLessonGeneration, llm.TaskExplanation:
		if isHeavy(in) {
			return r.cfg.Heavy
		}
		return r.cfg.Light
	case llm.TaskMultimodal:
		return r.cfg.Multimodal
	case llm.TaskContentReview:
		if r.cfg.ReviewerEnabled {
			return r.cfg.Reviewer
		}
		return r.cfg.Default
	default:
		return r.cfg.Default
	}
}

// Fallback returns the model to try after primary failed. ok is false when
// no fallback is configured or it is the model that just failed.
func (r *Router) Fallback(primary llm.ModelRef) (llm.ModelRef, bool) {
	if r.cfg.Fallback.IsZero() || r.cfg.Fallback == primary {
		return llm.ModelRef{}, false
	}
	return r.cfg.Fallback, true
}

func isHeavy(in Input) bool {
	return in.TargetGrade >= HeavyGradeThreshold || in.Difficulty == domain.DifficultyAdvanced
}
