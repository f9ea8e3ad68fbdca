package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

var errNoJSON = errors.New("no JSON object found in reply")

// extractJSON returns the text between the first '{' and the last '}'.
// Models sometimes wrap JSON in markdown fences or a preamble.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errNoJSON
	}
	return s[start : end+1], nil
}

func decode[T any](text string) (T, error) {
	var v T
	raw, err := extractJSON(text)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, fmt.Errorf("decode: %w", err)
	}
	return v, nil
}

func parseLesson(text string) (domain.LessonContent, error) {
	lesson, err := decode[domain.LessonContent](text)
	if err != nil {
		return lesson, err
	}
	if strings.TrimSpace(lesson.Title) == "" {
		return lesson, errors.New("lesson has no title")
	}
	if len(lesson.Sections) == 0 {
		return lesson, errors.New("lesson has no sections")
	}
	for i := range lesson.Resources {
		lesson.Resources[i].Type = domain.ResourceType(strings.ToLower(strings.TrimSpace(string(lesson.Resources[i].Type))))
	}
	return lesson, nil
}

// reviewReply mirrors ContentValidationResult with a pointer so a missing
// verdict can be told apart from an explicit false.
type reviewReply struct {
	IsAppropriate   *bool    `json:"isAppropriate"`
	ConfidenceScore float64  `json:"confidenceScore"`
	Flags           []string `json:"flags"`
	Suggestions     []string `json:"suggestions"`
}

func parseReview(text string) (domain.ContentValidationResult, error) {
	r, err := decode[reviewReply](text)
	if err != nil {
		return domain.ContentValidationResult{}, err
	}
	if r.IsAppropriate == nil {
		return domain.ContentValidationResult{}, errors.New("review has no isAppropriate verdict")
	}
	return domain.ContentValidationResult{
		IsAppropriate:   *r.IsAppropriate,
		ConfidenceScore: min(max(r.ConfidenceScore, 0), 1),
		Flags:           r.Flags,
		Suggestions:     r.Suggestions,
	}, nil
}

func parseExplanation(text string) (domain.Explanation, error) {
	e, err := decode[domain.Explanation](text)
	if err != nil {
		return e, err
	}
	if strings.TrimSpace(e.Explanation) == "" {
		return e, errors.New("explanation is empty")
	}
	return e, nil
}

func parseImage(text string) (domain.ImageAnalysis, error) {
	a, err := decode[domain.ImageAnalysis](text)
	if err != nil {
		return a, err
	}
	if strings.TrimSpace(a.Description) == "" {
		return a, errors.New("image analysis has no description")
	}
	return a, nil
}
