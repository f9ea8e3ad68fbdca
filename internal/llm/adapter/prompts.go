package adapter

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
)

const lessonSystemPrompt = `You are an experienced curriculum designer who writes lessons for K-12 classrooms.
You always answer with a single JSON object and nothing else.`

const lessonSchema = `{
  "title": "<lesson title>",
  "overview": "<2-3 sentence summary>",
  "objectives": ["<measurable learning objective>"],
  "sections": [
    {"heading": "<section heading>", "content": "<instructional text>", "activities": ["<classroom activity>"]}
  ],
  "vocabulary": [{"term": "<term>", "definition": "<grade-appropriate definition>"}],
  "assessment": [
    {"question": "<question>", "options": ["<option>"], "answer": "<correct answer>", "explanation": "<why>"}
  ],
  "resources": [
    {"type": "<video|document|article|interactive|image>", "title": "<title>", "url": "<https url>", "description": "<what it adds>"}
  ]
}`

var lengthGuidance = map[domain.LessonLength]string{
	domain.LessonLengthShort:  "about 15 minutes of class time, 2-3 sections, 3 assessment questions",
	domain.LessonLengthMedium: "about 30 minutes of class time, 3-4 sections, 5 assessment questions",
	domain.LessonLengthLong:   "about 50 minutes of class time, 5-6 sections, 8 assessment questions",
}

func lessonMessages(req domain.GenerationRequest) []llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a lesson.\n\nSubject: %s\nTopic: %s\nGrade: %d\nLength: %s (%s)\n",
		req.Subject, req.Topic, req.TargetGrade, req.LessonLength, lengthGuidance[req.LessonLength])
	if req.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	}
	if s := strings.TrimSpace(req.AdditionalInstructions); s != "" {
		fmt.Fprintf(&b, "Teacher instructions: %s\n", s)
	}
	b.WriteString("\nOutput ONLY a valid JSON object matching this schema:\n")
	b.WriteString(lessonSchema)
	b.WriteString(`

Rules:
- Language and examples must suit the grade level
- Objectives start with an action verb
- Resource urls must be real, public and https; omit a resource rather than invent a url
- No markdown, no text outside the JSON`)

	return []llm.Message{
		{Role: domain.ChatRoleSystem, Content: lessonSystemPrompt},
		{Role: domain.ChatRoleUser, Content: b.String()},
	}
}

const reviewSystemPrompt = `You review educational material for K-12 students.
Check for age-inappropriate content, bias, factual errors and unsafe activities.
You always answer with a single JSON object and nothing else.`

func reviewMessages(in llm.ReviewInput) []llm.Message {
	var b strings.Builder
	b.WriteString("Review the following lesson content")
	if in.TargetGrade > 0 {
		fmt.Fprintf(&b, " intended for grade %d", in.TargetGrade)
	}
	if in.Subject != "" {
		fmt.Fprintf(&b, " (%s)", in.Subject)
	}
	b.WriteString(".\n\nContent:\n")
	b.WriteString(in.Content)
	b.WriteString(`

Output ONLY a JSON object:
{
  "isAppropriate": <true|false>,
  "confidenceScore": <number between 0 and 1>,
  "flags": ["<problem found>"],
  "suggestions": ["<how to fix it>"]
}`)

	return []llm.Message{
		{Role: domain.ChatRoleSystem, Content: reviewSystemPrompt},
		{Role: domain.ChatRoleUser, Content: b.String()},
	}
}

const tutorSystemPrompt = `You are a patient tutor. Explain step by step, check understanding,
and keep the vocabulary suitable for the learner's grade.
You always answer with a single JSON object and nothing else.`

func explanationMessages(in llm.ExplanationInput) []llm.Message {
	msgs := make([]llm.Message, 0, len(in.History)+2)

	system := tutorSystemPrompt
	if in.Subject != "" || in.TargetGrade > 0 {
		system += fmt.Sprintf("\nSubject: %s. Grade: %d.", in.Subject, in.TargetGrade)
	}
	if in.Difficulty != "" {
		system += fmt.Sprintf(" Learner level: %s.", in.Difficulty)
	}
	msgs = append(msgs, llm.Message{Role: domain.ChatRoleSystem, Content: system})

	for _, m := range in.History {
		if m.Role == domain.ChatRoleSystem {
			continue
		}
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}

	msgs = append(msgs, llm.Message{Role: domain.ChatRoleUser, Content: in.Question + `

Answer with ONLY a JSON object:
{"explanation": "<answer>", "examples": ["<example>"], "keyPoints": ["<point>"], "followUpQuestions": ["<question to check understanding>"]}`})
	return msgs
}

const imageSystemPrompt = `You describe images for teachers who want to use them in class.
You always answer with a single JSON object and nothing else.`

func imageMessages(in llm.ImageInput) []llm.Message {
	var b strings.Builder
	if p := strings.TrimSpace(in.Prompt); p != "" {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	b.WriteString("Analyze the attached image")
	if in.Subject != "" {
		fmt.Fprintf(&b, " for a %s lesson", in.Subject)
	}
	if in.TargetGrade > 0 {
		fmt.Fprintf(&b, " at grade %d", in.TargetGrade)
	}
	b.WriteString(`.

Output ONLY a JSON object:
{"description": "<what the image shows>", "objects": ["<object>"], "text": "<any visible text>", "educationalValue": "<how it can be used in class>", "suggestedTopics": ["<topic>"]}`)

	return []llm.Message{
		{Role: domain.ChatRoleSystem, Content: imageSystemPrompt},
		{Role: domain.ChatRoleUser, Content: b.String()},
	}
}
