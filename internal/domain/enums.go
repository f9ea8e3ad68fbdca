package domain

// LessonLength controls how much material a generated lesson contains.
type LessonLength string

const (
	LessonLengthShort  LessonLength = "short"
	LessonLengthMedium LessonLength = "medium"
	LessonLengthLong   LessonLength = "long"
)

func (l LessonLength) String() string { return string(l) }

func (l LessonLength) IsValid() bool {
	switch l {
	case LessonLengthShort, LessonLengthMedium, LessonLengthLong:
		return true
	}
	return false
}

// Difficulty is the optional learner level a lesson targets.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ResourceType classifies a supplementary lesson resource.
type ResourceType string

const (
	ResourceTypeVideo       ResourceType = "video"
	ResourceTypeDocument    ResourceType = "document"
	ResourceTypeArticle     ResourceType = "article"
	ResourceTypeInteractive ResourceType = "interactive"
	ResourceTypeImage       ResourceType = "image"
)

func (r ResourceType) String() string { return string(r) }

// ProgressStatus is the learner's state for a single lesson.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

func (s ProgressStatus) String() string { return string(s) }

func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	}
	return false
}

// ChatRole tags a message in a tutor conversation.
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) String() string { return string(r) }
