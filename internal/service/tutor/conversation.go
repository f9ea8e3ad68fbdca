package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/retry"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/router"
	"github.com/heartmarshall/lessonforge-backend/pkg/ctxutil"
)

// StartConversation creates an empty conversation, optionally tied to a
// lesson that then provides subject and grade context.
func (s *Service) StartConversation(ctx context.Context, input StartConversationInput) (*domain.Conversation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if input.LessonID != nil {
		lesson, err := s.lessons.GetByID(ctx, *input.LessonID)
		if err != nil {
			return nil, fmt.Errorf("get lesson: %w", err)
		}
		if title == "" {
			title = lesson.Topic
		}
	}
	if title == "" {
		title = defaultTitle
	}

	now := s.now().UTC()
	conv, err := s.conversations.Create(ctx, &domain.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		LessonID:  input.LessonID,
		Messages:  []domain.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	s.log.InfoContext(ctx, "conversation started",
		slog.String("user_id", userID.String()),
		slog.String("conversation_id", conv.ID.String()),
	)
	return conv, nil
}

// GetConversation returns a conversation with all its messages.
func (s *Service) GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	conv, err := s.conversations.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}

// ListConversations returns the caller's conversations, most recently
// updated first.
func (s *Service) ListConversations(ctx context.Context, input ListConversationsInput) ([]*domain.Conversation, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	convs, total, err := s.conversations.List(ctx, userID, domain.Page{Limit: limit, Offset: input.Offset})
	if err != nil {
		return nil, 0, fmt.Errorf("list conversations: %w", err)
	}
	return convs, total, nil
}

// DeleteConversation removes a conversation and its messages.
func (s *Service) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.conversations.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	s.log.InfoContext(ctx, "conversation deleted",
		slog.String("user_id", userID.String()),
		slog.String("conversation_id", id.String()),
	)
	return nil
}

// SendMessage stores the learner's message, asks the explanation model
// with the last messages as context, and stores the reply.
//
// The learner message is kept even when the model call fails.
func (s *Service) SendMessage(ctx context.Context, conversationID uuid.UUID, input SendMessageInput) (*SendMessageResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	conv, err := s.conversations.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	userMsg := domain.ChatMessage{
		Role:      domain.ChatRoleUser,
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: s.now().UTC(),
	}
	if err := s.conversations.AppendMessages(ctx, userID, conversationID, userMsg); err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}

	in := llm.ExplanationInput{
		Question: userMsg.Content,
		History:  lastMessages(conv.Messages, s.historySize),
	}
	if conv.LessonID != nil {
		if lesson, err := s.lessons.GetByID(ctx, *conv.LessonID); err == nil {
			in.Subject = lesson.Subject
			in.TargetGrade = lesson.TargetGrade
			in.Difficulty = lesson.Difficulty
		} else {
			s.log.WarnContext(ctx, "conversation lesson unavailable, answering without it",
				slog.String("conversation_id", conversationID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	resp, err := s.explain(ctx, in)
	if err != nil {
		s.log.ErrorContext(ctx, "tutor reply failed",
			slog.String("user_id", userID.String()),
			slog.String("conversation_id", conversationID.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	reply := domain.ChatMessage{
		Role:      domain.ChatRoleAssistant,
		Content:   resp.Payload.Explanation,
		Model:     resp.Model,
		CreatedAt: s.now().UTC(),
	}
	if err := s.conversations.AppendMessages(ctx, userID, conversationID, reply); err != nil {
		return nil, fmt.Errorf("append reply: %w", err)
	}

	return &SendMessageResult{
		UserMessage: userMsg,
		Reply:       reply,
		Explanation: resp.Payload,
		Cached:      resp.Cached,
	}, nil
}

// explain routes an explanation request and runs it under the retry policy.
func (s *Service) explain(ctx context.Context, in llm.ExplanationInput) (domain.ProviderResponse[domain.Explanation], error) {
	type explanationResponse = domain.ProviderResponse[domain.Explanation]

	ref := s.router.Route(llm.TaskExplanation, router.Input{
		TargetGrade: in.TargetGrade,
		Difficulty:  in.Difficulty,
	})
	p, err := s.providers.For(ref)
	if err != nil {
		return explanationResponse{}, fmt.Errorf("resolve provider for %s: %w", ref, err)
	}

	in.Model = ref.Name
	return retry.Do(ctx, s.retrier, ref.String(), func(ctx context.Context) (explanationResponse, error) {
		return p.GenerateExplanation(ctx, in)
	})
}

// lastMessages returns up to n trailing messages.
func lastMessages(msgs []domain.ChatMessage, n int) []domain.ChatMessage {
	if n <= 0 || len(msgs) == 0 {
		return nil
	}
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]domain.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}
