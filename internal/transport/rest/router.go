package rest

import (
	"net/http"
	"time"

	"github.com/heartmarshall/lessonforge-backend/internal/transport/middleware"
)

// Handlers groups everything NewRouter mounts. Metrics may be nil.
type Handlers struct {
	Health   *HealthHandler
	Lesson   *LessonHandler
	Progress *ProgressHandler
	Tutor    *TutorHandler
	Library  *LibraryHandler
	Metrics  http.Handler
}

type httpRecorder interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// NewRouter registers every route. Probes and /metrics are public; the
// rest require an authenticated user. rec may be nil.
func NewRouter(h Handlers, rec httpRecorder) *http.ServeMux {
	mux := http.NewServeMux()

	route := func(pattern string, fn http.HandlerFunc, private bool) {
		var handler http.Handler = fn
		if private {
			handler = middleware.RequireUser(handler)
		}
		if rec != nil {
			handler = middleware.Instrument(rec, pattern)(handler)
		}
		mux.Handle(pattern, handler)
	}

	route("GET /live", h.Health.Live, false)
	route("GET /ready", h.Health.Ready, false)
	route("GET /health", h.Health.Health, false)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	route("POST /lessons/generate", h.Lesson.Generate, true)
	route("GET /lessons", h.Lesson.List, true)
	route("GET /lessons/{id}", h.Lesson.Get, true)

	route("PUT /lessons/{id}/progress", h.Progress.Update, true)
	route("GET /lessons/{id}/progress", h.Progress.Get, true)
	route("GET /progress", h.Progress.List, true)
	route("GET /progress/analytics", h.Progress.Analytics, true)

	route("POST /ai/explain", h.Tutor.Explain, true)
	route("POST /ai/analyze-image", h.Tutor.AnalyzeImage, true)
	route("POST /chat/conversations", h.Tutor.StartConversation, true)
	route("GET /chat/conversations", h.Tutor.ListConversations, true)
	route("GET /chat/conversations/{id}", h.Tutor.GetConversation, true)
	route("POST /chat/conversations/{id}/messages", h.Tutor.SendMessage, true)
	route("DELETE /chat/conversations/{id}", h.Tutor.DeleteConversation, true)

	route("POST /books", h.Library.Create, true)
	route("GET /books", h.Library.List, true)
	route("GET /books/{id}", h.Library.Get, true)
	route("PUT /books/{id}", h.Library.Update, true)
	route("DELETE /books/{id}", h.Library.Delete, true)

	return mux
}
