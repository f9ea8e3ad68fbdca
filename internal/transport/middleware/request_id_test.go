package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/lessonforge-backend/pkg/ctxutil"
)

func serveRequestID(t *testing.T, header string) (ctxID, respID string) {
	t.Helper()
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	ctxID, respID := serveRequestID(t, "trace-abc")
	assert.Equal(t, "trace-abc", ctxID)
	assert.Equal(t, "trace-abc", respID)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	ctxID, respID := serveRequestID(t, "")
	_, err := uuid.Parse(ctxID)
	assert.NoError(t, err)
	assert.Equal(t, ctxID, respID)
}

func TestRequestID_ReplacesOverlong(t *testing.T) {
	long := strings.Repeat("x", maxRequestIDLen+1)
	ctxID, respID := serveRequestID(t, long)
	assert.NotEqual(t, long, ctxID)
	assert.Equal(t, ctxID, respID)
}
