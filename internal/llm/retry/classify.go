package retry

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

// Classify maps an error to its ErrorCode. Typed information wins: an
// existing ProviderError keeps its code, deadlines and net.Error timeouts
// are timeouts, other net.Errors are network failures. Message matching is
// the fallback for errors that carry no type.
func Classify(err error) domain.ErrorCode {
	if err == nil {
		return ""
	}

	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	if errors.Is(err, errAttemptTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return domain.CodeOperationTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return domain.CodeOperationTimeout
		}
		return domain.CodeNetworkError
	}

	return classifyMessage(err.Error())
}

var messageRules = []struct {
	code    domain.ErrorCode
	needles []string
}{
	{domain.CodeRateLimitExceeded, []string{"rate limit", "too many requests", "429"}},
	{domain.CodeOperationTimeout, []string{"timeout", "timed out"}},
	{domain.CodeNetworkError, []string{"network", "connection refused", "connection reset", "econnreset", "eof"}},
	{domain.CodeInvalidRequest, []string{"invalid request", "bad request", "400"}},
}

func classifyMessage(msg string) domain.ErrorCode {
	msg = strings.ToLower(msg)
	for _, rule := range messageRules {
		for _, n := range rule.needles {
			if strings.Contains(msg, n) {
				return rule.code
			}
		}
	}
	return domain.CodeUnknownError
}

// Wrap converts err into a *domain.ProviderError for model. An existing
// ProviderError is returned as is, with the model filled in when missing.
func Wrap(err error, model string) *domain.ProviderError {
	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		if pe.Model != "" {
			return pe
		}
		cp := *pe
		cp.Model = model
		return &cp
	}
	return domain.NewProviderError(Classify(err), model, err)
}
