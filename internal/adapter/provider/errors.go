// Package provider holds the error mapping shared by the upstream AI API
// clients in its subpackages.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

// maxDetail bounds how much of an upstream error body is kept in the cause.
const maxDetail = 512

// FromStatus maps a non-2xx upstream response to a ProviderError.
func FromStatus(status int, model, detail string) *domain.ProviderError {
	if len(detail) > maxDetail {
		detail = detail[:maxDetail]
	}
	cause := fmt.Errorf("upstream status %d: %s", status, detail)
	return domain.NewProviderError(CodeForStatus(status), model, cause)
}

// CodeForStatus maps an HTTP status code to an ErrorCode.
func CodeForStatus(status int) domain.ErrorCode {
	switch {
	case status == http.StatusTooManyRequests:
		return domain.CodeRateLimitExceeded
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return domain.CodeOperationTimeout
	case status >= 500:
		return domain.CodeNetworkError
	case status >= 400:
		return domain.CodeInvalidRequest
	default:
		return domain.CodeUnknownError
	}
}

// FromTransport maps an error that prevented a response from arriving.
// Caller cancellation is not retryable; everything else on the wire is.
func FromTransport(err error, model string) *domain.ProviderError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewProviderError(domain.CodeOperationTimeout, model, err)
	case errors.Is(err, context.Canceled):
		return domain.NewProviderError(domain.CodeUnknownError, model, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return domain.NewProviderError(domain.CodeOperationTimeout, model, err)
	default:
		return domain.NewProviderError(domain.CodeNetworkError, model, err)
	}
}

// EmptyReply is returned when an upstream answered 2xx without content.
func EmptyReply(model string) *domain.ProviderError {
	return domain.NewProviderError(domain.CodeUnknownError, model, errors.New("empty reply"))
}
