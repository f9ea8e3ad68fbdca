package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/domain"
)

const maxBodyBytes = 1 << 20

// errorResponse is the body of every failed request.
type errorResponse struct {
	Status      string        `json:"status"`
	Message     string        `json:"message"`
	Code        string        `json:"code,omitempty"`
	Details     []fieldDetail `json:"details,omitempty"`
	Flags       []string      `json:"flags,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// rejectionResponse is the 422 body. Flags and suggestions are always
// present, even when the reviewer returned none.
type rejectionResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Code        string   `json:"code"`
	Flags       []string `json:"flags"`
	Suggestions []string `json:"suggestions"`
}

type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// dataResponse wraps a successful payload.
type dataResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type listResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Status: "error", Message: message, Code: code})
}

// respondError maps a service error to a status code and a client-safe
// body. Anything unrecognized is logged and reported as a bare 500.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		valErr     *domain.ValidationError
		safetyErr  *domain.SafetyRejectionError
		providerEr *domain.ProviderError
	)

	switch {
	case errors.As(err, &valErr):
		details := make([]fieldDetail, 0, len(valErr.Errors))
		for _, fe := range valErr.Errors {
			details = append(details, fieldDetail{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Message: "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: details,
		})
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "authentication required", "UNAUTHORIZED")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "FORBIDDEN")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists", "ALREADY_EXISTS")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "CONFLICT")
	case errors.As(err, &safetyErr):
		log.WarnContext(r.Context(), "content rejected",
			slog.Any("flags", safetyErr.Flags),
			slog.Float64("confidence", safetyErr.Confidence),
		)
		writeJSON(w, http.StatusUnprocessableEntity, rejectionResponse{
			Status:      "error",
			Message:     "generated content did not pass the safety review",
			Code:        "CONTENT_REJECTED",
			Flags:       nonNil(safetyErr.Flags),
			Suggestions: nonNil(safetyErr.Suggestions),
		})
	case errors.Is(err, domain.ErrNotSupported):
		writeError(w, http.StatusNotImplemented, "operation not supported by the selected model", "NOT_SUPPORTED")
	case errors.As(err, &providerEr):
		log.ErrorContext(r.Context(), "ai provider failure",
			slog.String("code", providerEr.Code.String()),
			slog.String("model", providerEr.Model),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "ai provider request failed", providerEr.Code.String())
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// decodeJSON reads a JSON body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "request body is empty", "VALIDATION_ERROR")
		default:
			writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION_ERROR")
		}
		return false
	}
	return true
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a valid uuid")
	}
	return id, nil
}

// query reads optional query parameters and collects parse errors.
type query struct {
	values map[string][]string
	errs   []domain.FieldError
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) string(name string) *string {
	v, ok := q.values[name]
	if !ok || len(v) == 0 || v[0] == "" {
		return nil
	}
	return &v[0]
}

func (q *query) int(name string) *int {
	s := q.string(name)
	if s == nil {
		return nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: "must be an integer"})
		return nil
	}
	return &n
}

func (q *query) intOr(name string, def int) int {
	if n := q.int(name); n != nil {
		return *n
	}
	return def
}

func (q *query) bool(name string) bool {
	s := q.string(name)
	if s == nil {
		return false
	}
	b, err := strconv.ParseBool(*s)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: "must be a boolean"})
		return false
	}
	return b
}

func (q *query) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return domain.NewValidationErrors(q.errs)
}
