package response

import (
	"encoding/json"
	"net/http"

	"github.com/samber/oops"

	"github.com/diagnosis/local-hotel/internal/apperr"
	"github.com/diagnosis/local-hotel/pkg/logger"
)

// Kind separates caller mistakes from server faults. It is only turned into
// the wire strings "fail" and "error" when an envelope is encoded.
type Kind int

const (
	KindFail Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "fail"
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Problem is the body of every non-2xx response.
type Problem struct {
	Status  Kind   `json:"status"`
	Message string `json:"message"`
}

const (
	StatusSuccess   = "success"
	internalMessage = "Something went wrong. Please try again later."
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// Data writes {"status":"success","data":{key: value}}.
func Data(w http.ResponseWriter, statusCode int, key string, value any) {
	JSON(w, statusCode, map[string]any{
		"status": StatusSuccess,
		"data":   map[string]any{key: value},
	})
}

func Fail(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, Problem{Status: KindFail, Message: message})
}

// Internal writes a 500 with a generic message. Details stay in the logs.
func Internal(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, Problem{Status: KindError, Message: internalMessage})
}

// FromError maps coded client errors to 4xx fail envelopes and everything else
// to a 500 error envelope, logging the cause.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	if oe, ok := oops.AsOops(err); ok {
		if status, known := statusFor(oe.Code()); known {
			Fail(w, status, oe.Error())
			return
		}
	}

	logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	Internal(w)
}

func statusFor(code any) (int, bool) {
	switch code {
	case apperr.CodeInvalidInput:
		return http.StatusBadRequest, true
	case apperr.CodeUnauthorized:
		return http.StatusUnauthorized, true
	case apperr.CodeNotFound:
		return http.StatusNotFound, true
	case apperr.CodeConflict:
		return http.StatusConflict, true
	case apperr.CodeRateLimit:
		return http.StatusTooManyRequests, true
	}
	return 0, false
}
