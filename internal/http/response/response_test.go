package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/local-hotel/internal/apperr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestKind_SerializesOnlyAtBoundary(t *testing.T) {
	b, err := json.Marshal(Problem{Status: KindFail, Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"fail","message":"m"}`, string(b))

	b, err = json.Marshal(Problem{Status: KindError, Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"m"}`, string(b))
}

func TestData(t *testing.T) {
	rec := httptest.NewRecorder()
	Data(rec, http.StatusCreated, "guest", map[string]any{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success","data":{"guest":{"id":1}}}`, rec.Body.String())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{"invalid", apperr.Invalid("first_name is required"), http.StatusBadRequest, "fail", "first_name is required"},
		{"unauthorized", apperr.Unauthorized("Invalid email or password"), http.StatusUnauthorized, "fail", "Invalid email or password"},
		{"not found", apperr.NotFound("Booking with ID: %d not found", 7), http.StatusNotFound, "fail", "Booking with ID: 7 not found"},
		{"conflict", apperr.Conflict("Guest with that email already exists"), http.StatusConflict, "fail", "Guest with that email already exists"},
		{"rate limit", oops.Code(apperr.CodeRateLimit).Errorf("slow down"), http.StatusTooManyRequests, "fail", "slow down"},
		{"uncoded oops", oops.Errorf("pool exhausted"), http.StatusInternalServerError, "error", internalMessage},
		{"other code", oops.Code("DB_QUERY_FAILED").Errorf("relation missing"), http.StatusInternalServerError, "error", internalMessage},
		{"plain error", errors.New("driver: bad connection"), http.StatusInternalServerError, "error", internalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)

			FromError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.wantKind, body["status"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestFromError_DoesNotLeakInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	FromError(rec, req, errors.New(`pq: password authentication failed for user "postgres"`))

	assert.NotContains(t, rec.Body.String(), "postgres")
}
