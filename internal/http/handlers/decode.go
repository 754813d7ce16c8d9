package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/samber/oops"

	"github.com/diagnosis/local-hotel/internal/http/response"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into dst. On failure it writes a 400 and
// returns false. Field-level errors raised by custom unmarshalers keep their
// own message.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if _, ok := oops.AsOops(err); ok {
			response.FromError(w, r, err)
			return false
		}
		response.Fail(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
