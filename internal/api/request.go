package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/vytor/kaiwa/internal/errors"
)

const (
	maxJSONBodyBytes = 1 << 20
	maxAudioBytes    = 10 << 20
	maxListLimit     = 100
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errors.NewBadRequestError("request body is required")
		}
		return errors.NewBadRequestError(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

// queryLimit reads ?limit=. Zero means the caller's default applies.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.NewValidationError("limit", "must be a positive integer")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, nil
}

func queryOffset(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("offset")
	if raw == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, errors.NewValidationError("offset", "must be a non-negative integer")
	}
	return offset, nil
}
