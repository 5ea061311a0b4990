package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// userIDParam extracts and parses the user_id query parameter.
func userIDParam(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return 0, fmt.Errorf(ErrMsgMissingQueryParam, "user_id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s", ErrMsgInvalidUserIDParam)
	}
	return id, nil
}

// nowParam extracts the optional RFC 3339 "now" query parameter, defaulting
// to the current UTC instant. Accepting the instant from the caller keeps
// queries reproducible and the core clock-free.
func nowParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("now")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid now parameter: must be RFC 3339")
	}
	return t.UTC(), nil
}
