package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/GregMSThompson/finan-bff/internal/errs"
)

// SessionHeader identifies the UI session for per-session state.
const SessionHeader = "X-Session-ID"

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewValidationError("invalid request body")
	}
	return nil
}

// queryInt reads an optional integer query parameter; absent means def.
func queryInt(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.NewValidationError(key + " must be an integer")
	}
	return n, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errs.NewValidationError(key + " must be true or false")
	}
	return b, nil
}
