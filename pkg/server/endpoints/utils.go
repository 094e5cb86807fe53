package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fantasy-forge/forge-api/pkg/config"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// pagination parses skip/limit query parameters. limit falls back to the
// configured default and is capped at the configured maximum.
func pagination(r *http.Request, cfg *config.ForgeConfig) (skip, limit int, ok bool) {
	skip = 0
	limit = 0

	if raw := r.URL.Query().Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		skip = n
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		limit = n
	}

	return skip, cfg.ClampLimit(limit), true
}
