package restapi

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"

	"github.com/Matt-17/Dropblog/models"
)

// bearer token: scheme is case-insensitive, key is everything after the whitespace
var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(.+)$`)

// Respond - helper function for responding with only status code
func Respond(w http.ResponseWriter, code int) {
	w.WriteHeader(code)
}

// RespondWithJSON - writes payload as the JSON response body
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(encoded)
}

// RespondWithError - writes the admin API error envelope
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, models.ErrorResponse{Success: false, Message: message})
}

// RespondNotFound - JSON not-found fallback used for unmatched API routes
func RespondNotFound(w http.ResponseWriter) {
	RespondWithJSON(w, http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Message: "Not found",
		Code:    http.StatusNotFound,
	})
}

// RespondMethodNotAllowed - JSON fallback for known paths with a wrong method
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondWithJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{
		Success: false,
		Message: "Method not allowed",
		Code:    http.StatusMethodNotAllowed,
	})
}

// BearerAuth - guards admin routes with the configured API key
// Missing or malformed Authorization header responds 401, a wrong key 403
func BearerAuth(apiKey string, logInfo *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		matches := bearerPattern.FindStringSubmatch(r.Header.Get("Authorization"))
		if matches == nil {
			logInfo.Printf("Rejected admin request without bearer token. Path: %s", r.URL.Path)
			RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if matches[1] != apiKey {
			logInfo.Printf("Rejected admin request with wrong API key. Path: %s", r.URL.Path)
			RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}
