package web

// errors.go provides unified error response handling for the web layer.
//
// The transformation core is total and never fails; every error the service
// can surface originates at this boundary (bad input, oversized requests,
// rate limiting). Technical errors are logged with the request ID for
// correlation, while clients receive a short message with a code they can
// quote when asking for help.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// UserMessage provides user-facing error information with a support code.
type UserMessage struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Sentinel errors for conditions detected directly in this package.
var (
	errRateLimited  = errors.New("rate limit exceeded")
	errBodyTooLarge = errors.New("request body too large")
)

// errorPatterns maps technical error text (case-insensitive substring match)
// to user messages. The first matching pattern wins, so specific patterns
// come before general ones.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"empty input", UserMessage{
		Message: "No TSV data was supplied. Paste tab-separated text and try again.",
		Code:    "TSV001",
	}},
	{"missing tab separator", UserMessage{
		Message: "Malformed TSV: every non-blank line needs at least one tab between key and value.",
		Code:    "TSV002",
	}},
	{"expansion too large", UserMessage{
		Message: "This input expands to too many combinations. Reduce the number of multi-valued cells.",
		Code:    "TSV003",
	}},
	{"body too large", UserMessage{
		Message: "The request body exceeds the size limit. Split the input and try again.",
		Code:    "TSV004",
	}},
	{"history disabled", UserMessage{
		Message: "Transform history is not enabled on this server.",
		Code:    "HIST001",
	}},
	{"rate limit", UserMessage{
		Message: "Too many requests. Wait a moment before trying again.",
		Code:    "RATE001",
	}},
}

// defaultMessage is the fallback when no pattern matches (ERR000). Check the
// server logs for the original technical error when a user reports ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred. Please try again.",
	Code:    "ERR000",
}

// mapError converts a technical error to a user-facing message.
func mapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// respondError logs the technical error server-side and returns the mapped
// user message, as JSON for API clients and plain text otherwise.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := mapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(userMsg); err != nil {
			slog.Error("json encode failed", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(userMsg.Message + " (" + userMsg.Code + ")\n"))
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
