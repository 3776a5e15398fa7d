package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tsvd/internal/history"
	"tsvd/internal/logging"
	"tsvd/internal/tsv"
)

// unknownModeBody is returned verbatim, with status 200, when the mode
// parameter is not one of the two recognized values. Deliberately not an
// error status: the page shows it in the result pane like any other output.
const unknownModeBody = "invalid mode: use \"normalize\" or \"denormalize\"\n"

// handleIndex serves the embedded tool page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/tsv.html")
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleTransform runs one transformation over the raw request body.
//
// The mode query parameter selects the operation: "normalize" expands
// multi-valued cells into the cross-product of rows, "denormalize" groups
// repeated keys back into multi-valued cells. A missing mode defaults to
// normalize; an unrecognized mode returns a fixed diagnostic body.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Transform.MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, r, errBodyTooLarge, http.StatusRequestEntityTooLarge)
		} else {
			respondError(w, r, err, http.StatusBadRequest)
		}
		return
	}
	doc := string(body)

	if strings.TrimSpace(doc) == "" {
		respondError(w, r, tsv.ErrEmptyInput, http.StatusBadRequest)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = tsv.ModeNormalize
	}

	start := time.Now()
	var result string
	switch mode {
	case tsv.ModeNormalize:
		if err := tsv.CheckSeparators(doc); err != nil {
			respondError(w, r, err, http.StatusBadRequest)
			return
		}
		if n := tsv.Combinations(doc); n > s.cfg.Transform.MaxOutputLines {
			respondError(w, r,
				fmt.Errorf("expansion too large: %d lines exceeds limit of %d", n, s.cfg.Transform.MaxOutputLines),
				http.StatusRequestEntityTooLarge)
			return
		}
		result = tsv.Expand(doc)

	case tsv.ModeDenormalize:
		result = tsv.Aggregate(doc)

	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, unknownModeBody)
		return
	}

	s.recordHistory(r, mode, doc, result, time.Since(start))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, result)
}

// recordHistory stores metadata about a completed transformation when the
// history store is configured. Failures are logged, never surfaced: history
// is an observability aid and must not break the transform itself.
func (s *Server) recordHistory(r *http.Request, mode, doc, result string, elapsed time.Duration) {
	if s.history == nil {
		return
	}

	entry := history.Entry{
		Mode:        mode,
		InputBytes:  len(doc),
		InputLines:  len(tsv.SplitLines(doc)),
		OutputLines: int64(strings.Count(result, "\n")),
		Duration:    elapsed,
		RemoteAddr:  r.RemoteAddr,
	}

	if _, err := s.history.Record(r.Context(), entry); err != nil {
		logging.FromContext(r.Context()).Error("history record failed", "error", err)
	}
}

// handleHistory returns recent transform history entries as JSON.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, r, errors.New("history disabled"), http.StatusNotFound)
		return
	}

	limit := parseIntParam(r, "limit", s.cfg.History.RecentLimit)
	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, struct {
		Entries []history.Entry `json:"entries"`
	}{Entries: entries})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
