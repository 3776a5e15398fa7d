package tsv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned by CheckDocument when the document contains no
// text at all.
var ErrEmptyInput = errors.New("empty input")

// CheckDocument validates a document before Expand is invoked: the document
// must be non-empty and every non-blank line must contain a tab separator.
// Blank lines are allowed (they expand to a single empty output line).
//
// The transformations themselves never fail; this check exists so callers
// can reject malformed input with a useful diagnostic instead of silently
// producing degenerate output.
func CheckDocument(doc string) error {
	if strings.TrimSpace(doc) == "" {
		return ErrEmptyInput
	}
	return CheckSeparators(doc)
}

// CheckSeparators verifies that every non-blank line contains the tab field
// separator, reporting the first line that does not.
func CheckSeparators(doc string) error {
	for i, line := range SplitLines(doc) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.Contains(line, FieldSep) {
			return fmt.Errorf("line %d: missing tab separator", i+1)
		}
	}
	return nil
}
