package tsv

import (
	"math"
	"strings"
)

// Separators used throughout: tab delimits fields within a line, colon
// delimits alternatives within a field (Expand) or joins grouped values
// (Aggregate).
const (
	FieldSep = "\t"
	ValueSep = ":"
)

// Mode values recognized by callers when selecting a transformation.
const (
	ModeNormalize   = "normalize"
	ModeDenormalize = "denormalize"
)

// SplitLines splits a document into lines, treating CR, LF, and CRLF
// uniformly. Interior empty lines are preserved; trailing empty lines are
// dropped, so a conventional trailing newline does not produce a phantom
// line. An empty document yields no lines.
func SplitLines(doc string) []string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.ReplaceAll(doc, "\r", "\n")
	doc = strings.TrimRight(doc, "\n")
	if doc == "" {
		return nil
	}
	return strings.Split(doc, "\n")
}

// Expand performs the cross-product expansion: each line is split into
// tab-separated fields, each field into colon-separated alternatives, and
// one output line is emitted per choice of exactly one alternative per
// field. The first field's first alternative varies slowest and the last
// field's alternatives vary fastest; all output from one input line precedes
// output from the next. Every emitted line ends with a single LF.
//
// Expand never fails. A field without colons yields itself as its only
// alternative, and an empty field yields exactly one empty alternative, so
// every line produces at least one output line.
func Expand(doc string) string {
	var b strings.Builder
	for _, line := range SplitLines(doc) {
		expandLine(line, &b)
	}
	return b.String()
}

// expandLine writes every combination for one line using an iterative
// odometer over the per-field alternative counts, which keeps the emission
// order depth-first without recursing per field.
func expandLine(line string, b *strings.Builder) {
	fields := strings.Split(line, FieldSep)
	alts := make([][]string, len(fields))
	for i, f := range fields {
		alts[i] = strings.Split(f, ValueSep)
	}

	idx := make([]int, len(alts))
	for {
		for i, a := range alts {
			if i > 0 {
				b.WriteString(FieldSep)
			}
			b.WriteString(a[idx[i]])
		}
		b.WriteByte('\n')

		// Advance the odometer, last field fastest.
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(alts[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

// Aggregate is the inverse of Expand for key/value documents: lines are
// split on tabs, the first field is the key and the second the value, and
// values are grouped per key in first-seen key order. Each key produces one
// output line with its values joined by colons, terminated by LF.
//
// Lines with fewer than two fields are dropped silently; fields beyond the
// second are ignored. Aggregate never fails.
func Aggregate(doc string) string {
	type group struct {
		key    string
		values []string
	}
	var groups []group
	index := make(map[string]int)

	for _, line := range SplitLines(doc) {
		fields := strings.Split(line, FieldSep)
		if len(fields) < 2 {
			continue
		}
		key, value := fields[0], fields[1]
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}
		groups[i].values = append(groups[i].values, value)
	}

	var b strings.Builder
	for _, g := range groups {
		b.WriteString(g.key)
		b.WriteString(FieldSep)
		b.WriteString(strings.Join(g.values, ValueSep))
		b.WriteByte('\n')
	}
	return b.String()
}

// Combinations returns the number of lines Expand would emit for doc,
// without expanding anything: the sum over lines of the product of each
// field's alternative count. Expansion is exponential in the number of
// multi-valued fields, so callers use this to refuse oversized requests
// before doing the work. The result saturates at math.MaxInt64.
func Combinations(doc string) int64 {
	var total int64
	for _, line := range SplitLines(doc) {
		n := int64(1)
		for _, f := range strings.Split(line, FieldSep) {
			c := int64(strings.Count(f, ValueSep)) + 1
			if n > math.MaxInt64/c {
				return math.MaxInt64
			}
			n *= c
		}
		if total > math.MaxInt64-n {
			return math.MaxInt64
		}
		total += n
	}
	return total
}
