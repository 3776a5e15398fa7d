// Package tsv implements the two inverse transformations over tab-separated
// text that make up the heart of this service.
//
// This package is pure domain logic, independent of any transport: it can be
// driven by HTTP handlers, CLI commands, or tests without modification. It
// holds no state between calls and is safe for concurrent use.
//
// # Normalize (Expand)
//
// [Expand] splits every line into tab-separated fields, splits each field
// into colon-separated alternatives, and emits one output line per element
// of the cross-product, choosing exactly one alternative per field:
//
//	a:b	x:y
//
// expands to
//
//	a	x
//	a	y
//	b	x
//	b	y
//
// The first field's first alternative varies slowest, the last field's
// alternatives vary fastest, and input line order is preserved exactly.
//
// # Denormalize (Aggregate)
//
// [Aggregate] is the inverse: it groups two-field lines by their first field,
// in first-seen key order, and joins each key's values with colons:
//
//	k1	v1
//	k2	v2
//	k1	v3
//
// aggregates to
//
//	k1	v1:v3
//	k2	v2
//
// Lines with fewer than two fields are dropped; fields beyond the second are
// ignored.
//
// # Input handling
//
// Both operations accept any newline convention (CR, LF, CRLF) and always
// emit a single LF after every output line. Callers are expected to validate
// input first: [CheckSeparators] enforces that every non-blank line carries a
// tab, and [Combinations] reports how many lines Expand would emit so callers
// can refuse pathologically large expansions up front.
package tsv
