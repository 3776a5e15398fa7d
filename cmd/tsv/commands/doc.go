// Package commands defines the tsv CLI, the command-line counterpart of the
// transform service.
//
// Commands
//
//   - normalize      Expand multi-valued cells into one row per combination
//   - denormalize    Group repeated keys into colon-joined multi-valued cells
//
// Both commands read tab-separated text from stdin (or --input) and write the
// transformed text to stdout (or --output), applying the same validation as
// the HTTP endpoint.
package commands
