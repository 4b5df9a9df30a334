// Package parser turns a textual cloud-CLI command into a validated
// ir.Command.
//
// The pipeline is: tokenize -> classify the operation (customization vs
// generic schema operation) -> shape flags and positionals into the
// parameter map -> resolve file-reference values under the configured
// working-directory sandbox -> validate required parameters -> assemble the
// immutable IR command.
//
// Every stage fails fast with exactly one of the structured error types in
// errors.go; no stage performs network I/O. The only side effect anywhere is
// the file-parameter resolver reading local files.
package parser
