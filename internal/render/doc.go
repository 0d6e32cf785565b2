// Package render turns OFN expressions into documentation: an indented
// natural language description, Manchester syntax, and a Document bundling
// both with stable identifiers.
//
// Entities are shown by label when the labeling pass set one, and by
// identifier otherwise. Output is deterministic but is not meant to be
// parsed back.
package render
