// Package ldtab assembles OFN axioms from the columns of LDTab statement rows
// and writes axioms back as rows.
package ldtab

import (
	"encoding/json"
	"fmt"
	"strings"

	"wiring/internal/domain"
	"wiring/internal/ofn"
	"wiring/internal/thick"
)

// Assembler converts between LDTab rows and OFN axioms
type Assembler struct {
	codec *thick.Codec
	graph string
}

// New creates an assembler. Rows written by FromOFN are placed in graph.
// The codec always uses the LDTab flavor.
func New(graph string, opts ...thick.Option) *Assembler {
	opts = append(opts[:len(opts):len(opts)], thick.WithFlavor(thick.FlavorLDTab))
	return &Assembler{
		codec: thick.New(opts...),
		graph: graph,
	}
}

var std = New("")

// Assemble translates a subject, predicate and object to an OFN axiom using
// the default assembler
func Assemble(subject, predicate, object string) (ofn.Expr, error) {
	return std.Assemble(subject, predicate, object)
}

// AssembleStatement translates a statement row using the default assembler
func AssembleStatement(stmt domain.Statement) (ofn.Expr, error) {
	return std.AssembleStatement(stmt)
}

// ParseObject translates an object column using the default assembler
func ParseObject(object string) (ofn.Expr, error) {
	return std.ParseObject(object)
}

// FromOFN writes an axiom as a statement row using the default assembler
func FromOFN(e ofn.Expr) (domain.Statement, error) {
	return std.FromOFN(e)
}

// Assemble translates a subject, predicate and object to an OFN axiom. Each
// field is either an identifier or the JSON text of a nested object.
func (a *Assembler) Assemble(subject, predicate, object string) (ofn.Expr, error) {
	return a.AssembleStatement(domain.Statement{
		Assertion: 1,
		Graph:     a.graph,
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	})
}

// AssembleStatement translates a statement row, honoring its datatype and
// annotation columns
func (a *Assembler) AssembleStatement(stmt domain.Statement) (ofn.Expr, error) {
	t, err := stmt.Triple()
	if err != nil {
		return nil, err
	}
	return a.codec.ToOFN(t)
}

// ParseObject translates an object column alone to the class expression,
// property expression or data range it encodes. Identifiers become
// entities.
func (a *Assembler) ParseObject(object string) (ofn.Expr, error) {
	trimmed := strings.TrimSpace(object)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty object", domain.ErrMalformedObject)
	}
	if !strings.HasPrefix(trimmed, "{") {
		return ofn.NewEntity(trimmed), nil
	}
	if !json.Valid([]byte(trimmed)) {
		return nil, fmt.Errorf("%w: object is not valid JSON", domain.ErrSyntax)
	}
	var obj domain.Object
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, err
	}
	return a.codec.ObjectToOFN(obj)
}

// FromOFN writes an axiom as an asserted statement row
func (a *Assembler) FromOFN(e ofn.Expr) (domain.Statement, error) {
	t, err := a.codec.FromOFN(e)
	if err != nil {
		return domain.Statement{}, err
	}
	stmt, err := domain.FromTriple(t, a.graph)
	if err != nil {
		return domain.Statement{}, fmt.Errorf("failed to encode statement: %w", err)
	}
	return stmt, nil
}
