// Package domain defines the value types shared by the wiring translation engine.
//
// This package contains the representations that travel between the OFN
// abstract syntax tree and the triple-oriented world of LDTab, together with the
// auxiliary maps consumed by the typing and labeling passes.
//
// # Core Types
//
// Triple is a thick triple: a subject, a predicate and an object where the
// object (and, for general class axioms, the subject) may be a nested
// expression instead of a plain identifier.
//
// Object and Entry model the nested values. An Object is either a string value
// (an identifier or the lexical form of a literal) or a map from predicates to
// lists of Entry values. Each Entry carries the datatype that qualifies its
// object, following the LDTab conventions: "_IRI" for identifiers, "_JSON" for
// nested objects, "@lang" for language tagged strings and a datatype CURIE for
// typed literals.
//
// Statement is a row of the LDTab statement table. Statement.Triple converts a
// row into a Triple by decoding the JSON columns.
//
// # Auxiliary Maps
//
// TypeMap records the declaration tags of identifiers (owl:Class,
// owl:ObjectProperty, ...). An identifier may carry several tags when it is
// punned. LabelMap records one human readable label per identifier.
//
// # Errors
//
// The error taxonomy of the engine lives here so that every component wraps
// the same sentinels: ErrSyntax, ErrGrammar, ErrUnknownPredicate,
// ErrUnsupportedAxiom, ErrMalformedObject and ErrTooDeep.
//
// # Design Principles
//
// - Immutable value objects where possible
// - No database or external dependencies
// - JSON shapes match the LDTab column encodings
package domain
