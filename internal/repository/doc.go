// Package repository defines the data access interfaces for wiring.
//
// This package provides the storage abstraction for LDTab statement tables.
// The actual implementation is in the sqlite subpackage.
//
// # StatementStore Interface
//
// A statement row mirrors the LDTab layout: assertion, retraction, graph,
// subject, predicate, object, datatype and annotation. Subject, object and
// annotation cells hold either a plain identifier or literal, or the JSON
// text of a nested thick-triple object.
//
// Besides row access the store answers the two lookups the translation
// pipelines need: declaration types (rdf:type to a declaration tag) and
// labels for a set of identifiers.
//
// # Retractions
//
// Rows with a non-zero retraction column are kept in the table but are
// invisible to every read operation.
//
// # Testing
//
// The sqlite store is tested against in-memory databases.
package repository
