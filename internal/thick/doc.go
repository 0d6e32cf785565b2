// Package thick translates between thick triples and OFN expressions.
//
// A thick triple is an RDF triple whose subject or object may be a nested
// JSON object standing for a blank-node structure: restrictions, boolean
// class constructors, data ranges and RDF lists. Each supported triple maps
// to exactly one OFN axiom.
//
// The predicate table is closed. Predicates are resolved to a Predicate and
// dispatched by an exhaustive switch; anything else is rejected with
// domain.ErrUnknownPredicate. Property-dependent constructs whose kind cannot
// be read off the triple (someValuesFrom on a plain IRI, rdfs:subPropertyOf,
// ...) decode to untyped operators that the typing pass resolves later.
package thick
