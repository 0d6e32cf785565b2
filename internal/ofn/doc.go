// Package ofn holds the OWL Functional Syntax expression tree shared by every
// translation pass, together with its JSON S-expression grammar.
//
// An expression is one of three variants:
//
//   - *Entity   a named or anonymous entity, e.g. "ex:Dog" or "_:b0"
//   - *Literal  an RDF literal, e.g. "\"3\"^^xsd:integer" or "\"dog\"@en"
//   - *Operator an OFN operator applied to arguments, e.g. ["SubClassOf","ex:A","ex:B"]
//
// Trees are only produced by Parse and Build, both of which validate the
// operator table in grammar.go. The kind of an entity is never read from the
// input: it is derived from the argument position the entity occupies, so the
// same tree always serializes to the same text and parses back to itself.
//
// Trees are immutable. Passes such as typing and labeling use Rewrite to
// build new trees and leave their input untouched.
package ofn
