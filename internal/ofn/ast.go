package ofn

import (
	"strconv"
	"strings"

	"wiring/internal/domain"
)

// Expr is an OFN expression. The interface is sealed: *Entity, *Literal and
// *Operator are the only implementations.
type Expr interface {
	isExpr()
}

// Kind classifies an entity by the position it occupies
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindObjectProperty
	KindDataProperty
	KindAnnotationProperty
	KindNamedIndividual
	KindAnonymousIndividual
	KindDatatype
)

var kindNames = [...]string{
	KindUnknown:             "Unknown",
	KindClass:               "Class",
	KindObjectProperty:      "ObjectProperty",
	KindDataProperty:        "DataProperty",
	KindAnnotationProperty:  "AnnotationProperty",
	KindNamedIndividual:     "NamedIndividual",
	KindAnonymousIndividual: "AnonymousIndividual",
	KindDatatype:            "Datatype",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Entity is a named entity or an anonymous individual
type Entity struct {
	Kind  Kind
	IRI   string
	Label string
}

// Literal is an RDF literal
type Literal struct {
	Lexical  string
	Datatype string
	Lang     string
}

// Operator is an OFN operator applied to its arguments
type Operator struct {
	name string
	args []Expr
}

func (*Entity) isExpr()   {}
func (*Literal) isExpr()  {}
func (*Operator) isExpr() {}

// NewEntity creates an entity of unknown kind. Identifiers starting with "_:"
// are anonymous individuals.
func NewEntity(iri string) *Entity {
	if IsAnonymous(iri) {
		return &Entity{Kind: KindAnonymousIndividual, IRI: iri}
	}
	return &Entity{IRI: iri}
}

// IsAnonymous reports whether iri names an anonymous individual
func IsAnonymous(iri string) bool {
	return strings.HasPrefix(iri, "_:")
}

// NewLiteral creates a typed literal. An empty datatype means xsd:string.
func NewLiteral(lexical, datatype string) *Literal {
	if datatype == "" {
		datatype = domain.XSDString
	}
	return &Literal{Lexical: lexical, Datatype: datatype}
}

// NewLangLiteral creates a language tagged literal
func NewLangLiteral(lexical, lang string) *Literal {
	return &Literal{Lexical: lexical, Datatype: domain.RDFLangString, Lang: lang}
}

// NewCardinality creates the literal used in cardinality restrictions
func NewCardinality(n int) *Literal {
	return &Literal{Lexical: strconv.Itoa(n), Datatype: domain.XSDNonNegativeInteger}
}

// WithLabel returns a copy of the entity carrying label
func (e *Entity) WithLabel(label string) *Entity {
	return &Entity{Kind: e.Kind, IRI: e.IRI, Label: label}
}

// Name returns the operator name
func (o *Operator) Name() string {
	return o.name
}

// Len returns the number of arguments
func (o *Operator) Len() int {
	return len(o.args)
}

// Arg returns the i-th argument
func (o *Operator) Arg(i int) Expr {
	return o.args[i]
}

// Args returns a copy of the arguments
func (o *Operator) Args() []Expr {
	out := make([]Expr, len(o.args))
	copy(out, o.args)
	return out
}

// Annotations returns the leading Annotation arguments of an axiom
func (o *Operator) Annotations() []*Operator {
	var out []*Operator
	for _, arg := range o.args {
		ann, ok := arg.(*Operator)
		if !ok || ann.name != OpAnnotation {
			break
		}
		out = append(out, ann)
	}
	return out
}

// Body returns the arguments following the leading annotations
func (o *Operator) Body() []Expr {
	n := len(o.Annotations())
	out := make([]Expr, len(o.args)-n)
	copy(out, o.args[n:])
	return out
}

// IsOp reports whether e is an operator named name
func IsOp(e Expr, name string) bool {
	op, ok := e.(*Operator)
	return ok && op.name == name
}

// IRIOf returns the IRI of an entity, or "" for other expressions
func IRIOf(e Expr) string {
	if ent, ok := e.(*Entity); ok {
		return ent.IRI
	}
	return ""
}

// Cardinality returns the integer value of a cardinality literal
func Cardinality(e Expr) (int, bool) {
	lit, ok := e.(*Literal)
	if !ok || !isDigits(lit.Lexical) {
		return 0, false
	}
	n, err := strconv.Atoi(lit.Lexical)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
