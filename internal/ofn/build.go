package ofn

import (
	"fmt"

	"wiring/internal/domain"
)

// Build validates and constructs an operator. Entity kinds are re-derived
// from the argument positions, cardinality literals are normalized to
// xsd:nonNegativeInteger and the argument slice is copied.
func Build(name string, args ...Expr) (Expr, error) {
	sig, ok := grammar[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %q", domain.ErrGrammar, name)
	}
	sorts, err := sig.argSorts(name, len(args), func(i int) bool {
		return IsOp(args[i], OpAnnotation)
	})
	if err != nil {
		return nil, err
	}

	out := make([]Expr, len(args))
	for i, arg := range args {
		placed, err := place(sorts[i], arg)
		if err != nil {
			return nil, fmt.Errorf("%w (argument %d of %s)", err, i+1, name)
		}
		out[i] = placed
	}
	return &Operator{name: name, args: out}, nil
}

// MustBuild is like Build but panics on error. Intended for fixed
// expressions in tests and tables.
func MustBuild(name string, args ...Expr) Expr {
	e, err := Build(name, args...)
	if err != nil {
		panic(err)
	}
	return e
}

// place checks that arg may appear at a position of the given sort and
// returns it with its kind fixed for that position
func place(sort Sort, arg Expr) (Expr, error) {
	switch a := arg.(type) {
	case *Entity:
		if a == nil || !entityAllowed(sort, a) {
			return nil, sortError(sort, arg)
		}
		kind := kindFor(sort, a.IRI)
		if kind == a.Kind {
			return a, nil
		}
		return &Entity{Kind: kind, IRI: a.IRI, Label: a.Label}, nil
	case *Literal:
		if a == nil || !literalAllowed(sort, a) {
			return nil, sortError(sort, arg)
		}
		if sort == SortCardinality && a.Datatype != domain.XSDNonNegativeInteger {
			return &Literal{Lexical: a.Lexical, Datatype: domain.XSDNonNegativeInteger}, nil
		}
		return a, nil
	case *Operator:
		if a == nil || !operatorAllowed(sort, grammar[a.name].result) {
			return nil, sortError(sort, arg)
		}
		return a, nil
	default:
		return nil, sortError(sort, arg)
	}
}

func kindFor(sort Sort, iri string) Kind {
	if IsAnonymous(iri) {
		return KindAnonymousIndividual
	}
	switch sort {
	case SortClass, SortNamedClass:
		return KindClass
	case SortObjectProperty, SortNamedObjectProperty, SortSubObjectProperty:
		return KindObjectProperty
	case SortDataProperty:
		return KindDataProperty
	case SortAnnotationProperty:
		return KindAnnotationProperty
	case SortIndividual:
		return KindNamedIndividual
	case SortDataRange, SortDatatype:
		return KindDatatype
	default:
		return KindUnknown
	}
}

func entityAllowed(sort Sort, e *Entity) bool {
	iri := e.IRI
	if iri == "" && e.Label == "" {
		return false
	}
	switch sort {
	case SortAny, SortIndividual, SortAnnotationSubject, SortAnnotationValue:
		return true
	case SortClass, SortNamedClass, SortObjectProperty, SortNamedObjectProperty,
		SortSubObjectProperty, SortDataProperty, SortAnnotationProperty,
		SortDataRange, SortDatatype, SortProperty, SortFiller, SortIRI, SortFacet:
		return !IsAnonymous(iri)
	default:
		return false
	}
}

func literalAllowed(sort Sort, lit *Literal) bool {
	switch sort {
	case SortAny, SortLiteral, SortAnnotationValue:
		return true
	case SortCardinality:
		return isDigits(lit.Lexical)
	default:
		return false
	}
}

func operatorAllowed(sort, result Sort) bool {
	if sort == SortAny || sort == result {
		return true
	}
	switch sort {
	case SortSubObjectProperty:
		return result == SortObjectProperty || result == SortPropertyChain
	case SortProperty:
		return result == SortObjectProperty
	case SortFiller:
		return result == SortClass || result == SortDataRange
	default:
		return false
	}
}

func sortError(sort Sort, arg Expr) error {
	return fmt.Errorf("%w: expected %s, got %s", domain.ErrGrammar, sort, describe(arg))
}

func describe(e Expr) string {
	switch v := e.(type) {
	case *Entity:
		if v == nil {
			return "nil entity"
		}
		return "entity " + v.IRI
	case *Literal:
		if v == nil {
			return "nil literal"
		}
		return "literal " + formatLiteral(v)
	case *Operator:
		if v == nil {
			return "nil operator"
		}
		return "operator " + v.name
	default:
		return "nothing"
	}
}
