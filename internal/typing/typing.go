// Package typing resolves untyped OFN operators into their Object, Data or
// Annotation forms using the structure of the expression and a map of
// declared entity types.
package typing

import (
	"wiring/internal/domain"
	"wiring/internal/ofn"
)

// Extract builds a type map from rdf:type triples whose object is a
// declaration tag. Identifiers that are never declared get no entry.
func Extract(triples []domain.Triple) domain.TypeMap {
	prefixes := domain.DefaultPrefixes()
	m := domain.TypeMap{}
	for _, t := range triples {
		if !isTypePredicate(t.Predicate, prefixes) || t.Subject.IsNested() || !t.ObjectEntry().IsIRI() {
			continue
		}
		tag := prefixes.Compact(t.Object.Value)
		if domain.IsDeclarationTag(tag) {
			m.Add(t.Subject.Value, tag)
		}
	}
	return m
}

func isTypePredicate(p string, prefixes domain.Prefixes) bool {
	return p == domain.RDFType || p == "type" || prefixes.Compact(p) == domain.RDFType
}

// Inject returns e with every untyped operator that can be resolved
// replaced by its typed form. Operators that stay ambiguous are kept
// unchanged; Inject never fails.
func Inject(e ofn.Expr, types domain.TypeMap) ofn.Expr {
	r := resolver{types: types}
	return ofn.Rewrite(e, r.rewrite)
}

type category int

const (
	unknown category = iota
	object
	data
	annotation
)

// typed operator names indexed by category
type forms [4]string

var untyped = map[string]forms{
	ofn.OpSomeValuesFrom:       {object: ofn.OpObjectSomeValuesFrom, data: ofn.OpDataSomeValuesFrom},
	ofn.OpAllValuesFrom:        {object: ofn.OpObjectAllValuesFrom, data: ofn.OpDataAllValuesFrom},
	ofn.OpMinCardinality:       {object: ofn.OpObjectMinCardinality, data: ofn.OpDataMinCardinality},
	ofn.OpMaxCardinality:       {object: ofn.OpObjectMaxCardinality, data: ofn.OpDataMaxCardinality},
	ofn.OpExactCardinality:     {object: ofn.OpObjectExactCardinality, data: ofn.OpDataExactCardinality},
	ofn.OpSubPropertyOf:        {object: ofn.OpSubObjectPropertyOf, data: ofn.OpSubDataPropertyOf, annotation: ofn.OpSubAnnotationPropertyOf},
	ofn.OpEquivalentProperties: {object: ofn.OpEquivalentObjectProperties, data: ofn.OpEquivalentDataProperties},
	ofn.OpDisjointProperties:   {object: ofn.OpDisjointObjectProperties, data: ofn.OpDisjointDataProperties},
	ofn.OpPropertyDomain:       {object: ofn.OpObjectPropertyDomain, data: ofn.OpDataPropertyDomain, annotation: ofn.OpAnnotationPropertyDomain},
	ofn.OpPropertyRange:        {object: ofn.OpObjectPropertyRange, data: ofn.OpDataPropertyRange, annotation: ofn.OpAnnotationPropertyRange},
	ofn.OpFunctionalProperty:   {object: ofn.OpFunctionalObjectProperty, data: ofn.OpFunctionalDataProperty},
}

type resolver struct {
	types domain.TypeMap
}

func (r resolver) rewrite(e ofn.Expr) ofn.Expr {
	op, ok := e.(*ofn.Operator)
	if !ok {
		return e
	}
	f, ok := untyped[op.Name()]
	if !ok {
		return e
	}

	cat := r.categorize(op)
	if cat == unknown || f[cat] == "" {
		return e
	}
	typed, err := ofn.Build(f[cat], op.Args()...)
	if err != nil {
		return e
	}
	return typed
}

// categorize decides the form of an untyped operator. Evidence from the
// expression itself wins over the type map; property tags win over filler
// tags.
func (r resolver) categorize(op *ofn.Operator) category {
	body := op.Body()
	var props, fillers []ofn.Expr

	switch op.Name() {
	case ofn.OpSomeValuesFrom, ofn.OpAllValuesFrom, ofn.OpPropertyRange:
		props, fillers = body[:1], body[1:]
	case ofn.OpMinCardinality, ofn.OpMaxCardinality, ofn.OpExactCardinality:
		props, fillers = body[1:2], body[2:]
	case ofn.OpPropertyDomain:
		props = body[:1]
	default:
		props = body
	}

	steps := []func() category{
		func() category { return firstKnown(props, structuralProperty) },
		func() category { return firstKnown(fillers, structuralFiller) },
		func() category { return firstKnown(props, r.taggedProperty) },
		func() category { return firstKnown(fillers, r.taggedFiller) },
	}
	for _, step := range steps {
		if cat := step(); cat != unknown {
			return cat
		}
	}
	return unknown
}

func firstKnown(exprs []ofn.Expr, fn func(ofn.Expr) category) category {
	for _, e := range exprs {
		if cat := fn(e); cat != unknown {
			return cat
		}
	}
	return unknown
}

func structuralProperty(e ofn.Expr) category {
	if ofn.IsOp(e, ofn.OpObjectInverseOf) {
		return object
	}
	return unknown
}

func structuralFiller(e ofn.Expr) category {
	switch v := e.(type) {
	case *ofn.Operator:
		if ofn.IsClassExpression(v) {
			return object
		}
		if ofn.IsDataRange(v) {
			return data
		}
	case *ofn.Literal:
		return data
	case *ofn.Entity:
		if domain.IsBuiltinClass(v.IRI) {
			return object
		}
		if domain.IsBuiltinDatatype(v.IRI) {
			return data
		}
	}
	return unknown
}

func (r resolver) taggedProperty(e ofn.Expr) category {
	iri := ofn.IRIOf(e)
	if iri == "" {
		return unknown
	}
	isObject := r.types.Has(iri, domain.OWLObjectProperty)
	isData := r.types.Has(iri, domain.OWLDatatypeProperty)
	isAnnotation := r.types.Has(iri, domain.OWLAnnotationProperty)
	switch {
	case isObject && !isData && !isAnnotation:
		return object
	case isData && !isObject && !isAnnotation:
		return data
	case isAnnotation && !isObject && !isData:
		return annotation
	default:
		return unknown
	}
}

func (r resolver) taggedFiller(e ofn.Expr) category {
	iri := ofn.IRIOf(e)
	if iri == "" {
		return unknown
	}
	isClass := r.types.Has(iri, domain.OWLClass)
	isDatatype := r.types.Has(iri, domain.RDFSDatatype)
	switch {
	case isClass && !isDatatype:
		return object
	case isDatatype && !isClass:
		return data
	default:
		return unknown
	}
}
