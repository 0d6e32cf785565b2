package thick

import (
	"fmt"
	"slices"
	"sort"

	"wiring/internal/domain"
	"wiring/internal/ofn"
)

var declarationOps = map[string]string{
	domain.OWLClass:              ofn.OpClass,
	domain.OWLObjectProperty:     ofn.OpObjectProperty,
	domain.OWLDatatypeProperty:   ofn.OpDataProperty,
	domain.OWLAnnotationProperty: ofn.OpAnnotationProperty,
	domain.OWLNamedIndividual:    ofn.OpNamedIndividual,
	domain.RDFSDatatype:          ofn.OpDatatype,
}

var characteristicOps = map[string]string{
	domain.OWLFunctionalProperty:        ofn.OpFunctionalProperty,
	domain.OWLInverseFunctionalProperty: ofn.OpInverseFunctionalObjectProperty,
	domain.OWLTransitiveProperty:        ofn.OpTransitiveObjectProperty,
	domain.OWLSymmetricProperty:         ofn.OpSymmetricObjectProperty,
	domain.OWLAsymmetricProperty:        ofn.OpAsymmetricObjectProperty,
	domain.OWLReflexiveProperty:         ofn.OpReflexiveObjectProperty,
	domain.OWLIrreflexiveProperty:       ofn.OpIrreflexiveObjectProperty,
}

// constructorKeys select the expression form of a nested object
var constructorKeys = []string{
	domain.OWLOnProperty,
	domain.OWLInverseOf,
	domain.OWLIntersectionOf,
	domain.OWLUnionOf,
	domain.OWLComplementOf,
	domain.OWLDatatypeComplementOf,
	domain.OWLOneOf,
	domain.OWLOnDatatype,
}

// constraintKeys are the mutually exclusive constraints of a restriction
var constraintKeys = []string{
	domain.OWLSomeValuesFrom,
	domain.OWLAllValuesFrom,
	domain.OWLHasValue,
	domain.OWLHasSelf,
	domain.OWLMinCardinality,
	domain.OWLMaxCardinality,
	domain.OWLCardinality,
	domain.OWLMinQualifiedCardinality,
	domain.OWLMaxQualifiedCardinality,
	domain.OWLQualifiedCardinality,
}

var qualifiedKeys = map[string]bool{
	domain.OWLMinQualifiedCardinality: true,
	domain.OWLMaxQualifiedCardinality: true,
	domain.OWLQualifiedCardinality:    true,
}

type cardinalityKey struct {
	key       string
	qualified bool
	object    string
	data      string
	untyped   string
}

var cardinalityKeys = []cardinalityKey{
	{domain.OWLMinCardinality, false, ofn.OpObjectMinCardinality, ofn.OpDataMinCardinality, ofn.OpMinCardinality},
	{domain.OWLMaxCardinality, false, ofn.OpObjectMaxCardinality, ofn.OpDataMaxCardinality, ofn.OpMaxCardinality},
	{domain.OWLCardinality, false, ofn.OpObjectExactCardinality, ofn.OpDataExactCardinality, ofn.OpExactCardinality},
	{domain.OWLMinQualifiedCardinality, true, ofn.OpObjectMinCardinality, ofn.OpDataMinCardinality, ofn.OpMinCardinality},
	{domain.OWLMaxQualifiedCardinality, true, ofn.OpObjectMaxCardinality, ofn.OpDataMaxCardinality, ofn.OpMaxCardinality},
	{domain.OWLQualifiedCardinality, true, ofn.OpObjectExactCardinality, ofn.OpDataExactCardinality, ofn.OpExactCardinality},
}

func (c *Codec) toOFN(d decoder, t domain.Triple) (ofn.Expr, error) {
	pred, curie := c.vocab.resolve(t.Predicate)
	if pred == PredicateUnknown {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPredicate, t.Predicate)
	}

	anns, err := d.annotations(t.Annotation)
	if err != nil {
		return nil, err
	}
	axiom := func(name string, args ...ofn.Expr) (ofn.Expr, error) {
		all := make([]ofn.Expr, 0, len(anns)+len(args))
		all = append(all, anns...)
		all = append(all, args...)
		return build(name, all...)
	}

	subject, err := d.expression(domain.Entry{Object: t.Subject}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to decode subject: %w", err)
	}
	objectEntry := t.ObjectEntry()
	object := func() (ofn.Expr, error) {
		o, err := d.expression(objectEntry, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to decode object: %w", err)
		}
		return o, nil
	}

	switch pred {
	case PredicateSubClassOf:
		o, err := object()
		if err != nil {
			return nil, err
		}
		return axiom(ofn.OpSubClassOf, subject, o)

	case PredicateEquivalentClass:
		o, err := object()
		if err != nil {
			return nil, err
		}
		if isDataFiller(o) {
			return axiom(ofn.OpDatatypeDefinition, subject, o)
		}
		return axiom(ofn.OpEquivalentClasses, subject, o)

	case PredicateDisjointWith:
		o, err := object()
		if err != nil {
			return nil, err
		}
		return axiom(ofn.OpDisjointClasses, subject, o)

	case PredicateDisjointUnionOf:
		members, err := d.list(objectEntry, 0, d.expression)
		if err != nil {
			return nil, fmt.Errorf("failed to decode object: %w", err)
		}
		return axiom(ofn.OpDisjointUnion, append([]ofn.Expr{subject}, members...)...)

	case PredicateSubPropertyOf, PredicateEquivalentProperty, PredicatePropertyDisjointWith:
		o, err := object()
		if err != nil {
			return nil, err
		}
		typed, untyped := propertyAxiomOps(pred)
		if isInverse(subject) || isInverse(o) {
			return axiom(typed, subject, o)
		}
		return axiom(untyped, subject, o)

	case PredicateInverseOf:
		o, err := object()
		if err != nil {
			return nil, err
		}
		return axiom(ofn.OpInverseObjectProperties, subject, o)

	case PredicateDomain:
		o, err := object()
		if err != nil {
			return nil, err
		}
		if isInverse(subject) {
			return axiom(ofn.OpObjectPropertyDomain, subject, o)
		}
		return axiom(ofn.OpPropertyDomain, subject, o)

	case PredicateRange:
		o, err := object()
		if err != nil {
			return nil, err
		}
		switch {
		case isDataFiller(o):
			return axiom(ofn.OpDataPropertyRange, subject, o)
		case isClassFiller(o) || isInverse(subject):
			return axiom(ofn.OpObjectPropertyRange, subject, o)
		default:
			return axiom(ofn.OpPropertyRange, subject, o)
		}

	case PredicatePropertyChainAxiom:
		links, err := d.list(objectEntry, 0, d.expression)
		if err != nil {
			return nil, fmt.Errorf("failed to decode object: %w", err)
		}
		chain, err := build(ofn.OpObjectPropertyChain, links...)
		if err != nil {
			return nil, err
		}
		return axiom(ofn.OpSubObjectPropertyOf, chain, subject)

	case PredicateType:
		if objectEntry.IsIRI() {
			tag := c.vocab.prefixes.Compact(objectEntry.Object.Value)
			if op, ok := declarationOps[tag]; ok {
				decl, err := build(op, subject)
				if err != nil {
					return nil, err
				}
				return axiom(ofn.OpDeclaration, decl)
			}
			if op, ok := characteristicOps[tag]; ok {
				return axiom(op, subject)
			}
		}
		o, err := object()
		if err != nil {
			return nil, err
		}
		return axiom(ofn.OpClassAssertion, o, subject)

	case PredicateSameAs:
		o, err := object()
		if err != nil {
			return nil, err
		}
		return axiom(ofn.OpSameIndividual, subject, o)

	case PredicateDifferentFrom:
		o, err := object()
		if err != nil {
			return nil, err
		}
		return axiom(ofn.OpDifferentIndividuals, subject, o)

	case PredicateAnnotation:
		if objectEntry.Object.IsNested() {
			return nil, fmt.Errorf("%w: annotation value must be an identifier or literal", domain.ErrMalformedObject)
		}
		o, err := object()
		if err != nil {
			return nil, err
		}
		return axiom(ofn.OpAnnotationAssertion, ofn.NewEntity(curie), subject, o)

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPredicate, t.Predicate)
	}
}

func propertyAxiomOps(p Predicate) (typed, untyped string) {
	switch p {
	case PredicateEquivalentProperty:
		return ofn.OpEquivalentObjectProperties, ofn.OpEquivalentProperties
	case PredicatePropertyDisjointWith:
		return ofn.OpDisjointObjectProperties, ofn.OpDisjointProperties
	default:
		return ofn.OpSubObjectPropertyOf, ofn.OpSubPropertyOf
	}
}

// decoder turns nested objects into OFN expressions
type decoder struct {
	maxDepth int
}

func (d decoder) annotations(fields map[string][]domain.Entry) ([]ofn.Expr, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []ofn.Expr
	for _, k := range keys {
		for _, entry := range fields[k] {
			if entry.Object.IsNested() {
				return nil, fmt.Errorf("%w: annotation %s has a nested value", domain.ErrMalformedObject, k)
			}
			value, err := d.expression(entry, 0)
			if err != nil {
				return nil, err
			}
			ann, err := build(ofn.OpAnnotation, ofn.NewEntity(k), value)
			if err != nil {
				return nil, err
			}
			out = append(out, ann)
		}
	}
	return out, nil
}

// expression decodes an entry found at the given nesting depth
func (d decoder) expression(entry domain.Entry, depth int) (ofn.Expr, error) {
	switch {
	case entry.Object.IsNested():
		return d.nested(entry.Object, depth+1)
	case entry.IsLiteral():
		if lang := entry.Lang(); lang != "" {
			return ofn.NewLangLiteral(entry.Object.Value, lang), nil
		}
		return ofn.NewLiteral(entry.Object.Value, entry.Datatype), nil
	case entry.Datatype == domain.DatatypeJSON:
		return nil, fmt.Errorf("%w: _JSON datatype on a string value", domain.ErrMalformedObject)
	case entry.Object.Value == "":
		return nil, fmt.Errorf("%w: empty identifier", domain.ErrMalformedObject)
	default:
		return ofn.NewEntity(entry.Object.Value), nil
	}
}

func (d decoder) nested(obj domain.Object, depth int) (ofn.Expr, error) {
	if depth > d.maxDepth {
		return nil, fmt.Errorf("%w: %w: more than %d nested objects", domain.ErrMalformedObject, domain.ErrTooDeep, d.maxDepth)
	}

	found := present(obj, constructorKeys...)
	switch {
	case len(found) > 1:
		return nil, fmt.Errorf("%w: conflicting keys %v", domain.ErrMalformedObject, found)
	case len(found) == 0 && len(obj.Get(domain.RDFFirst)) > 0:
		return nil, fmt.Errorf("%w: RDF list where an expression is expected", domain.ErrMalformedObject)
	case len(found) == 0:
		return nil, fmt.Errorf("%w: unrecognized object with keys %v", domain.ErrMalformedObject, obj.Keys())
	}

	key := found[0]
	if key == domain.OWLOnProperty {
		return d.restriction(obj, depth)
	}
	allowed := []string{key}
	if key == domain.OWLOnDatatype {
		allowed = append(allowed, domain.OWLWithRestrictions)
	}
	if err := onlyKeys(obj, allowed...); err != nil {
		return nil, err
	}
	datatype := hasType(obj, domain.RDFSDatatype)

	switch key {
	case domain.OWLInverseOf:
		p, err := d.single(obj, domain.OWLInverseOf, depth)
		if err != nil {
			return nil, err
		}
		return build(ofn.OpObjectInverseOf, p)

	case domain.OWLIntersectionOf:
		return d.listOperator(obj, domain.OWLIntersectionOf, depth, choose(datatype, ofn.OpDataIntersectionOf, ofn.OpObjectIntersectionOf))

	case domain.OWLUnionOf:
		return d.listOperator(obj, domain.OWLUnionOf, depth, choose(datatype, ofn.OpDataUnionOf, ofn.OpObjectUnionOf))

	case domain.OWLComplementOf:
		c, err := d.single(obj, domain.OWLComplementOf, depth)
		if err != nil {
			return nil, err
		}
		return build(ofn.OpObjectComplementOf, c)

	case domain.OWLDatatypeComplementOf:
		c, err := d.single(obj, domain.OWLDatatypeComplementOf, depth)
		if err != nil {
			return nil, err
		}
		return build(ofn.OpDataComplementOf, c)

	case domain.OWLOneOf:
		entry, err := one(obj, domain.OWLOneOf)
		if err != nil {
			return nil, err
		}
		members, err := d.list(entry, depth, d.expression)
		if err != nil {
			return nil, err
		}
		if datatype || (len(members) > 0 && isLiteral(members[0])) {
			return build(ofn.OpDataOneOf, members...)
		}
		return build(ofn.OpObjectOneOf, members...)

	default:
		return d.datatypeRestriction(obj, depth)
	}
}

func (d decoder) restriction(obj domain.Object, depth int) (ofn.Expr, error) {
	prop, err := d.single(obj, domain.OWLOnProperty, depth)
	if err != nil {
		return nil, err
	}
	inverse := isInverse(prop)

	constraints := present(obj, constraintKeys...)
	switch len(constraints) {
	case 0:
		return nil, fmt.Errorf("%w: restriction on %s without a recognized constraint", domain.ErrMalformedObject, ofn.Serialize(prop))
	case 1:
	default:
		return nil, fmt.Errorf("%w: restriction on %s with conflicting constraints %v", domain.ErrMalformedObject, ofn.Serialize(prop), constraints)
	}
	allowed := []string{domain.OWLOnProperty, constraints[0]}
	if qualifiedKeys[constraints[0]] {
		if len(present(obj, domain.OWLOnClass, domain.OWLOnDataRange)) > 1 {
			return nil, fmt.Errorf("%w: restriction with both owl:onClass and owl:onDataRange", domain.ErrMalformedObject)
		}
		allowed = append(allowed, domain.OWLOnClass, domain.OWLOnDataRange)
	}
	if err := onlyKeys(obj, allowed...); err != nil {
		return nil, err
	}

	quantified := func(key, objectOp, dataOp, untypedOp string) (ofn.Expr, error) {
		filler, err := d.single(obj, key, depth)
		if err != nil {
			return nil, err
		}
		switch {
		case isDataFiller(filler):
			return build(dataOp, prop, filler)
		case isClassFiller(filler) || inverse:
			return build(objectOp, prop, filler)
		default:
			return build(untypedOp, prop, filler)
		}
	}

	if len(obj.Get(domain.OWLSomeValuesFrom)) > 0 {
		return quantified(domain.OWLSomeValuesFrom, ofn.OpObjectSomeValuesFrom, ofn.OpDataSomeValuesFrom, ofn.OpSomeValuesFrom)
	}
	if len(obj.Get(domain.OWLAllValuesFrom)) > 0 {
		return quantified(domain.OWLAllValuesFrom, ofn.OpObjectAllValuesFrom, ofn.OpDataAllValuesFrom, ofn.OpAllValuesFrom)
	}
	if len(obj.Get(domain.OWLHasValue)) > 0 {
		value, err := d.single(obj, domain.OWLHasValue, depth)
		if err != nil {
			return nil, err
		}
		if isLiteral(value) {
			return build(ofn.OpDataHasValue, prop, value)
		}
		return build(ofn.OpObjectHasValue, prop, value)
	}
	if len(obj.Get(domain.OWLHasSelf)) > 0 {
		return build(ofn.OpObjectHasSelf, prop)
	}

	for _, ck := range cardinalityKeys {
		if len(obj.Get(ck.key)) == 0 {
			continue
		}
		entry, err := one(obj, ck.key)
		if err != nil {
			return nil, err
		}
		if entry.Object.IsNested() {
			return nil, fmt.Errorf("%w: %s must be a number", domain.ErrMalformedObject, ck.key)
		}
		n := ofn.NewLiteral(entry.Object.Value, domain.XSDNonNegativeInteger)

		if !ck.qualified {
			if inverse {
				return build(ck.object, n, prop)
			}
			return build(ck.untyped, n, prop)
		}
		switch {
		case len(obj.Get(domain.OWLOnClass)) > 0:
			class, err := d.single(obj, domain.OWLOnClass, depth)
			if err != nil {
				return nil, err
			}
			return build(ck.object, n, prop, class)
		case len(obj.Get(domain.OWLOnDataRange)) > 0:
			dr, err := d.single(obj, domain.OWLOnDataRange, depth)
			if err != nil {
				return nil, err
			}
			return build(ck.data, n, prop, dr)
		default:
			return nil, fmt.Errorf("%w: %s without owl:onClass or owl:onDataRange", domain.ErrMalformedObject, ck.key)
		}
	}

	return nil, fmt.Errorf("%w: restriction on %s without a recognized constraint", domain.ErrMalformedObject, ofn.Serialize(prop))
}

func (d decoder) datatypeRestriction(obj domain.Object, depth int) (ofn.Expr, error) {
	dt, err := d.single(obj, domain.OWLOnDatatype, depth)
	if err != nil {
		return nil, err
	}
	entry, err := one(obj, domain.OWLWithRestrictions)
	if err != nil {
		return nil, err
	}

	args := []ofn.Expr{dt}
	_, err = d.list(entry, depth, func(item domain.Entry, _ int) (ofn.Expr, error) {
		if !item.Object.IsNested() || len(item.Object.Fields) != 1 {
			return nil, fmt.Errorf("%w: facet restriction must be an object with one facet", domain.ErrMalformedObject)
		}
		facet := item.Object.Keys()[0]
		value, err := one(item.Object, facet)
		if err != nil {
			return nil, err
		}
		if !value.IsLiteral() {
			return nil, fmt.Errorf("%w: facet %s must have a literal value", domain.ErrMalformedObject, facet)
		}
		lit, err := d.expression(value, depth)
		if err != nil {
			return nil, err
		}
		args = append(args, ofn.NewEntity(facet), lit)
		return lit, nil
	})
	if err != nil {
		return nil, err
	}
	return build(ofn.OpDatatypeRestriction, args...)
}

func (d decoder) listOperator(obj domain.Object, key string, depth int, op string) (ofn.Expr, error) {
	entry, err := one(obj, key)
	if err != nil {
		return nil, err
	}
	members, err := d.list(entry, depth, d.expression)
	if err != nil {
		return nil, err
	}
	return build(op, members...)
}

// list decodes an rdf:first/rdf:rest chain. The chain is walked iteratively
// so its length does not count toward the depth limit.
func (d decoder) list(entry domain.Entry, depth int, item func(domain.Entry, int) (ofn.Expr, error)) ([]ofn.Expr, error) {
	var out []ofn.Expr
	cur := entry
	for {
		if !cur.Object.IsNested() {
			if cur.Object.Value == domain.RDFNil {
				return out, nil
			}
			return nil, fmt.Errorf("%w: RDF list must end in rdf:nil, got %q", domain.ErrMalformedObject, cur.Object.Value)
		}
		if err := onlyKeys(cur.Object, domain.RDFFirst, domain.RDFRest); err != nil {
			return nil, err
		}
		first, err := one(cur.Object, domain.RDFFirst)
		if err != nil {
			return nil, err
		}
		e, err := item(first, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, e)

		rest, err := one(cur.Object, domain.RDFRest)
		if err != nil {
			return nil, err
		}
		cur = rest
	}
}

func (d decoder) single(obj domain.Object, key string, depth int) (ofn.Expr, error) {
	entry, err := one(obj, key)
	if err != nil {
		return nil, err
	}
	return d.expression(entry, depth)
}

func one(obj domain.Object, key string) (domain.Entry, error) {
	entries := obj.Get(key)
	if len(entries) != 1 {
		return domain.Entry{}, fmt.Errorf("%w: expected exactly one value for %s, got %d", domain.ErrMalformedObject, key, len(entries))
	}
	return entries[0], nil
}

// present returns the keys of obj found among keys, in the order given
func present(obj domain.Object, keys ...string) []string {
	var found []string
	for _, k := range keys {
		if len(obj.Get(k)) > 0 {
			found = append(found, k)
		}
	}
	return found
}

// onlyKeys fails when obj carries a key other than rdf:type and allowed
func onlyKeys(obj domain.Object, allowed ...string) error {
	for _, k := range obj.Keys() {
		if k != domain.RDFType && !slices.Contains(allowed, k) {
			return fmt.Errorf("%w: unexpected key %s", domain.ErrMalformedObject, k)
		}
	}
	return nil
}

func hasType(obj domain.Object, tag string) bool {
	for _, e := range obj.Get(domain.RDFType) {
		if !e.Object.IsNested() && e.Object.Value == tag {
			return true
		}
	}
	return false
}

func build(name string, args ...ofn.Expr) (ofn.Expr, error) {
	e, err := ofn.Build(name, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedObject, err)
	}
	return e, nil
}

func choose(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func isInverse(e ofn.Expr) bool {
	return ofn.IsOp(e, ofn.OpObjectInverseOf)
}

func isLiteral(e ofn.Expr) bool {
	_, ok := e.(*ofn.Literal)
	return ok
}

func isDataFiller(e ofn.Expr) bool {
	return ofn.IsDataRange(e) || domain.IsBuiltinDatatype(ofn.IRIOf(e))
}

func isClassFiller(e ofn.Expr) bool {
	return ofn.IsClassExpression(e) || domain.IsBuiltinClass(ofn.IRIOf(e))
}
