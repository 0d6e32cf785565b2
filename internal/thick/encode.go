package thick

import (
	"fmt"

	"wiring/internal/domain"
	"wiring/internal/ofn"
)

var declarationTags = map[string]string{
	ofn.OpClass:              domain.OWLClass,
	ofn.OpObjectProperty:     domain.OWLObjectProperty,
	ofn.OpDataProperty:       domain.OWLDatatypeProperty,
	ofn.OpAnnotationProperty: domain.OWLAnnotationProperty,
	ofn.OpNamedIndividual:    domain.OWLNamedIndividual,
	ofn.OpDatatype:           domain.RDFSDatatype,
}

var characteristicTags = map[string]string{
	ofn.OpFunctionalObjectProperty:        domain.OWLFunctionalProperty,
	ofn.OpFunctionalDataProperty:          domain.OWLFunctionalProperty,
	ofn.OpFunctionalProperty:              domain.OWLFunctionalProperty,
	ofn.OpInverseFunctionalObjectProperty: domain.OWLInverseFunctionalProperty,
	ofn.OpTransitiveObjectProperty:        domain.OWLTransitiveProperty,
	ofn.OpSymmetricObjectProperty:         domain.OWLSymmetricProperty,
	ofn.OpAsymmetricObjectProperty:        domain.OWLAsymmetricProperty,
	ofn.OpReflexiveObjectProperty:         domain.OWLReflexiveProperty,
	ofn.OpIrreflexiveObjectProperty:       domain.OWLIrreflexiveProperty,
}

var binaryPredicates = map[string]string{
	ofn.OpSubClassOf:                 domain.RDFSSubClassOf,
	ofn.OpEquivalentClasses:          domain.OWLEquivalentClass,
	ofn.OpDisjointClasses:            domain.OWLDisjointWith,
	ofn.OpSubObjectPropertyOf:        domain.RDFSSubPropertyOf,
	ofn.OpSubDataPropertyOf:          domain.RDFSSubPropertyOf,
	ofn.OpSubAnnotationPropertyOf:    domain.RDFSSubPropertyOf,
	ofn.OpSubPropertyOf:              domain.RDFSSubPropertyOf,
	ofn.OpEquivalentObjectProperties: domain.OWLEquivalentProperty,
	ofn.OpEquivalentDataProperties:   domain.OWLEquivalentProperty,
	ofn.OpEquivalentProperties:       domain.OWLEquivalentProperty,
	ofn.OpDisjointObjectProperties:   domain.OWLPropertyDisjointWith,
	ofn.OpDisjointDataProperties:     domain.OWLPropertyDisjointWith,
	ofn.OpDisjointProperties:         domain.OWLPropertyDisjointWith,
	ofn.OpInverseObjectProperties:    domain.OWLInverseOf,
	ofn.OpObjectPropertyDomain:       domain.RDFSDomain,
	ofn.OpDataPropertyDomain:         domain.RDFSDomain,
	ofn.OpAnnotationPropertyDomain:   domain.RDFSDomain,
	ofn.OpPropertyDomain:             domain.RDFSDomain,
	ofn.OpObjectPropertyRange:        domain.RDFSRange,
	ofn.OpDataPropertyRange:          domain.RDFSRange,
	ofn.OpAnnotationPropertyRange:    domain.RDFSRange,
	ofn.OpPropertyRange:              domain.RDFSRange,
	ofn.OpDatatypeDefinition:         domain.OWLEquivalentClass,
	ofn.OpSameIndividual:             domain.OWLSameAs,
	ofn.OpDifferentIndividuals:       domain.OWLDifferentFrom,
}

var restrictionKeys = map[string]string{
	ofn.OpObjectSomeValuesFrom: domain.OWLSomeValuesFrom,
	ofn.OpDataSomeValuesFrom:   domain.OWLSomeValuesFrom,
	ofn.OpSomeValuesFrom:       domain.OWLSomeValuesFrom,
	ofn.OpObjectAllValuesFrom:  domain.OWLAllValuesFrom,
	ofn.OpDataAllValuesFrom:    domain.OWLAllValuesFrom,
	ofn.OpAllValuesFrom:        domain.OWLAllValuesFrom,
	ofn.OpObjectHasValue:       domain.OWLHasValue,
	ofn.OpDataHasValue:         domain.OWLHasValue,
}

// cardinality operator -> unqualified key, qualified key
var cardinalityOps = map[string][2]string{
	ofn.OpObjectMinCardinality:   {domain.OWLMinCardinality, domain.OWLMinQualifiedCardinality},
	ofn.OpDataMinCardinality:     {domain.OWLMinCardinality, domain.OWLMinQualifiedCardinality},
	ofn.OpMinCardinality:         {domain.OWLMinCardinality, domain.OWLMinQualifiedCardinality},
	ofn.OpObjectMaxCardinality:   {domain.OWLMaxCardinality, domain.OWLMaxQualifiedCardinality},
	ofn.OpDataMaxCardinality:     {domain.OWLMaxCardinality, domain.OWLMaxQualifiedCardinality},
	ofn.OpMaxCardinality:         {domain.OWLMaxCardinality, domain.OWLMaxQualifiedCardinality},
	ofn.OpObjectExactCardinality: {domain.OWLCardinality, domain.OWLQualifiedCardinality},
	ofn.OpDataExactCardinality:   {domain.OWLCardinality, domain.OWLQualifiedCardinality},
	ofn.OpExactCardinality:       {domain.OWLCardinality, domain.OWLQualifiedCardinality},
}

func (c *Codec) fromOFN(enc encoder, op *ofn.Operator) (domain.Triple, error) {
	anns, err := enc.annotations(op.Annotations())
	if err != nil {
		return domain.Triple{}, err
	}
	body := op.Body()

	triple := func(s ofn.Expr, curie string, o ofn.Expr) (domain.Triple, error) {
		subject, err := enc.subject(s)
		if err != nil {
			return domain.Triple{}, err
		}
		object, err := enc.entry(o)
		if err != nil {
			return domain.Triple{}, err
		}
		return domain.Triple{
			Subject:    subject,
			Predicate:  c.vocab.spell(curie, c.style),
			Object:     object.Object,
			Datatype:   object.Datatype,
			Annotation: anns,
		}, nil
	}
	typeTriple := func(s ofn.Expr, tag string) (domain.Triple, error) {
		return triple(s, domain.RDFType, ofn.NewEntity(tag))
	}

	name := op.Name()
	switch name {
	case ofn.OpSubObjectPropertyOf:
		if ofn.IsOp(body[0], ofn.OpObjectPropertyChain) {
			chain := body[0].(*ofn.Operator)
			subject, err := enc.subject(body[1])
			if err != nil {
				return domain.Triple{}, err
			}
			list, err := enc.list(chain.Args())
			if err != nil {
				return domain.Triple{}, err
			}
			return domain.Triple{
				Subject:    subject,
				Predicate:  c.vocab.spell(domain.OWLPropertyChainAxiom, c.style),
				Object:     list.Object,
				Datatype:   list.Datatype,
				Annotation: anns,
			}, nil
		}
		return triple(body[0], domain.RDFSSubPropertyOf, body[1])

	case ofn.OpDisjointUnion:
		subject, err := enc.subject(body[0])
		if err != nil {
			return domain.Triple{}, err
		}
		list, err := enc.list(body[1:])
		if err != nil {
			return domain.Triple{}, err
		}
		return domain.Triple{
			Subject:    subject,
			Predicate:  c.vocab.spell(domain.OWLDisjointUnionOf, c.style),
			Object:     list.Object,
			Datatype:   list.Datatype,
			Annotation: anns,
		}, nil

	case ofn.OpClassAssertion:
		return triple(body[1], domain.RDFType, body[0])

	case ofn.OpDeclaration:
		decl := body[0].(*ofn.Operator)
		return typeTriple(decl.Arg(0), declarationTags[decl.Name()])

	case ofn.OpAnnotationAssertion:
		_, curie := c.vocab.resolve(ofn.IRIOf(body[0]))
		if !c.vocab.annotations[curie] {
			return domain.Triple{}, fmt.Errorf("%w: annotation property %s is not registered", domain.ErrUnsupportedAxiom, ofn.IRIOf(body[0]))
		}
		return triple(body[1], curie, body[2])

	case ofn.OpObjectPropertyAssertion, ofn.OpNegativeObjectPropertyAssertion,
		ofn.OpDataPropertyAssertion, ofn.OpNegativeDataPropertyAssertion:
		return domain.Triple{}, fmt.Errorf("%w: property assertions have no thick triple encoding", domain.ErrUnsupportedAxiom)
	}

	if tag, ok := characteristicTags[name]; ok {
		return typeTriple(body[0], tag)
	}
	if curie, ok := binaryPredicates[name]; ok {
		if len(body) != 2 {
			return domain.Triple{}, fmt.Errorf("%w: %s with %d operands", domain.ErrUnsupportedAxiom, name, len(body))
		}
		return triple(body[0], curie, body[1])
	}
	return domain.Triple{}, fmt.Errorf("%w: %s has no thick triple encoding", domain.ErrUnsupportedAxiom, name)
}

// encoder turns OFN expressions into nested objects
type encoder struct {
	flavor Flavor
}

func (enc encoder) iriDatatype() string {
	if enc.flavor == FlavorLDTab {
		return domain.DatatypeIRI
	}
	return ""
}

func (enc encoder) jsonDatatype() string {
	if enc.flavor == FlavorLDTab {
		return domain.DatatypeJSON
	}
	return ""
}

func (enc encoder) iri(id string) domain.Entry {
	return domain.Entry{Object: domain.IRI(id), Datatype: enc.iriDatatype()}
}

func (enc encoder) annotations(anns []*ofn.Operator) (map[string][]domain.Entry, error) {
	if len(anns) == 0 {
		return nil, nil
	}
	out := make(map[string][]domain.Entry)
	for _, ann := range anns {
		if len(ann.Annotations()) > 0 {
			return nil, fmt.Errorf("%w: nested annotations", domain.ErrUnsupportedAxiom)
		}
		body := ann.Body()
		value, err := enc.entry(body[1])
		if err != nil {
			return nil, err
		}
		if enc.flavor == FlavorLDTab {
			value.Meta = domain.MetaAxiom
		}
		key := ofn.IRIOf(body[0])
		out[key] = append(out[key], value)
	}
	return out, nil
}

func (enc encoder) subject(e ofn.Expr) (domain.Object, error) {
	if _, ok := e.(*ofn.Literal); ok {
		return domain.Object{}, fmt.Errorf("%w: literal subject", domain.ErrUnsupportedAxiom)
	}
	entry, err := enc.entry(e)
	if err != nil {
		return domain.Object{}, err
	}
	return entry.Object, nil
}

func (enc encoder) entry(e ofn.Expr) (domain.Entry, error) {
	switch v := e.(type) {
	case *ofn.Entity:
		if v.IRI == "" {
			return domain.Entry{}, fmt.Errorf("%w: entity %q has no identifier", domain.ErrUnsupportedAxiom, v.Label)
		}
		return enc.iri(v.IRI), nil
	case *ofn.Literal:
		datatype := v.Datatype
		if v.Lang != "" {
			datatype = "@" + v.Lang
		}
		return domain.LiteralEntry(v.Lexical, datatype), nil
	case *ofn.Operator:
		fields, err := enc.nested(v)
		if err != nil {
			return domain.Entry{}, err
		}
		return domain.Entry{Object: domain.Nested(fields), Datatype: enc.jsonDatatype()}, nil
	default:
		return domain.Entry{}, fmt.Errorf("%w: empty expression", domain.ErrUnsupportedAxiom)
	}
}

func (enc encoder) nested(op *ofn.Operator) (map[string][]domain.Entry, error) {
	args := op.Args()
	name := op.Name()

	if key, ok := restrictionKeys[name]; ok {
		return enc.restriction(args[0], key, args[1])
	}
	if keys, ok := cardinalityOps[name]; ok {
		n := domain.LiteralEntry(args[0].(*ofn.Literal).Lexical, domain.XSDNonNegativeInteger)
		if len(args) == 2 {
			return enc.restrictionEntry(args[1], keys[0], n)
		}
		fields, err := enc.restrictionEntry(args[1], keys[1], n)
		if err != nil {
			return nil, err
		}
		filler, err := enc.entry(args[2])
		if err != nil {
			return nil, err
		}
		qualifier := domain.OWLOnClass
		if isDataFiller(args[2]) {
			qualifier = domain.OWLOnDataRange
		}
		fields[qualifier] = []domain.Entry{filler}
		return fields, nil
	}

	switch name {
	case ofn.OpObjectHasSelf:
		return enc.restrictionEntry(args[0], domain.OWLHasSelf, domain.LiteralEntry("true", domain.XSDBoolean))
	case ofn.OpObjectIntersectionOf:
		return enc.typedList(domain.OWLClass, domain.OWLIntersectionOf, args)
	case ofn.OpObjectUnionOf:
		return enc.typedList(domain.OWLClass, domain.OWLUnionOf, args)
	case ofn.OpObjectOneOf:
		return enc.typedList(domain.OWLClass, domain.OWLOneOf, args)
	case ofn.OpDataIntersectionOf:
		return enc.typedList(domain.RDFSDatatype, domain.OWLIntersectionOf, args)
	case ofn.OpDataUnionOf:
		return enc.typedList(domain.RDFSDatatype, domain.OWLUnionOf, args)
	case ofn.OpDataOneOf:
		return enc.typedList(domain.RDFSDatatype, domain.OWLOneOf, args)
	case ofn.OpObjectComplementOf:
		return enc.typed(domain.OWLClass, domain.OWLComplementOf, args[0])
	case ofn.OpDataComplementOf:
		return enc.typed(domain.RDFSDatatype, domain.OWLDatatypeComplementOf, args[0])
	case ofn.OpObjectInverseOf:
		p, err := enc.entry(args[0])
		if err != nil {
			return nil, err
		}
		return map[string][]domain.Entry{domain.OWLInverseOf: {p}}, nil
	case ofn.OpDatatypeRestriction:
		return enc.datatypeRestriction(args)
	default:
		return nil, fmt.Errorf("%w: %s cannot be nested in a thick triple", domain.ErrUnsupportedAxiom, name)
	}
}

func (enc encoder) restriction(prop ofn.Expr, key string, filler ofn.Expr) (map[string][]domain.Entry, error) {
	value, err := enc.entry(filler)
	if err != nil {
		return nil, err
	}
	return enc.restrictionEntry(prop, key, value)
}

func (enc encoder) restrictionEntry(prop ofn.Expr, key string, value domain.Entry) (map[string][]domain.Entry, error) {
	p, err := enc.entry(prop)
	if err != nil {
		return nil, err
	}
	return map[string][]domain.Entry{
		domain.RDFType:       {enc.iri(domain.OWLRestriction)},
		domain.OWLOnProperty: {p},
		key:                  {value},
	}, nil
}

func (enc encoder) typed(tag, key string, arg ofn.Expr) (map[string][]domain.Entry, error) {
	value, err := enc.entry(arg)
	if err != nil {
		return nil, err
	}
	return map[string][]domain.Entry{
		domain.RDFType: {enc.iri(tag)},
		key:            {value},
	}, nil
}

func (enc encoder) typedList(tag, key string, args []ofn.Expr) (map[string][]domain.Entry, error) {
	list, err := enc.list(args)
	if err != nil {
		return nil, err
	}
	return map[string][]domain.Entry{
		domain.RDFType: {enc.iri(tag)},
		key:            {list},
	}, nil
}

func (enc encoder) datatypeRestriction(args []ofn.Expr) (map[string][]domain.Entry, error) {
	dt, err := enc.entry(args[0])
	if err != nil {
		return nil, err
	}
	facets := make([]domain.Entry, 0, (len(args)-1)/2)
	for i := 1; i+1 < len(args); i += 2 {
		value, err := enc.entry(args[i+1])
		if err != nil {
			return nil, err
		}
		facets = append(facets, domain.Entry{
			Object:   domain.Nested(map[string][]domain.Entry{ofn.IRIOf(args[i]): {value}}),
			Datatype: enc.jsonDatatype(),
		})
	}
	return map[string][]domain.Entry{
		domain.RDFType:             {enc.iri(domain.RDFSDatatype)},
		domain.OWLOnDatatype:       {dt},
		domain.OWLWithRestrictions: {enc.chain(facets)},
	}, nil
}

// list encodes expressions as an rdf:first/rdf:rest chain
func (enc encoder) list(items []ofn.Expr) (domain.Entry, error) {
	entries := make([]domain.Entry, len(items))
	for i, item := range items {
		e, err := enc.entry(item)
		if err != nil {
			return domain.Entry{}, err
		}
		entries[i] = e
	}
	return enc.chain(entries), nil
}

func (enc encoder) chain(entries []domain.Entry) domain.Entry {
	cur := enc.iri(domain.RDFNil)
	for i := len(entries) - 1; i >= 0; i-- {
		cur = domain.Entry{
			Object: domain.Nested(map[string][]domain.Entry{
				domain.RDFFirst: {entries[i]},
				domain.RDFRest:  {cur},
			}),
			Datatype: enc.jsonDatatype(),
		}
	}
	return cur
}
