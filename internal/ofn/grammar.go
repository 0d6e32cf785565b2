package ofn

import (
	"fmt"

	"wiring/internal/domain"
)

// Sort is the syntactic category of an argument position or operator result
type Sort int

const (
	SortAny Sort = iota
	SortAxiom
	SortClass
	SortNamedClass
	SortObjectProperty
	SortNamedObjectProperty
	SortSubObjectProperty
	SortPropertyChain
	SortDataProperty
	SortAnnotationProperty
	SortIndividual
	SortDataRange
	SortDatatype
	SortLiteral
	SortCardinality
	SortAnnotationSubject
	SortAnnotationValue
	SortProperty
	SortFiller
	SortEntityDecl
	SortAnnotation
	SortIRI
	SortFacet
)

var sortNames = map[Sort]string{
	SortAny:                 "any",
	SortAxiom:               "axiom",
	SortClass:               "class expression",
	SortNamedClass:          "class",
	SortObjectProperty:      "object property expression",
	SortNamedObjectProperty: "object property",
	SortSubObjectProperty:   "object property expression or chain",
	SortPropertyChain:       "property chain",
	SortDataProperty:        "data property",
	SortAnnotationProperty:  "annotation property",
	SortIndividual:          "individual",
	SortDataRange:           "data range",
	SortDatatype:            "datatype",
	SortLiteral:             "literal",
	SortCardinality:         "cardinality",
	SortAnnotationSubject:   "annotation subject",
	SortAnnotationValue:     "annotation value",
	SortProperty:            "property",
	SortFiller:              "class expression or data range",
	SortEntityDecl:          "entity declaration",
	SortAnnotation:          "annotation",
	SortIRI:                 "IRI",
	SortFacet:               "facet",
}

func (s Sort) String() string {
	if name, ok := sortNames[s]; ok {
		return name
	}
	return "unknown sort"
}

// Operator names
const (
	OpObjectIntersectionOf   = "ObjectIntersectionOf"
	OpObjectUnionOf          = "ObjectUnionOf"
	OpObjectComplementOf     = "ObjectComplementOf"
	OpObjectOneOf            = "ObjectOneOf"
	OpObjectSomeValuesFrom   = "ObjectSomeValuesFrom"
	OpObjectAllValuesFrom    = "ObjectAllValuesFrom"
	OpObjectHasValue         = "ObjectHasValue"
	OpObjectHasSelf          = "ObjectHasSelf"
	OpObjectMinCardinality   = "ObjectMinCardinality"
	OpObjectMaxCardinality   = "ObjectMaxCardinality"
	OpObjectExactCardinality = "ObjectExactCardinality"
	OpDataSomeValuesFrom     = "DataSomeValuesFrom"
	OpDataAllValuesFrom      = "DataAllValuesFrom"
	OpDataHasValue           = "DataHasValue"
	OpDataMinCardinality     = "DataMinCardinality"
	OpDataMaxCardinality     = "DataMaxCardinality"
	OpDataExactCardinality   = "DataExactCardinality"

	OpSomeValuesFrom   = "SomeValuesFrom"
	OpAllValuesFrom    = "AllValuesFrom"
	OpMinCardinality   = "MinCardinality"
	OpMaxCardinality   = "MaxCardinality"
	OpExactCardinality = "ExactCardinality"

	OpObjectInverseOf     = "ObjectInverseOf"
	OpObjectPropertyChain = "ObjectPropertyChain"

	OpDataIntersectionOf  = "DataIntersectionOf"
	OpDataUnionOf         = "DataUnionOf"
	OpDataComplementOf    = "DataComplementOf"
	OpDataOneOf           = "DataOneOf"
	OpDatatypeRestriction = "DatatypeRestriction"

	OpDeclaration        = "Declaration"
	OpClass              = "Class"
	OpObjectProperty     = "ObjectProperty"
	OpDataProperty       = "DataProperty"
	OpAnnotationProperty = "AnnotationProperty"
	OpNamedIndividual    = "NamedIndividual"
	OpDatatype           = "Datatype"
	OpAnnotation         = "Annotation"

	OpSubClassOf                      = "SubClassOf"
	OpEquivalentClasses               = "EquivalentClasses"
	OpDisjointClasses                 = "DisjointClasses"
	OpDisjointUnion                   = "DisjointUnion"
	OpSubObjectPropertyOf             = "SubObjectPropertyOf"
	OpEquivalentObjectProperties      = "EquivalentObjectProperties"
	OpDisjointObjectProperties        = "DisjointObjectProperties"
	OpInverseObjectProperties         = "InverseObjectProperties"
	OpObjectPropertyDomain            = "ObjectPropertyDomain"
	OpObjectPropertyRange             = "ObjectPropertyRange"
	OpFunctionalObjectProperty        = "FunctionalObjectProperty"
	OpInverseFunctionalObjectProperty = "InverseFunctionalObjectProperty"
	OpReflexiveObjectProperty         = "ReflexiveObjectProperty"
	OpIrreflexiveObjectProperty       = "IrreflexiveObjectProperty"
	OpSymmetricObjectProperty         = "SymmetricObjectProperty"
	OpAsymmetricObjectProperty        = "AsymmetricObjectProperty"
	OpTransitiveObjectProperty        = "TransitiveObjectProperty"
	OpSubDataPropertyOf               = "SubDataPropertyOf"
	OpEquivalentDataProperties        = "EquivalentDataProperties"
	OpDisjointDataProperties          = "DisjointDataProperties"
	OpDataPropertyDomain              = "DataPropertyDomain"
	OpDataPropertyRange               = "DataPropertyRange"
	OpFunctionalDataProperty          = "FunctionalDataProperty"
	OpDatatypeDefinition              = "DatatypeDefinition"
	OpSameIndividual                  = "SameIndividual"
	OpDifferentIndividuals            = "DifferentIndividuals"
	OpClassAssertion                  = "ClassAssertion"
	OpObjectPropertyAssertion         = "ObjectPropertyAssertion"
	OpNegativeObjectPropertyAssertion = "NegativeObjectPropertyAssertion"
	OpDataPropertyAssertion           = "DataPropertyAssertion"
	OpNegativeDataPropertyAssertion   = "NegativeDataPropertyAssertion"
	OpAnnotationAssertion             = "AnnotationAssertion"
	OpSubAnnotationPropertyOf         = "SubAnnotationPropertyOf"
	OpAnnotationPropertyDomain        = "AnnotationPropertyDomain"
	OpAnnotationPropertyRange         = "AnnotationPropertyRange"

	OpSubPropertyOf        = "SubPropertyOf"
	OpEquivalentProperties = "EquivalentProperties"
	OpDisjointProperties   = "DisjointProperties"
	OpPropertyDomain       = "PropertyDomain"
	OpPropertyRange        = "PropertyRange"
	OpFunctionalProperty   = "FunctionalProperty"
)

// signature is the arity contract of one operator. Arguments are matched as
// leading annotations (when annotated), then fixed, then at most
// len(optional) optional arguments, then repetitions of rest.
type signature struct {
	result    Sort
	annotated bool
	fixed     []Sort
	optional  []Sort
	rest      []Sort
	minRest   int
}

func fixed(result Sort, args ...Sort) signature {
	return signature{result: result, fixed: args}
}

func nary(result Sort, min int, pattern ...Sort) signature {
	return signature{result: result, rest: pattern, minRest: min}
}

func axiom(s signature) signature {
	s.result = SortAxiom
	s.annotated = true
	return s
}

func withOptional(s signature, args ...Sort) signature {
	s.optional = args
	return s
}

var grammar = map[string]signature{
	OpObjectIntersectionOf:   nary(SortClass, 2, SortClass),
	OpObjectUnionOf:          nary(SortClass, 2, SortClass),
	OpObjectComplementOf:     fixed(SortClass, SortClass),
	OpObjectOneOf:            nary(SortClass, 1, SortIndividual),
	OpObjectSomeValuesFrom:   fixed(SortClass, SortObjectProperty, SortClass),
	OpObjectAllValuesFrom:    fixed(SortClass, SortObjectProperty, SortClass),
	OpObjectHasValue:         fixed(SortClass, SortObjectProperty, SortIndividual),
	OpObjectHasSelf:          fixed(SortClass, SortObjectProperty),
	OpObjectMinCardinality:   withOptional(fixed(SortClass, SortCardinality, SortObjectProperty), SortClass),
	OpObjectMaxCardinality:   withOptional(fixed(SortClass, SortCardinality, SortObjectProperty), SortClass),
	OpObjectExactCardinality: withOptional(fixed(SortClass, SortCardinality, SortObjectProperty), SortClass),
	OpDataSomeValuesFrom:     fixed(SortClass, SortDataProperty, SortDataRange),
	OpDataAllValuesFrom:      fixed(SortClass, SortDataProperty, SortDataRange),
	OpDataHasValue:           fixed(SortClass, SortDataProperty, SortLiteral),
	OpDataMinCardinality:     withOptional(fixed(SortClass, SortCardinality, SortDataProperty), SortDataRange),
	OpDataMaxCardinality:     withOptional(fixed(SortClass, SortCardinality, SortDataProperty), SortDataRange),
	OpDataExactCardinality:   withOptional(fixed(SortClass, SortCardinality, SortDataProperty), SortDataRange),

	OpSomeValuesFrom:   fixed(SortClass, SortProperty, SortFiller),
	OpAllValuesFrom:    fixed(SortClass, SortProperty, SortFiller),
	OpMinCardinality:   withOptional(fixed(SortClass, SortCardinality, SortProperty), SortFiller),
	OpMaxCardinality:   withOptional(fixed(SortClass, SortCardinality, SortProperty), SortFiller),
	OpExactCardinality: withOptional(fixed(SortClass, SortCardinality, SortProperty), SortFiller),

	OpObjectInverseOf:     fixed(SortObjectProperty, SortNamedObjectProperty),
	OpObjectPropertyChain: nary(SortPropertyChain, 2, SortObjectProperty),

	OpDataIntersectionOf:  nary(SortDataRange, 2, SortDataRange),
	OpDataUnionOf:         nary(SortDataRange, 2, SortDataRange),
	OpDataComplementOf:    fixed(SortDataRange, SortDataRange),
	OpDataOneOf:           nary(SortDataRange, 1, SortLiteral),
	OpDatatypeRestriction: {result: SortDataRange, fixed: []Sort{SortDatatype}, rest: []Sort{SortFacet, SortLiteral}, minRest: 1},

	OpDeclaration:        axiom(fixed(SortAxiom, SortEntityDecl)),
	OpClass:              fixed(SortEntityDecl, SortNamedClass),
	OpObjectProperty:     fixed(SortEntityDecl, SortNamedObjectProperty),
	OpDataProperty:       fixed(SortEntityDecl, SortDataProperty),
	OpAnnotationProperty: fixed(SortEntityDecl, SortAnnotationProperty),
	OpNamedIndividual:    fixed(SortEntityDecl, SortIndividual),
	OpDatatype:           fixed(SortEntityDecl, SortDatatype),
	OpAnnotation:         {result: SortAnnotation, annotated: true, fixed: []Sort{SortAnnotationProperty, SortAnnotationValue}},

	OpSubClassOf:                      axiom(fixed(SortAxiom, SortClass, SortClass)),
	OpEquivalentClasses:               axiom(nary(SortAxiom, 2, SortClass)),
	OpDisjointClasses:                 axiom(nary(SortAxiom, 2, SortClass)),
	OpDisjointUnion:                   axiom(signature{fixed: []Sort{SortNamedClass}, rest: []Sort{SortClass}, minRest: 2}),
	OpSubObjectPropertyOf:             axiom(fixed(SortAxiom, SortSubObjectProperty, SortObjectProperty)),
	OpEquivalentObjectProperties:      axiom(nary(SortAxiom, 2, SortObjectProperty)),
	OpDisjointObjectProperties:        axiom(nary(SortAxiom, 2, SortObjectProperty)),
	OpInverseObjectProperties:         axiom(fixed(SortAxiom, SortObjectProperty, SortObjectProperty)),
	OpObjectPropertyDomain:            axiom(fixed(SortAxiom, SortObjectProperty, SortClass)),
	OpObjectPropertyRange:             axiom(fixed(SortAxiom, SortObjectProperty, SortClass)),
	OpFunctionalObjectProperty:        axiom(fixed(SortAxiom, SortObjectProperty)),
	OpInverseFunctionalObjectProperty: axiom(fixed(SortAxiom, SortObjectProperty)),
	OpReflexiveObjectProperty:         axiom(fixed(SortAxiom, SortObjectProperty)),
	OpIrreflexiveObjectProperty:       axiom(fixed(SortAxiom, SortObjectProperty)),
	OpSymmetricObjectProperty:         axiom(fixed(SortAxiom, SortObjectProperty)),
	OpAsymmetricObjectProperty:        axiom(fixed(SortAxiom, SortObjectProperty)),
	OpTransitiveObjectProperty:        axiom(fixed(SortAxiom, SortObjectProperty)),
	OpSubDataPropertyOf:               axiom(fixed(SortAxiom, SortDataProperty, SortDataProperty)),
	OpEquivalentDataProperties:        axiom(nary(SortAxiom, 2, SortDataProperty)),
	OpDisjointDataProperties:          axiom(nary(SortAxiom, 2, SortDataProperty)),
	OpDataPropertyDomain:              axiom(fixed(SortAxiom, SortDataProperty, SortClass)),
	OpDataPropertyRange:               axiom(fixed(SortAxiom, SortDataProperty, SortDataRange)),
	OpFunctionalDataProperty:          axiom(fixed(SortAxiom, SortDataProperty)),
	OpDatatypeDefinition:              axiom(fixed(SortAxiom, SortDatatype, SortDataRange)),
	OpSameIndividual:                  axiom(nary(SortAxiom, 2, SortIndividual)),
	OpDifferentIndividuals:            axiom(nary(SortAxiom, 2, SortIndividual)),
	OpClassAssertion:                  axiom(fixed(SortAxiom, SortClass, SortIndividual)),
	OpObjectPropertyAssertion:         axiom(fixed(SortAxiom, SortObjectProperty, SortIndividual, SortIndividual)),
	OpNegativeObjectPropertyAssertion: axiom(fixed(SortAxiom, SortObjectProperty, SortIndividual, SortIndividual)),
	OpDataPropertyAssertion:           axiom(fixed(SortAxiom, SortDataProperty, SortIndividual, SortLiteral)),
	OpNegativeDataPropertyAssertion:   axiom(fixed(SortAxiom, SortDataProperty, SortIndividual, SortLiteral)),
	OpAnnotationAssertion:             axiom(fixed(SortAxiom, SortAnnotationProperty, SortAnnotationSubject, SortAnnotationValue)),
	OpSubAnnotationPropertyOf:         axiom(fixed(SortAxiom, SortAnnotationProperty, SortAnnotationProperty)),
	OpAnnotationPropertyDomain:        axiom(fixed(SortAxiom, SortAnnotationProperty, SortIRI)),
	OpAnnotationPropertyRange:         axiom(fixed(SortAxiom, SortAnnotationProperty, SortIRI)),

	OpSubPropertyOf:        axiom(fixed(SortAxiom, SortProperty, SortProperty)),
	OpEquivalentProperties: axiom(nary(SortAxiom, 2, SortProperty)),
	OpDisjointProperties:   axiom(nary(SortAxiom, 2, SortProperty)),
	OpPropertyDomain:       axiom(fixed(SortAxiom, SortProperty, SortClass)),
	OpPropertyRange:        axiom(fixed(SortAxiom, SortProperty, SortFiller)),
	OpFunctionalProperty:   axiom(fixed(SortAxiom, SortProperty)),
}

// ResultSort returns the sort produced by the named operator
func ResultSort(name string) (Sort, bool) {
	sig, ok := grammar[name]
	return sig.result, ok
}

// IsAxiom reports whether e is an axiom operator
func IsAxiom(e Expr) bool {
	return hasResult(e, SortAxiom)
}

// IsClassExpression reports whether e is a class expression operator
func IsClassExpression(e Expr) bool {
	return hasResult(e, SortClass)
}

// IsDataRange reports whether e is a data range operator
func IsDataRange(e Expr) bool {
	return hasResult(e, SortDataRange)
}

func hasResult(e Expr, sort Sort) bool {
	op, ok := e.(*Operator)
	if !ok {
		return false
	}
	sig, ok := grammar[op.name]
	return ok && sig.result == sort
}

// argSorts assigns a sort to each of n arguments. isAnnotation reports
// whether argument i is an Annotation operator.
func (s signature) argSorts(name string, n int, isAnnotation func(i int) bool) ([]Sort, error) {
	sorts := make([]Sort, n)
	i := 0
	if s.annotated {
		for i < n && isAnnotation(i) {
			sorts[i] = SortAnnotation
			i++
		}
	}
	got := n - i
	if got < len(s.fixed) {
		return nil, arityError(name, s, got)
	}
	for _, sort := range s.fixed {
		sorts[i] = sort
		i++
	}

	remaining := n - i
	if len(s.rest) == 0 {
		if remaining > len(s.optional) {
			return nil, arityError(name, s, got)
		}
		copy(sorts[i:], s.optional[:remaining])
		return sorts, nil
	}

	if remaining < s.minRest*len(s.rest) || remaining%len(s.rest) != 0 {
		return nil, arityError(name, s, got)
	}
	for j := 0; i < n; j++ {
		sorts[i] = s.rest[j%len(s.rest)]
		i++
	}
	return sorts, nil
}

func arityError(name string, s signature, got int) error {
	var want string
	switch {
	case len(s.rest) == 0 && len(s.optional) == 0:
		want = fmt.Sprintf("%d", len(s.fixed))
	case len(s.rest) == 0:
		want = fmt.Sprintf("%d to %d", len(s.fixed), len(s.fixed)+len(s.optional))
	case len(s.rest) == 1:
		want = fmt.Sprintf("at least %d", len(s.fixed)+s.minRest)
	default:
		want = fmt.Sprintf("%d plus pairs, at least %d", len(s.fixed), s.minRest)
	}
	return fmt.Errorf("%w: %s expects %s arguments, got %d", domain.ErrGrammar, name, want, got)
}
