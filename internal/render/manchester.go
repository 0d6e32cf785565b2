package render

import (
	"strings"

	"wiring/internal/domain"
	"wiring/internal/ofn"
)

var manchesterKeywords = map[string]string{
	ofn.OpSubClassOf:              "SubClassOf",
	ofn.OpEquivalentClasses:       "EquivalentTo",
	ofn.OpDisjointClasses:         "DisjointWith",
	ofn.OpDisjointUnion:           "DisjointUnionOf",
	ofn.OpSubObjectPropertyOf:     "SubPropertyOf",
	ofn.OpSubDataPropertyOf:       "SubPropertyOf",
	ofn.OpSubAnnotationPropertyOf: "SubPropertyOf",
	ofn.OpSubPropertyOf:           "SubPropertyOf",

	ofn.OpEquivalentObjectProperties: "EquivalentTo",
	ofn.OpEquivalentDataProperties:   "EquivalentTo",
	ofn.OpEquivalentProperties:       "EquivalentTo",
	ofn.OpDisjointObjectProperties:   "DisjointWith",
	ofn.OpDisjointDataProperties:     "DisjointWith",
	ofn.OpDisjointProperties:         "DisjointWith",
	ofn.OpInverseObjectProperties:    "InverseOf",

	ofn.OpObjectPropertyDomain:     "Domain",
	ofn.OpDataPropertyDomain:       "Domain",
	ofn.OpAnnotationPropertyDomain: "Domain",
	ofn.OpPropertyDomain:           "Domain",
	ofn.OpObjectPropertyRange:      "Range",
	ofn.OpDataPropertyRange:        "Range",
	ofn.OpAnnotationPropertyRange:  "Range",
	ofn.OpPropertyRange:            "Range",

	ofn.OpDatatypeDefinition:   "EquivalentTo",
	ofn.OpSameIndividual:       "SameAs",
	ofn.OpDifferentIndividuals: "DifferentFrom",
}

var manchesterCharacteristics = map[string]string{
	ofn.OpFunctionalObjectProperty:        "Functional",
	ofn.OpFunctionalDataProperty:          "Functional",
	ofn.OpFunctionalProperty:              "Functional",
	ofn.OpInverseFunctionalObjectProperty: "InverseFunctional",
	ofn.OpReflexiveObjectProperty:         "Reflexive",
	ofn.OpIrreflexiveObjectProperty:       "Irreflexive",
	ofn.OpSymmetricObjectProperty:         "Symmetric",
	ofn.OpAsymmetricObjectProperty:        "Asymmetric",
	ofn.OpTransitiveObjectProperty:        "Transitive",
}

var manchesterFrames = map[string]string{
	ofn.OpClass:              "Class",
	ofn.OpObjectProperty:     "ObjectProperty",
	ofn.OpDataProperty:       "DataProperty",
	ofn.OpAnnotationProperty: "AnnotationProperty",
	ofn.OpNamedIndividual:    "Individual",
	ofn.OpDatatype:           "Datatype",
}

var facetSymbols = map[string]string{
	"xsd:minInclusive": ">=",
	"xsd:minExclusive": ">",
	"xsd:maxInclusive": "<=",
	"xsd:maxExclusive": "<",
}

// Manchester renders an expression in Manchester syntax. Axioms come out as
// a single frame line such as "ex:Dog SubClassOf: ex:hasOwner some ex:Person".
func Manchester(e ofn.Expr) string {
	op, ok := e.(*ofn.Operator)
	if !ok || !ofn.IsAxiom(op) {
		return manExpr(e)
	}

	body := op.Body()
	var out string
	switch name := op.Name(); name {
	case ofn.OpDeclaration:
		decl := body[0].(*ofn.Operator)
		out = manchesterFrames[decl.Name()] + ": " + manName(decl.Arg(0))
	case ofn.OpClassAssertion:
		out = manName(body[1]) + " Types: " + manExpr(body[0])
	case ofn.OpObjectPropertyAssertion, ofn.OpDataPropertyAssertion:
		out = manName(body[1]) + " Facts: " + manName(body[0]) + " " + manExpr(body[2])
	case ofn.OpNegativeObjectPropertyAssertion, ofn.OpNegativeDataPropertyAssertion:
		out = manName(body[1]) + " Facts: not " + manName(body[0]) + " " + manExpr(body[2])
	case ofn.OpAnnotationAssertion:
		out = manName(body[1]) + " Annotations: " + manName(body[0]) + " " + manExpr(body[2])
	case ofn.OpSubObjectPropertyOf:
		if ofn.IsOp(body[0], ofn.OpObjectPropertyChain) {
			out = manName(body[1]) + " SubPropertyChain: " + manExpr(body[0])
			break
		}
		out = frame(name, body)
	default:
		if c, ok := manchesterCharacteristics[name]; ok {
			out = manExpr(body[0]) + " Characteristics: " + c
			break
		}
		out = frame(name, body)
	}

	if anns := op.Annotations(); len(anns) > 0 {
		parts := make([]string, len(anns))
		for i, ann := range anns {
			args := ann.Body()
			parts[i] = manName(args[0]) + " " + manExpr(args[1])
		}
		out = "Annotations: " + strings.Join(parts, ", ") + " " + out
	}
	return out
}

func frame(name string, body []ofn.Expr) string {
	keyword, ok := manchesterKeywords[name]
	if !ok {
		keyword = name
	}
	rest := make([]string, len(body)-1)
	for i, b := range body[1:] {
		rest[i] = manExpr(b)
	}
	return manExpr(body[0]) + " " + keyword + ": " + strings.Join(rest, ", ")
}

func manExpr(e ofn.Expr) string {
	op, ok := e.(*ofn.Operator)
	if !ok {
		return manName(e)
	}
	args := op.Args()

	switch op.Name() {
	case ofn.OpObjectIntersectionOf, ofn.OpDataIntersectionOf:
		return joinNested(args, " and ")
	case ofn.OpObjectUnionOf, ofn.OpDataUnionOf:
		return joinNested(args, " or ")
	case ofn.OpObjectComplementOf, ofn.OpDataComplementOf:
		return "not " + nested(args[0])
	case ofn.OpObjectOneOf, ofn.OpDataOneOf:
		return "{" + joinNested(args, ", ") + "}"
	case ofn.OpObjectInverseOf:
		return "inverse " + nested(args[0])
	case ofn.OpObjectPropertyChain:
		return joinNested(args, " o ")

	case ofn.OpObjectSomeValuesFrom, ofn.OpDataSomeValuesFrom, ofn.OpSomeValuesFrom:
		return nested(args[0]) + " some " + nested(args[1])
	case ofn.OpObjectAllValuesFrom, ofn.OpDataAllValuesFrom, ofn.OpAllValuesFrom:
		return nested(args[0]) + " only " + nested(args[1])
	case ofn.OpObjectHasValue, ofn.OpDataHasValue:
		return nested(args[0]) + " value " + nested(args[1])
	case ofn.OpObjectHasSelf:
		return nested(args[0]) + " Self"

	case ofn.OpObjectMinCardinality, ofn.OpDataMinCardinality, ofn.OpMinCardinality:
		return cardinality("min", args)
	case ofn.OpObjectMaxCardinality, ofn.OpDataMaxCardinality, ofn.OpMaxCardinality:
		return cardinality("max", args)
	case ofn.OpObjectExactCardinality, ofn.OpDataExactCardinality, ofn.OpExactCardinality:
		return cardinality("exactly", args)

	case ofn.OpDatatypeRestriction:
		facets := make([]string, 0, len(args)/2)
		for i := 1; i+1 < len(args); i += 2 {
			facet := ofn.IRIOf(args[i])
			sym, ok := facetSymbols[facet]
			if !ok {
				sym = localPart(facet)
			}
			facets = append(facets, sym+" "+manName(args[i+1]))
		}
		return manName(args[0]) + "[" + strings.Join(facets, ", ") + "]"
	}
	return ofn.Serialize(e)
}

func cardinality(word string, args []ofn.Expr) string {
	out := nested(args[1]) + " " + word + " " + manName(args[0])
	if len(args) > 2 {
		out += " " + nested(args[2])
	}
	return out
}

// nested parenthesizes compound operands
func nested(e ofn.Expr) string {
	op, ok := e.(*ofn.Operator)
	if !ok || op.Name() == ofn.OpObjectInverseOf {
		return manExpr(e)
	}
	switch op.Name() {
	case ofn.OpObjectOneOf, ofn.OpDataOneOf, ofn.OpDatatypeRestriction:
		return manExpr(e)
	}
	return "(" + manExpr(e) + ")"
}

func joinNested(args []ofn.Expr, sep string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = nested(a)
	}
	return strings.Join(parts, sep)
}

// manName renders an atom. Labels containing anything other than name
// characters are single quoted, as Manchester requires.
func manName(e ofn.Expr) string {
	switch v := e.(type) {
	case *ofn.Entity:
		if v.Label == "" {
			return v.IRI
		}
		if strings.ContainsAny(v.Label, " \t'(),{}[]") {
			return "'" + strings.ReplaceAll(v.Label, "'", "\\'") + "'"
		}
		return v.Label
	case *ofn.Literal:
		if v.Datatype == domain.XSDNonNegativeInteger {
			if _, ok := ofn.Cardinality(v); ok {
				return v.Lexical
			}
		}
		return ofn.FormatLiteral(v)
	default:
		return manExpr(e)
	}
}

func localPart(iri string) string {
	if i := strings.LastIndexAny(iri, ":#/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
