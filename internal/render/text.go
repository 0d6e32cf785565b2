package render

import (
	"strings"

	"wiring/internal/domain"
	"wiring/internal/ofn"
)

const indentUnit = "  "

// form is how an operator is laid out in text
type form int

const (
	formInfix form = iota
	formPrefix
	formList
	formRestriction
	formCardinality
	formCharacteristic
)

type textRule struct {
	form form
	word string
}

var textRules = map[string]textRule{
	ofn.OpSubClassOf:                 {formInfix, "is a subclass of"},
	ofn.OpEquivalentClasses:          {formInfix, "is equivalent to"},
	ofn.OpDisjointClasses:            {formInfix, "is disjoint with"},
	ofn.OpDisjointUnion:              {formInfix, "is the disjoint union of"},
	ofn.OpSubObjectPropertyOf:        {formInfix, "is a subproperty of"},
	ofn.OpSubDataPropertyOf:          {formInfix, "is a subproperty of"},
	ofn.OpSubAnnotationPropertyOf:    {formInfix, "is a subproperty of"},
	ofn.OpSubPropertyOf:              {formInfix, "is a subproperty of"},
	ofn.OpEquivalentObjectProperties: {formInfix, "is equivalent to"},
	ofn.OpEquivalentDataProperties:   {formInfix, "is equivalent to"},
	ofn.OpEquivalentProperties:       {formInfix, "is equivalent to"},
	ofn.OpDisjointObjectProperties:   {formInfix, "is disjoint with"},
	ofn.OpDisjointDataProperties:     {formInfix, "is disjoint with"},
	ofn.OpDisjointProperties:         {formInfix, "is disjoint with"},
	ofn.OpInverseObjectProperties:    {formInfix, "is the inverse of"},
	ofn.OpObjectPropertyDomain:       {formInfix, "has domain"},
	ofn.OpDataPropertyDomain:         {formInfix, "has domain"},
	ofn.OpAnnotationPropertyDomain:   {formInfix, "has domain"},
	ofn.OpPropertyDomain:             {formInfix, "has domain"},
	ofn.OpObjectPropertyRange:        {formInfix, "has range"},
	ofn.OpDataPropertyRange:          {formInfix, "has range"},
	ofn.OpAnnotationPropertyRange:    {formInfix, "has range"},
	ofn.OpPropertyRange:              {formInfix, "has range"},
	ofn.OpDatatypeDefinition:         {formInfix, "is defined as"},
	ofn.OpSameIndividual:             {formInfix, "is the same individual as"},
	ofn.OpDifferentIndividuals:       {formInfix, "is different from"},

	ofn.OpFunctionalObjectProperty:        {formCharacteristic, "is functional"},
	ofn.OpFunctionalDataProperty:          {formCharacteristic, "is functional"},
	ofn.OpFunctionalProperty:              {formCharacteristic, "is functional"},
	ofn.OpInverseFunctionalObjectProperty: {formCharacteristic, "is inverse functional"},
	ofn.OpReflexiveObjectProperty:         {formCharacteristic, "is reflexive"},
	ofn.OpIrreflexiveObjectProperty:       {formCharacteristic, "is irreflexive"},
	ofn.OpSymmetricObjectProperty:         {formCharacteristic, "is symmetric"},
	ofn.OpAsymmetricObjectProperty:        {formCharacteristic, "is asymmetric"},
	ofn.OpTransitiveObjectProperty:        {formCharacteristic, "is transitive"},

	ofn.OpObjectIntersectionOf: {formList, "and"},
	ofn.OpDataIntersectionOf:   {formList, "and"},
	ofn.OpObjectUnionOf:        {formList, "or"},
	ofn.OpDataUnionOf:          {formList, "or"},
	ofn.OpObjectOneOf:          {formList, "one of"},
	ofn.OpDataOneOf:            {formList, "one of"},
	ofn.OpObjectPropertyChain:  {formList, "then"},

	ofn.OpObjectComplementOf: {formPrefix, "not"},
	ofn.OpDataComplementOf:   {formPrefix, "not"},
	ofn.OpObjectInverseOf:    {formPrefix, "inverse of"},

	ofn.OpObjectSomeValuesFrom: {formRestriction, "some"},
	ofn.OpDataSomeValuesFrom:   {formRestriction, "some"},
	ofn.OpSomeValuesFrom:       {formRestriction, "some"},
	ofn.OpObjectAllValuesFrom:  {formRestriction, "only"},
	ofn.OpDataAllValuesFrom:    {formRestriction, "only"},
	ofn.OpAllValuesFrom:        {formRestriction, "only"},
	ofn.OpObjectHasValue:       {formRestriction, "value"},
	ofn.OpDataHasValue:         {formRestriction, "value"},
	ofn.OpObjectHasSelf:        {formRestriction, "self"},

	ofn.OpObjectMinCardinality:   {formCardinality, "at least"},
	ofn.OpDataMinCardinality:     {formCardinality, "at least"},
	ofn.OpMinCardinality:         {formCardinality, "at least"},
	ofn.OpObjectMaxCardinality:   {formCardinality, "at most"},
	ofn.OpDataMaxCardinality:     {formCardinality, "at most"},
	ofn.OpMaxCardinality:         {formCardinality, "at most"},
	ofn.OpObjectExactCardinality: {formCardinality, "exactly"},
	ofn.OpDataExactCardinality:   {formCardinality, "exactly"},
	ofn.OpExactCardinality:       {formCardinality, "exactly"},
}

var declarationWords = map[string]string{
	ofn.OpClass:              "is a class",
	ofn.OpObjectProperty:     "is an object property",
	ofn.OpDataProperty:       "is a data property",
	ofn.OpAnnotationProperty: "is an annotation property",
	ofn.OpNamedIndividual:    "is an individual",
	ofn.OpDatatype:           "is a datatype",
}

// Text describes an expression in indented natural language, one clause per
// line
func Text(e ofn.Expr) string {
	return strings.Join(textLines(e), "\n")
}

func textLines(e ofn.Expr) []string {
	op, ok := e.(*ofn.Operator)
	if !ok || !ofn.IsAxiom(op) {
		return phrase(e)
	}

	body := op.Body()
	var lines []string
	switch name := op.Name(); name {
	case ofn.OpDeclaration:
		decl := body[0].(*ofn.Operator)
		lines = []string{displayName(decl.Arg(0)) + " " + declarationWords[decl.Name()]}
	case ofn.OpClassAssertion:
		lines = infix(body[1], "is an instance of", body[:1])
	case ofn.OpObjectPropertyAssertion, ofn.OpDataPropertyAssertion:
		lines = infix(body[1], "has "+displayName(body[0]), body[2:])
	case ofn.OpNegativeObjectPropertyAssertion, ofn.OpNegativeDataPropertyAssertion:
		lines = infix(body[1], "does not have "+displayName(body[0]), body[2:])
	case ofn.OpAnnotationAssertion:
		lines = infix(body[1], "has "+displayName(body[0]), body[2:])
	case ofn.OpSubObjectPropertyOf:
		if ofn.IsOp(body[0], ofn.OpObjectPropertyChain) {
			lines = infix(body[1], "is implied by the chain", body[:1])
			break
		}
		lines = infix(body[0], textRules[name].word, body[1:])
	default:
		rule, ok := textRules[name]
		if !ok {
			rule.word = name
		}
		if rule.form == formCharacteristic {
			lines = []string{displayName(body[0]) + " " + rule.word}
			break
		}
		lines = infix(body[0], rule.word, body[1:])
	}

	for _, ann := range op.Annotations() {
		args := ann.Body()
		lines = append(lines, indentUnit+"annotated with "+displayName(args[0])+" "+displayName(args[1]))
	}
	return lines
}

// infix lays out "subject / connective / operands" on separate indented
// lines
func infix(subject ofn.Expr, word string, operands []ofn.Expr) []string {
	lines := phrase(subject)
	lines = append(lines, indentUnit+word)
	for _, o := range operands {
		lines = append(lines, indent(phrase(o), 2)...)
	}
	return lines
}

// phrase renders a class expression, property expression, data range or
// atom. Simple expressions fit on one line.
func phrase(e ofn.Expr) []string {
	op, ok := e.(*ofn.Operator)
	if !ok {
		return []string{displayName(e)}
	}
	args := op.Args()
	rule := textRules[op.Name()]

	switch {
	case op.Name() == ofn.OpDatatypeRestriction:
		parts := make([]string, 0, len(args)/2)
		for i := 1; i+1 < len(args); i += 2 {
			parts = append(parts, displayName(args[i])+" "+displayName(args[i+1]))
		}
		return []string{displayName(args[0]) + " where " + strings.Join(parts, " and ")}

	case rule.form == formList:
		if allAtoms(args) {
			names := make([]string, len(args))
			for i, a := range args {
				names[i] = displayName(a)
			}
			if rule.word == "one of" {
				return []string{"one of " + strings.Join(names, ", ")}
			}
			return []string{strings.Join(names, " "+rule.word+" ")}
		}
		lines := []string{listHeading(rule.word)}
		for _, a := range args {
			lines = append(lines, bullet(phrase(a))...)
		}
		return lines

	case rule.form == formPrefix:
		return prefixed(rule.word, phrase(args[0]))

	case rule.form == formRestriction:
		prop := displayName(args[0])
		switch rule.word {
		case "self":
			return []string{"has " + prop + " to itself"}
		case "value":
			return prefixed("has "+prop, phrase(args[1]))
		case "only":
			return prefixed("has only "+prop+" that are", phrase(args[1]))
		default:
			return prefixed("has some "+prop+" that is", phrase(args[1]))
		}

	case rule.form == formCardinality:
		head := "has " + rule.word + " " + displayName(args[0]) + " " + displayName(args[1])
		if len(args) == 2 {
			return []string{head}
		}
		return prefixed(head+" that are", phrase(args[2]))
	}
	return []string{ofn.Serialize(e)}
}

func listHeading(word string) string {
	switch word {
	case "and":
		return "all of:"
	case "or":
		return "any of:"
	case "then":
		return "the chain:"
	default:
		return word + ":"
	}
}

// prefixed joins head with a single line body, or puts a multi-line body
// below it
func prefixed(head string, body []string) []string {
	if len(body) == 1 {
		return []string{head + " " + body[0]}
	}
	return append([]string{head + ":"}, indent(body, 1)...)
}

func bullet(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if i == 0 {
			out[i] = indentUnit + "- " + l
		} else {
			out[i] = indentUnit + "  " + l
		}
	}
	return out
}

func indent(lines []string, depth int) []string {
	pad := strings.Repeat(indentUnit, depth)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = pad + l
	}
	return out
}

func allAtoms(exprs []ofn.Expr) bool {
	for _, e := range exprs {
		if _, ok := e.(*ofn.Operator); ok {
			return false
		}
	}
	return true
}

// displayName renders an atom: the label of an entity when set, its
// identifier otherwise, and literals in their quoted form
func displayName(e ofn.Expr) string {
	switch v := e.(type) {
	case *ofn.Entity:
		if v.Label != "" {
			return v.Label
		}
		return v.IRI
	case *ofn.Literal:
		if _, ok := ofn.Cardinality(v); ok && v.Datatype == domain.XSDNonNegativeInteger {
			return v.Lexical
		}
		return ofn.FormatLiteral(v)
	default:
		return strings.Join(phrase(e), " ")
	}
}
