package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/domain"
	"wiring/internal/ofn"
)

func typeMap(pairs ...string) domain.TypeMap {
	m := domain.TypeMap{}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Add(pairs[i], pairs[i+1])
	}
	return m
}

func TestExtract(t *testing.T) {
	triples := []domain.Triple{
		domain.NewTriple("ex:Dog", domain.RDFType, domain.OWLClass),
		domain.NewTriple("ex:hasOwner", "type", domain.OWLObjectProperty),
		domain.NewTriple("ex:age", domain.NamespaceRDF+"type", domain.NamespaceOWL+"DatatypeProperty"),
		domain.NewTriple("ex:rex", domain.RDFType, "ex:Dog"),
		domain.NewTriple("ex:Dog", domain.RDFSSubClassOf, "ex:Animal"),
		{Subject: domain.IRI("ex:x"), Predicate: domain.RDFType, Object: domain.IRI(domain.OWLClass), Datatype: domain.XSDString},
	}

	m := Extract(triples)
	assert.Equal(t, domain.TypeMap{
		"ex:Dog":      {domain.OWLClass},
		"ex:hasOwner": {domain.OWLObjectProperty},
		"ex:age":      {domain.OWLDatatypeProperty},
	}, m)
}

func TestInject(t *testing.T) {
	types := typeMap(
		"ex:hasOwner", domain.OWLObjectProperty,
		"ex:age", domain.OWLDatatypeProperty,
		"ex:note", domain.OWLAnnotationProperty,
		"ex:Person", domain.OWLClass,
		"ex:dt", domain.RDFSDatatype,
	)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"object property tag",
			`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:hasOwner","ex:Thing"]]`,
			`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Thing"]]`,
		},
		{
			"data property tag",
			`["SubClassOf","ex:Dog",["AllValuesFrom","ex:age","ex:whatever"]]`,
			`["SubClassOf","ex:Dog",["DataAllValuesFrom","ex:age","ex:whatever"]]`,
		},
		{
			"filler tag",
			`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:unknown","ex:Person"]]`,
			`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:unknown","ex:Person"]]`,
		},
		{
			"datatype filler tag",
			`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:unknown","ex:dt"]]`,
			`["SubClassOf","ex:Dog",["DataSomeValuesFrom","ex:unknown","ex:dt"]]`,
		},
		{
			"builtin datatype",
			`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:unknown","xsd:integer"]]`,
			`["SubClassOf","ex:Dog",["DataSomeValuesFrom","ex:unknown","xsd:integer"]]`,
		},
		{
			"structure beats tags",
			`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:age",["ObjectUnionOf","ex:A","ex:B"]]]`,
			`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:age",["ObjectUnionOf","ex:A","ex:B"]]]`,
		},
		{
			"nested",
			`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:x",["SomeValuesFrom","ex:hasOwner","ex:y"]]]`,
			`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:x",["ObjectSomeValuesFrom","ex:hasOwner","ex:y"]]]`,
		},
		{
			"unqualified cardinality",
			`["SubClassOf","ex:Dog",["MaxCardinality","1","ex:age"]]`,
			`["SubClassOf","ex:Dog",["DataMaxCardinality","1","ex:age"]]`,
		},
		{
			"sub property",
			`["SubPropertyOf","ex:hasOwner","ex:related"]`,
			`["SubObjectPropertyOf","ex:hasOwner","ex:related"]`,
		},
		{
			"annotation property",
			`["SubPropertyOf","ex:note","rdfs:comment"]`,
			`["SubAnnotationPropertyOf","ex:note","rdfs:comment"]`,
		},
		{
			"domain",
			`["PropertyDomain","ex:age","ex:Person"]`,
			`["DataPropertyDomain","ex:age","ex:Person"]`,
		},
		{
			"range",
			`["PropertyRange","ex:hasOwner","ex:Person"]`,
			`["ObjectPropertyRange","ex:hasOwner","ex:Person"]`,
		},
		{
			"functional",
			`["FunctionalProperty","ex:age"]`,
			`["FunctionalDataProperty","ex:age"]`,
		},
		{
			"annotations kept",
			`["EquivalentProperties",["Annotation","rdfs:comment","\"x\""],"ex:hasOwner","ex:owner"]`,
			`["EquivalentObjectProperties",["Annotation","rdfs:comment","\"x\""],"ex:hasOwner","ex:owner"]`,
		},
		{
			"partial map leaves untyped",
			`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:unknown","ex:other"]]`,
			`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:unknown","ex:other"]]`,
		},
		{
			"already typed",
			`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:age","ex:Person"]]`,
			`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:age","ex:Person"]]`,
		},
		{
			"annotation domain of class expression stays",
			`["PropertyDomain","ex:note",["ObjectUnionOf","ex:A","ex:B"]]`,
			`["PropertyDomain","ex:note",["ObjectUnionOf","ex:A","ex:B"]]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ofn.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ofn.Serialize(Inject(e, types)))
		})
	}
}

func TestInjectKinds(t *testing.T) {
	e, err := ofn.Parse(`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:hasOwner","ex:Person"]]`)
	require.NoError(t, err)

	typed := Inject(e, typeMap("ex:hasOwner", domain.OWLObjectProperty))
	kinds := map[string]ofn.Kind{}
	for _, ent := range ofn.Entities(typed) {
		kinds[ent.IRI] = ent.Kind
	}
	assert.Equal(t, ofn.KindObjectProperty, kinds["ex:hasOwner"])
	assert.Equal(t, ofn.KindClass, kinds["ex:Person"])

	for _, ent := range ofn.Entities(e) {
		if ent.IRI == "ex:hasOwner" {
			assert.Equal(t, ofn.KindUnknown, ent.Kind, "input tree must not change")
		}
	}
}

func TestInjectConflictingTags(t *testing.T) {
	e, err := ofn.Parse(`["FunctionalProperty","ex:p"]`)
	require.NoError(t, err)

	types := typeMap("ex:p", domain.OWLObjectProperty, "ex:p", domain.OWLDatatypeProperty)
	assert.Equal(t, `["FunctionalProperty","ex:p"]`, ofn.Serialize(Inject(e, types)))
}

func TestInjectUnsortedPunnedTags(t *testing.T) {
	e, err := ofn.Parse(`["SubClassOf","ex:A",["SomeValuesFrom","ex:p","ex:B"]]`)
	require.NoError(t, err)

	types := domain.TypeMap{"ex:p": {domain.OWLObjectProperty, domain.OWLNamedIndividual}}
	assert.Equal(t, `["SubClassOf","ex:A",["ObjectSomeValuesFrom","ex:p","ex:B"]]`, ofn.Serialize(Inject(e, types)))
}
