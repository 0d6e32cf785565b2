package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/domain"
	"wiring/internal/thick"
)

func TestEngineThickRoundTrip(t *testing.T) {
	e := NewEngine()

	got, err := e.ThickToOFN(`{"subject":"ex:Dog","predicate":"rdfs:subClassOf","object":"ex:Animal"}`)
	require.NoError(t, err)
	assert.Equal(t, `["SubClassOf","ex:Dog","ex:Animal"]`, got)

	text, err := e.OFNToThick(got)
	require.NoError(t, err)
	tr, err := domain.ParseTriple(text)
	require.NoError(t, err)
	assert.True(t, domain.NewTriple("ex:Dog", "rdfs:subClassOf", "ex:Animal").Equal(tr), "got %s", text)
}

func TestEngineDogAnimalDefaultStyle(t *testing.T) {
	e := NewEngine()

	got, err := e.ThickToOFN(`{"subject":"ex:Dog","predicate":"subClassOf","object":"ex:Animal"}`)
	require.NoError(t, err)
	assert.Equal(t, `["SubClassOf","ex:Dog","ex:Animal"]`, got)

	text, err := e.OFNToThick(got)
	require.NoError(t, err)
	tr, err := domain.ParseTriple(text)
	require.NoError(t, err)
	assert.Equal(t, "rdfs:subClassOf", tr.Predicate)
}

func TestEngineDogAnimalLocalStyle(t *testing.T) {
	e := NewEngine(WithThickOptions(thick.WithStyle(thick.StyleLocal)))

	got, err := e.ThickToOFN(`{"subject":"ex:Dog","predicate":"subClassOf","object":"ex:Animal"}`)
	require.NoError(t, err)
	assert.Equal(t, `["SubClassOf","ex:Dog","ex:Animal"]`, got)

	text, err := e.OFNToThick(got)
	require.NoError(t, err)
	tr, err := domain.ParseTriple(text)
	require.NoError(t, err)
	assert.Equal(t, "subClassOf", tr.Predicate)
}

func TestEngineLDTab(t *testing.T) {
	e := NewEngine(WithGraph("ex:ontology"))

	got, err := e.LDTabToOFN("ex:hasOwner", "rdf:type", "owl:ObjectProperty")
	require.NoError(t, err)
	assert.Equal(t, `["Declaration",["ObjectProperty","ex:hasOwner"]]`, got)

	got, err = e.ObjectToOFN(restrictionObject)
	require.NoError(t, err)
	assert.Equal(t, `["SomeValuesFrom","ex:hasOwner","ex:Person"]`, got)

	stmt, err := e.OFNToLDTab(`["SubClassOf","ex:Dog","ex:Animal"]`)
	require.NoError(t, err)
	assert.Equal(t, domain.Statement{
		Assertion: 1,
		Graph:     "ex:ontology",
		Subject:   "ex:Dog",
		Predicate: "rdfs:subClassOf",
		Object:    "ex:Animal",
		Datatype:  domain.DatatypeIRI,
	}, stmt)

	back, err := e.StatementToOFN(stmt)
	require.NoError(t, err)
	assert.Equal(t, `["SubClassOf","ex:Dog","ex:Animal"]`, back)
}

func TestEngineSignature(t *testing.T) {
	got, err := NewEngine().Signature(`["SubClassOf","ex:A",["ObjectIntersectionOf","ex:B","ex:A"]]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ex:A", "ex:B"}, got)
}

func TestEngineTypingAndLabeling(t *testing.T) {
	e := NewEngine()

	types, err := e.ExtractTypes("", ontologyJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeMap{
		"ex:hasOwner": {"owl:ObjectProperty"},
		"ex:Person":   {"owl:Class"},
	}, types)

	typed, err := e.InjectTypes(`["SubClassOf","ex:Dog",["SomeValuesFrom","ex:hasOwner","ex:Person"]]`, types)
	require.NoError(t, err)
	assert.Equal(t, `["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]`, typed)

	labels, err := e.ExtractLabels("json", ontologyJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelMap{"ex:Dog": "dog", "ex:hasOwner": "has owner"}, labels)

	labeled, err := e.InjectLabels(`["SubClassOf","ex:Dog","ex:Animal"]`, labels)
	require.NoError(t, err)
	assert.Equal(t, `["SubClassOf","'dog'","ex:Animal"]`, labeled)

	man, err := e.OFNToManchester(typed, types, labels)
	require.NoError(t, err)
	assert.Equal(t, "dog SubClassOf: 'has owner' some ex:Person", man)
}

func TestEngineInjectTypesTagOrder(t *testing.T) {
	e := NewEngine()
	axiom := `["SubClassOf","ex:A",["SomeValuesFrom","ex:p","ex:B"]]`
	want := `["SubClassOf","ex:A",["ObjectSomeValuesFrom","ex:p","ex:B"]]`

	for _, text := range []string{
		`{"ex:p":["owl:NamedIndividual","owl:ObjectProperty"]}`,
		`{"ex:p":["owl:ObjectProperty","owl:NamedIndividual"]}`,
	} {
		types, err := DecodeTypeMap(text)
		require.NoError(t, err)
		got, err := e.InjectTypes(axiom, types)
		require.NoError(t, err)
		assert.Equal(t, want, got, text)
	}

	got, err := e.InjectTypes(axiom, domain.TypeMap{"ex:p": {"owl:ObjectProperty", "owl:NamedIndividual"}})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEngineRenderDocumentation(t *testing.T) {
	doc, err := NewEngine().RenderDocumentation(`["SubClassOf","ex:Dog","ex:Animal"]`, nil, domain.LabelMap{"ex:Dog": "dog"})
	require.NoError(t, err)
	assert.Equal(t, "dog\n  is a subclass of\n    ex:Animal", doc.Text)
	assert.Equal(t, "dog SubClassOf: ex:Animal", doc.Manchester)
	assert.NotEmpty(t, doc.ID)
	assert.Len(t, doc.Hash, 64)
}

func TestEngineErrors(t *testing.T) {
	e := NewEngine()

	_, err := e.ThickToOFN(`{"subject":"ex:Dog","predicate":"ex:likes","object":"ex:Bone"}`)
	assert.ErrorIs(t, err, domain.ErrUnknownPredicate)

	_, err = e.OFNToThick(`["SubClassOf"`)
	assert.ErrorIs(t, err, domain.ErrSyntax)

	_, err = e.OFNToThick(`["ObjectUnionOf","ex:A","ex:B"]`)
	assert.ErrorIs(t, err, domain.ErrUnsupportedAxiom)

	_, err = e.ExtractTypes("turtle", ontologyJSON)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = NewEngine(WithMaxDepth(2)).Signature(`["SubClassOf","ex:A",["ObjectComplementOf",["ObjectComplementOf","ex:B"]]]`)
	assert.ErrorIs(t, err, domain.ErrTooDeep)
}

func TestDecodeMaps(t *testing.T) {
	types, err := DecodeTypeMap(`{"ex:p":["owl:ObjectProperty"]}`)
	require.NoError(t, err)
	assert.True(t, types.Has("ex:p", "owl:ObjectProperty"))

	empty, err := DecodeTypeMap("  ")
	require.NoError(t, err)
	assert.Empty(t, empty)

	labels, err := DecodeLabelMap(`{"ex:p":"p"}`)
	require.NoError(t, err)
	assert.Equal(t, "p", labels["ex:p"])

	_, err = DecodeLabelMap(`{"ex:p":`)
	assert.ErrorIs(t, err, domain.ErrSyntax)
}
