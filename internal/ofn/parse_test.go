package ofn

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/domain"
)

func TestParseSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"subclass", `["SubClassOf","ex:Dog","ex:Animal"]`},
		{"existential", `["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]`},
		{"inverse", `["SubClassOf","ex:A",["ObjectAllValuesFrom",["ObjectInverseOf","ex:p"],"ex:B"]]`},
		{"qualified cardinality", `["SubClassOf","ex:A",["ObjectMinCardinality","2","ex:p","ex:B"]]`},
		{"data cardinality", `["SubClassOf","ex:A",["DataExactCardinality","1","ex:age",["DatatypeRestriction","xsd:integer","xsd:minInclusive","\"0\"^^xsd:integer"]]]`},
		{"untyped", `["SubClassOf","ex:A",["MaxCardinality","1","ex:p"]]`},
		{"data has value", `["SubClassOf","ex:A",["DataHasValue","ex:name","\"Rex \\\"the\\\" dog\"@en"]]`},
		{"one of", `["EquivalentClasses","ex:A",["ObjectOneOf","ex:a","_:b0"]]`},
		{"declaration", `["Declaration",["Class","ex:Dog"]]`},
		{"annotated axiom", `["SubClassOf",["Annotation","rdfs:comment","\"why\""],"ex:A","ex:B"]`},
		{"annotation assertion", `["AnnotationAssertion","rdfs:label","ex:Dog","\"Dog\"@en"]`},
		{"chain", `["SubObjectPropertyOf",["ObjectPropertyChain","ex:p","ex:q"],"ex:r"]`},
		{"disjoint union", `["DisjointUnion","ex:A","ex:B","ex:C"]`},
		{"data union", `["DatatypeDefinition","ex:dt",["DataUnionOf","xsd:integer",["DataOneOf","\"a\"","\"b\"^^xsd:token"]]]`},
		{"entity", `"ex:Dog"`},
		{"literal", `"\"5\"^^xsd:integer"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.text, Serialize(e))

			back, err := Parse(Serialize(e))
			require.NoError(t, err)
			assert.True(t, Equal(e, back))
		})
	}
}

func TestParseKinds(t *testing.T) {
	e, err := Parse(`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner",["ObjectOneOf","ex:alice","_:b"]]]`)
	require.NoError(t, err)

	kinds := map[string]Kind{}
	for _, ent := range Entities(e) {
		kinds[ent.IRI] = ent.Kind
	}
	assert.Equal(t, map[string]Kind{
		"ex:Dog":      KindClass,
		"ex:hasOwner": KindObjectProperty,
		"ex:alice":    KindNamedIndividual,
		"_:b":         KindAnonymousIndividual,
	}, kinds)

	u, err := Parse(`["SomeValuesFrom","ex:p","ex:F"]`)
	require.NoError(t, err)
	for _, ent := range Entities(u) {
		assert.Equal(t, KindUnknown, ent.Kind, ent.IRI)
	}
}

func TestParseCardinality(t *testing.T) {
	t.Run("json integer", func(t *testing.T) {
		e, err := Parse(`["ObjectExactCardinality",3,"ex:p"]`)
		require.NoError(t, err)
		n, ok := Cardinality(e.(*Operator).Arg(0))
		require.True(t, ok)
		assert.Equal(t, 3, n)
		assert.Equal(t, `["ObjectExactCardinality","3","ex:p"]`, Serialize(e))
	})

	t.Run("negative", func(t *testing.T) {
		_, err := Parse(`["ObjectExactCardinality",-1,"ex:p"]`)
		assert.ErrorIs(t, err, domain.ErrGrammar)
	})

	t.Run("digits outside cardinality are entities", func(t *testing.T) {
		e, err := Parse(`["SubClassOf","42","ex:B"]`)
		require.NoError(t, err)
		assert.Equal(t, "42", IRIOf(e.(*Operator).Arg(0)))
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind error
	}{
		{"invalid json", `["SubClassOf","ex:A"`, domain.ErrSyntax},
		{"trailing data", `["SubClassOf","ex:A","ex:B"] 1`, domain.ErrSyntax},
		{"unknown operator", `["SuperClassOf","ex:A","ex:B"]`, domain.ErrGrammar},
		{"too few", `["SubClassOf","ex:A"]`, domain.ErrGrammar},
		{"too many", `["ObjectComplementOf","ex:A","ex:B"]`, domain.ErrGrammar},
		{"wrong sort", `["SubClassOf","ex:A",["ObjectInverseOf","ex:p"]]`, domain.ErrGrammar},
		{"literal as class", `["SubClassOf","\"x\"","ex:B"]`, domain.ErrGrammar},
		{"anonymous class", `["SubClassOf","_:x","ex:B"]`, domain.ErrGrammar},
		{"empty operator", `[]`, domain.ErrGrammar},
		{"name not string", `[1,"ex:A"]`, domain.ErrGrammar},
		{"null argument", `["SubClassOf",null,"ex:A"]`, domain.ErrGrammar},
		{"object argument", `["SubClassOf",{},"ex:A"]`, domain.ErrGrammar},
		{"bad literal suffix", `["DataHasValue","ex:p","\"x\"!"]`, domain.ErrGrammar},
		{"unterminated literal", `["DataHasValue","ex:p","\"x"]`, domain.ErrGrammar},
		{"facet pairs", `["DatatypeRestriction","xsd:integer","xsd:minInclusive"]`, domain.ErrGrammar},
		{"annotation after body", `["SubClassOf","ex:A","ex:B",["Annotation","rdfs:comment","\"x\""]]`, domain.ErrGrammar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func nested(depth int) string {
	var b strings.Builder
	b.WriteString(`["SubClassOf","ex:A",`)
	for i := 0; i < depth; i++ {
		b.WriteString(`["ObjectComplementOf",`)
	}
	b.WriteString(`"ex:B"`)
	b.WriteString(strings.Repeat("]", depth))
	b.WriteString("]")
	return b.String()
}

func TestParseDepthLimit(t *testing.T) {
	_, err := Parse(nested(10), WithMaxDepth(11))
	assert.NoError(t, err)

	_, err = Parse(nested(11), WithMaxDepth(11))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGrammar)
	assert.ErrorIs(t, err, domain.ErrTooDeep)

	_, err = Parse(nested(DefaultMaxDepth))
	assert.ErrorIs(t, err, domain.ErrTooDeep)
}

func TestParseLabeledEntity(t *testing.T) {
	e, err := Parse(`["SubClassOf","'Dog'","ex:Animal"]`)
	require.NoError(t, err)
	ent := e.(*Operator).Arg(0).(*Entity)
	assert.Equal(t, "Dog", ent.Label)
	assert.Equal(t, "", ent.IRI)
	assert.Equal(t, `["SubClassOf","'Dog'","ex:Animal"]`, Serialize(e))
}

func ExampleParse() {
	e, err := Parse(`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]`)
	if err != nil {
		panic(err)
	}
	fmt.Println(e.(*Operator).Name())
	fmt.Println(Serialize(e))
	// Output:
	// SubClassOf
	// ["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]
}
