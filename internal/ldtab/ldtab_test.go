package ldtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/domain"
	"wiring/internal/ofn"
)

const someValuesFrom = `{"rdf:type":[{"object":"owl:Restriction","datatype":"_IRI"}],` +
	`"owl:onProperty":[{"object":"ex:hasOwner","datatype":"_IRI"}],` +
	`"owl:someValuesFrom":[{"object":"ex:Person","datatype":"_IRI"}]}`

func TestAssemble(t *testing.T) {
	tests := []struct {
		name      string
		subject   string
		predicate string
		object    string
		want      string
	}{
		{"identifiers", "ex:Dog", "rdfs:subClassOf", "ex:Animal", `["SubClassOf","ex:Dog","ex:Animal"]`},
		{"nested object", "ex:Dog", "rdfs:subClassOf", someValuesFrom, `["SubClassOf","ex:Dog",["SomeValuesFrom","ex:hasOwner","ex:Person"]]`},
		{"nested subject", someValuesFrom, "rdfs:subClassOf", "ex:Owned", `["SubClassOf",["SomeValuesFrom","ex:hasOwner","ex:Person"],"ex:Owned"]`},
		{"declaration", "ex:hasOwner", "rdf:type", "owl:ObjectProperty", `["Declaration",["ObjectProperty","ex:hasOwner"]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Assemble(tt.subject, tt.predicate, tt.object)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ofn.Serialize(e))
		})
	}
}

func TestAssembleErrors(t *testing.T) {
	_, err := Assemble("ex:Dog", "rdfs:subClassOf", `{"owl:onProperty":`)
	assert.ErrorIs(t, err, domain.ErrSyntax)

	_, err = Assemble("ex:Dog", "ex:likes", "ex:Bone")
	assert.ErrorIs(t, err, domain.ErrUnknownPredicate)

	_, err = Assemble("ex:Dog", "rdfs:subClassOf", `{"ex:what":[{"object":"ex:x"}]}`)
	assert.ErrorIs(t, err, domain.ErrMalformedObject)
}

func TestAssembleStatement(t *testing.T) {
	stmt := domain.Statement{
		Assertion:  1,
		Graph:      "graph",
		Subject:    "ex:Dog",
		Predicate:  "rdfs:label",
		Object:     "Dog",
		Datatype:   "@en",
		Annotation: `{"rdfs:comment":[{"object":"checked","datatype":"xsd:string","meta":"owl:Axiom"}]}`,
	}
	e, err := AssembleStatement(stmt)
	require.NoError(t, err)
	assert.Equal(t, `["AnnotationAssertion",["Annotation","rdfs:comment","\"checked\""],"rdfs:label","ex:Dog","\"Dog\"@en"]`, ofn.Serialize(e))
}

func TestParseObject(t *testing.T) {
	e, err := ParseObject(someValuesFrom)
	require.NoError(t, err)
	assert.Equal(t, `["SomeValuesFrom","ex:hasOwner","ex:Person"]`, ofn.Serialize(e))

	e, err = ParseObject("ex:Person")
	require.NoError(t, err)
	assert.Equal(t, "ex:Person", ofn.IRIOf(e))

	_, err = ParseObject("")
	assert.ErrorIs(t, err, domain.ErrMalformedObject)

	_, err = ParseObject("{")
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestFromOFN(t *testing.T) {
	a := New("ontology")
	e, err := ofn.Parse(`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]`)
	require.NoError(t, err)

	stmt, err := a.FromOFN(e)
	require.NoError(t, err)
	assert.Equal(t, "ontology", stmt.Graph)
	assert.Equal(t, "ex:Dog", stmt.Subject)
	assert.Equal(t, domain.RDFSSubClassOf, stmt.Predicate)
	assert.Equal(t, domain.DatatypeJSON, stmt.Datatype)
	assert.Equal(t, 1, stmt.Assertion)
	assert.JSONEq(t, someValuesFrom, stmt.Object)

	// the property kind is not recorded in the row, so it comes back untyped
	back, err := a.AssembleStatement(stmt)
	require.NoError(t, err)
	assert.Equal(t, `["SubClassOf","ex:Dog",["SomeValuesFrom","ex:hasOwner","ex:Person"]]`, ofn.Serialize(back))
}
