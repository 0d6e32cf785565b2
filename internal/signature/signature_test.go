package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/ofn"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"duplicates", `["EquivalentClasses","ex:A","ex:B","ex:A"]`, []string{"ex:A", "ex:B"}},
		{"nested", `["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]`, []string{"ex:Dog", "ex:Person", "ex:hasOwner"}},
		{"literals skipped", `["SubClassOf","ex:A",["DataHasValue","ex:age","\"5\"^^xsd:integer"]]`, []string{"ex:A", "ex:age"}},
		{"cardinality skipped", `["SubClassOf","ex:A",["ObjectMaxCardinality","1","ex:p"]]`, []string{"ex:A", "ex:p"}},
		{"anonymous individual", `["ClassAssertion","ex:A","_:b0"]`, []string{"_:b0", "ex:A"}},
		{"annotation", `["AnnotationAssertion","rdfs:label","ex:A","\"A\""]`, []string{"ex:A", "rdfs:label"}},
		{"entity", `"ex:A"`, []string{"ex:A"}},
		{"literal", `"\"x\""`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ofn.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Extract(e))
		})
	}
}

func TestUnion(t *testing.T) {
	a, err := ofn.Parse(`["SubClassOf","ex:A","ex:B"]`)
	require.NoError(t, err)
	b, err := ofn.Parse(`["SubClassOf","ex:B","ex:C"]`)
	require.NoError(t, err)

	assert.Equal(t, []string{"ex:A", "ex:B", "ex:C"}, Union(a, b))
	assert.Empty(t, Union())
}
