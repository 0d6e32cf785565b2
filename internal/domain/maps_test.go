package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeMapAdd(t *testing.T) {
	m := TypeMap{}
	m.Add("ex:p", OWLObjectProperty)
	m.Add("ex:p", OWLAnnotationProperty)
	m.Add("ex:p", OWLObjectProperty)

	assert.Equal(t, []string{OWLAnnotationProperty, OWLObjectProperty}, m.Tags("ex:p"))
	assert.True(t, m.Has("ex:p", OWLObjectProperty))
	assert.False(t, m.Has("ex:p", OWLClass))
	assert.False(t, m.Has("ex:q", OWLClass))
}

func TestTypeMapUnsortedTags(t *testing.T) {
	m := TypeMap{"ex:p": {OWLObjectProperty, OWLNamedIndividual, OWLObjectProperty}}
	assert.True(t, m.Has("ex:p", OWLNamedIndividual))
	assert.True(t, m.Has("ex:p", OWLObjectProperty))

	m.Add("ex:p", OWLAnnotationProperty)
	assert.True(t, m.Has("ex:p", OWLAnnotationProperty))

	m.Normalize()
	assert.Equal(t, []string{OWLAnnotationProperty, OWLNamedIndividual, OWLObjectProperty}, m.Tags("ex:p"))
}

func TestTypeMapUnmarshalJSON(t *testing.T) {
	var m TypeMap
	require.NoError(t, json.Unmarshal([]byte(`{"ex:p":["owl:ObjectProperty","owl:NamedIndividual","owl:ObjectProperty"]}`), &m))
	assert.Equal(t, []string{OWLNamedIndividual, OWLObjectProperty}, m.Tags("ex:p"))

	assert.Error(t, json.Unmarshal([]byte(`{"ex:p":"owl:Class"}`), &m))
}

func TestTypeMapMerge(t *testing.T) {
	a := TypeMap{}
	a.Add("ex:A", OWLClass)
	b := TypeMap{}
	b.Add("ex:A", OWLNamedIndividual)
	b.Add("ex:B", OWLClass)

	a.Merge(b)
	assert.Equal(t, []string{OWLClass, OWLNamedIndividual}, a.Tags("ex:A"))
	assert.Equal(t, []string{OWLClass}, a.Tags("ex:B"))
}

func TestPrefixes(t *testing.T) {
	p := DefaultPrefixes().Merge(Prefixes{"ex": "http://example.org/", "exa": "http://example.org/a/"})

	tests := []struct {
		iri   string
		curie string
	}{
		{NamespaceRDFS + "subClassOf", "rdfs:subClassOf"},
		{"http://example.org/Dog", "ex:Dog"},
		{"http://example.org/a/Cat", "exa:Cat"},
		{"http://other.org/X", "http://other.org/X"},
	}
	for _, tt := range tests {
		t.Run(tt.curie, func(t *testing.T) {
			assert.Equal(t, tt.curie, p.Compact(tt.iri))
			assert.Equal(t, tt.iri, p.Expand(tt.curie))
		})
	}

	assert.Equal(t, "zz:local", p.Expand("zz:local"))
}
