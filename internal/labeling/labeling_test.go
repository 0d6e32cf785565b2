package labeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/domain"
	"wiring/internal/ofn"
)

func label(subject, predicate, value string) domain.Triple {
	return domain.Triple{
		Subject:   domain.IRI(subject),
		Predicate: predicate,
		Object:    domain.IRI(value),
		Datatype:  domain.XSDString,
	}
}

func TestExtract(t *testing.T) {
	triples := []domain.Triple{
		label("ex:Dog", domain.RDFSLabel, "dog"),
		label("ex:Dog", domain.RDFSLabel, "Dog"),
		label("ex:Cat", "label", "Cat"),
		label("ex:Cow", domain.NamespaceRDFS+"label", "Cow"),
		label("ex:Dog", domain.SKOSPrefLabel, "Doggo"),
		domain.NewTriple("ex:Dog", domain.RDFSSubClassOf, "ex:Animal"),
	}

	t.Run("default predicate, last wins", func(t *testing.T) {
		assert.Equal(t, domain.LabelMap{"ex:Dog": "Dog", "ex:Cat": "Cat", "ex:Cow": "Cow"}, Extract(triples))
	})

	t.Run("custom predicate", func(t *testing.T) {
		assert.Equal(t, domain.LabelMap{"ex:Dog": "Doggo"}, Extract(triples, domain.NamespaceSKOS+"prefLabel"))
	})
}

func TestInject(t *testing.T) {
	e, err := ofn.Parse(`["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]`)
	require.NoError(t, err)
	labels := domain.LabelMap{"ex:Dog": "dog", "ex:hasOwner": "has owner"}

	once := Inject(e, labels)
	assert.Equal(t, `["SubClassOf","'dog'",["ObjectSomeValuesFrom","'has owner'","ex:Person"]]`, ofn.Serialize(once))

	twice := Inject(once, labels)
	assert.True(t, ofn.Equal(once, twice))

	assert.Equal(t, `["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]`, ofn.Serialize(e))

	for _, ent := range ofn.Entities(once) {
		if ent.IRI == "ex:hasOwner" {
			assert.Equal(t, ofn.KindObjectProperty, ent.Kind)
		}
	}
}

func TestInjectEmptyMap(t *testing.T) {
	e, err := ofn.Parse(`["SubClassOf","ex:A","ex:B"]`)
	require.NoError(t, err)
	assert.Same(t, e, Inject(e, domain.LabelMap{}))
}
