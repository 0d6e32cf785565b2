package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/domain"
	"wiring/internal/repository"
)

var _ repository.StatementStore = (*Repository)(nil)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err, "failed to create test repository")

	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func stmt(subject, predicate, object, datatype string) domain.Statement {
	return domain.Statement{
		Assertion: 1,
		Graph:     "graph",
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Datatype:  datatype,
	}
}

func seed(t *testing.T, repo *Repository, stmts ...domain.Statement) {
	t.Helper()
	require.NoError(t, repo.InsertStatements(context.Background(), stmts))
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestBatches(t *testing.T) {
	assert.Empty(t, batches(nil))
	assert.Equal(t, [][]string{{"a", "b"}}, batches([]string{"a", "b", "a", ""}))

	ids := make([]string, maxBatch+10)
	for i := range ids {
		ids[i] = fmt.Sprintf("ex:e%d", i)
	}
	got := batches(ids)
	require.Len(t, got, 2)
	assert.Len(t, got[0], maxBatch)
	assert.Len(t, got[1], 10)
}

// ============================================================================
// Statement Tests
// ============================================================================

func TestInsertAndReadStatements(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	nested := `{"owl:onProperty":[{"datatype":"_IRI","object":"ex:hasOwner"}],"owl:someValuesFrom":[{"datatype":"_IRI","object":"ex:Person"}]}`
	seed(t, repo,
		stmt("ex:Dog", "rdfs:subClassOf", "ex:Animal", "_IRI"),
		stmt("ex:Dog", "rdfs:subClassOf", nested, "_JSON"),
		stmt("ex:Cat", "rdfs:subClassOf", "ex:Animal", ""),
	)

	all, err := repo.Statements(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ex:Dog", all[0].Subject)
	assert.Equal(t, nested, all[1].Object)
	assert.Equal(t, "_IRI", all[2].Datatype, "empty datatype is stored as _IRI")
	assert.Equal(t, 1, all[0].Assertion)
	assert.Equal(t, "", all[0].Annotation)

	dog, err := repo.StatementsBySubject(ctx, "ex:Dog")
	require.NoError(t, err)
	require.Len(t, dog, 2)

	tr, err := dog[1].Triple()
	require.NoError(t, err)
	assert.True(t, tr.Object.IsNested())

	none, err := repo.StatementsBySubject(ctx, "ex:Unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAnnotationColumn(t *testing.T) {
	repo := newTestRepo(t)

	s := stmt("ex:Dog", "rdfs:subClassOf", "ex:Animal", "_IRI")
	s.Annotation = `{"rdfs:comment":[{"datatype":"xsd:string","meta":"owl:Axiom","object":"why"}]}`
	seed(t, repo, s)

	got, err := repo.StatementsBySubject(context.Background(), "ex:Dog")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, s, got[0])
}

func TestRetractedStatementsAreIgnored(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	retracted := stmt("ex:Dog", "rdf:type", "owl:Class", "_IRI")
	retracted.Retraction = 1
	oldLabel := stmt("ex:Dog", "rdfs:label", "old dog", "xsd:string")
	oldLabel.Retraction = 1
	seed(t, repo, retracted, oldLabel, stmt("ex:Dog", "rdfs:subClassOf", "ex:Animal", "_IRI"))

	all, err := repo.Statements(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	types, err := repo.TypesOf(ctx, []string{"ex:Dog"})
	require.NoError(t, err)
	assert.Empty(t, types)

	labels, err := repo.LabelsOf(ctx, []string{"ex:Dog"}, nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestInsertRejectsIncompleteRows(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.InsertStatements(context.Background(), []domain.Statement{
		stmt("ex:Dog", "rdfs:subClassOf", "ex:Animal", "_IRI"),
		stmt("", "rdfs:subClassOf", "ex:Animal", "_IRI"),
	})
	assert.ErrorIs(t, err, domain.ErrMalformedObject)

	all, err := repo.Statements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "failed batch must not be partially committed")
}

// ============================================================================
// Lookup Tests
// ============================================================================

func TestReplaceGraph(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	other := stmt("ex:Fish", "rdfs:subClassOf", "ex:Animal", "_IRI")
	other.Graph = "other"
	seed(t, repo,
		stmt("ex:Dog", "rdfs:subClassOf", "ex:Animal", "_IRI"),
		stmt("ex:Cat", "rdfs:subClassOf", "ex:Animal", "_IRI"),
		other,
	)

	require.NoError(t, repo.ReplaceGraph(ctx, "graph", []domain.Statement{
		stmt("ex:Bird", "rdfs:subClassOf", "ex:Animal", "_IRI"),
	}))

	all, err := repo.Statements(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ex:Fish", all[0].Subject)
	assert.Equal(t, "ex:Bird", all[1].Subject)

	// A bad row keeps the previous contents
	err = repo.ReplaceGraph(ctx, "graph", []domain.Statement{stmt("", "rdfs:subClassOf", "ex:Animal", "_IRI")})
	assert.ErrorIs(t, err, domain.ErrMalformedObject)

	all, err = repo.Statements(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTypesOf(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		stmt("ex:Dog", "rdf:type", "owl:Class", "_IRI"),
		stmt("ex:hasOwner", "rdf:type", "owl:ObjectProperty", "_IRI"),
		stmt("ex:hasOwner", "rdf:type", "owl:TransitiveProperty", "_IRI"),
		stmt("ex:age", "rdf:type", "owl:DatatypeProperty", "_IRI"),
		stmt("ex:rex", "rdf:type", "ex:Dog", "_IRI"),
	)

	types, err := repo.TypesOf(context.Background(), []string{"ex:Dog", "ex:hasOwner", "ex:rex", "ex:missing"})
	require.NoError(t, err)

	assert.Equal(t, domain.TypeMap{
		"ex:Dog":      {"owl:Class"},
		"ex:hasOwner": {"owl:ObjectProperty"},
	}, types)
}

func TestLookupsAcceptPredicateSpellings(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		stmt("ex:Dog", "type", "owl:Class", "_IRI"),
		stmt("ex:hasOwner", "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", "http://www.w3.org/2002/07/owl#ObjectProperty", "_IRI"),
		stmt("ex:Dog", "label", "dog", "xsd:string"),
		stmt("ex:Cat", "http://www.w3.org/2000/01/rdf-schema#label", "cat", "xsd:string"),
	)
	ctx := context.Background()

	types, err := repo.TypesOf(ctx, []string{"ex:Dog", "ex:hasOwner"})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeMap{
		"ex:Dog":      {"owl:Class"},
		"ex:hasOwner": {"owl:ObjectProperty"},
	}, types)

	labels, err := repo.LabelsOf(ctx, []string{"ex:Dog", "ex:Cat"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelMap{"ex:Dog": "dog", "ex:Cat": "cat"}, labels)
}

func TestLabelsOf(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		stmt("ex:Dog", "rdfs:label", "dog", "@en"),
		stmt("ex:Dog", "skos:prefLabel", "Hund", "@de"),
		stmt("ex:Cat", "rdfs:label", "cat", "xsd:string"),
		stmt("ex:Cat", "rdfs:label", "house cat", "xsd:string"),
		stmt("ex:Bird", "rdfs:label", "ex:BirdLabel", "_IRI"),
	)
	ctx := context.Background()

	labels, err := repo.LabelsOf(ctx, []string{"ex:Dog", "ex:Cat", "ex:Bird"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelMap{"ex:Dog": "dog", "ex:Cat": "house cat"}, labels)

	labels, err = repo.LabelsOf(ctx, []string{"ex:Dog"}, []string{"rdfs:label", "skos:prefLabel"})
	require.NoError(t, err)
	assert.Equal(t, domain.LabelMap{"ex:Dog": "Hund"}, labels)

	labels, err = repo.LabelsOf(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
}
