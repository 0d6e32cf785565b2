package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/domain"
	"wiring/internal/repository/sqlite"
)

const restrictionObject = `{"rdf:type":[{"object":"owl:Restriction","datatype":"_IRI"}],` +
	`"owl:onProperty":[{"object":"ex:hasOwner","datatype":"_IRI"}],` +
	`"owl:someValuesFrom":[{"object":"ex:Person","datatype":"_IRI"}]}`

const ontologyJSON = `[
	{"subject":"ex:Dog","predicate":"rdfs:subClassOf","object":` + restrictionObject + `},
	{"subject":"ex:Dog","predicate":"rdfs:subClassOf","object":"ex:Animal"},
	{"subject":"ex:Dog","predicate":"rdfs:label","object":"dog","datatype":"xsd:string"},
	{"subject":"ex:hasOwner","predicate":"rdf:type","object":"owl:ObjectProperty"},
	{"subject":"ex:hasOwner","predicate":"rdfs:label","object":"has owner","datatype":"xsd:string"},
	{"subject":"ex:Person","predicate":"rdf:type","object":"owl:Class"}
]`

func newTestPipeline(t *testing.T) (*Pipeline, *sqlite.Repository, *EventBus) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
	})

	bus := NewEventBus()
	return NewPipeline(NewEngine(), repo, bus), repo, bus
}

func seedPipeline(t *testing.T, p *Pipeline) {
	t.Helper()
	result, err := p.Import(context.Background(), "json", strings.NewReader(ontologyJSON))
	require.NoError(t, err)
	require.Equal(t, 6, result.Statements)
}

func TestPipelineImport(t *testing.T) {
	p, repo, bus := newTestPipeline(t)
	events := make(chan Event, 1)
	bus.Subscribe(events)

	seedPipeline(t, p)

	event := <-events
	assert.Equal(t, EventStatementsImported, event.Type)
	assert.Equal(t, &ImportResult{Format: "json", Statements: 6}, event.Payload)

	stmts, err := repo.StatementsBySubject(context.Background(), "ex:Dog")
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.Equal(t, domain.DatatypeJSON, stmts[0].Datatype)
	assert.Equal(t, DefaultGraph, stmts[0].Graph)
}

func TestPipelineImportErrors(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := p.Import(ctx, "turtle", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = p.Import(ctx, "json", strings.NewReader(`[{"subject":`))
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestPipelineSubjectReport(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	seedPipeline(t, p)

	report, err := p.SubjectReport(context.Background(), "ex:Dog")
	require.NoError(t, err)
	require.Len(t, report.Axioms, 3)

	assert.Equal(t, domain.TypeMap{
		"ex:hasOwner": {"owl:ObjectProperty"},
		"ex:Person":   {"owl:Class"},
	}, report.Types)
	assert.Equal(t, "dog", report.Labels["ex:Dog"])
	assert.Equal(t, "has owner", report.Labels["ex:hasOwner"])

	first := report.Axioms[0]
	assert.Empty(t, first.Error)
	assert.Equal(t, `["SubClassOf","ex:Dog",["SomeValuesFrom","ex:hasOwner","ex:Person"]]`, first.OFN)
	assert.Equal(t, `["SubClassOf","ex:Dog",["ObjectSomeValuesFrom","ex:hasOwner","ex:Person"]]`, first.Typed)
	require.NotNil(t, first.Document)
	assert.Equal(t, "dog SubClassOf: 'has owner' some ex:Person", first.Document.Manchester)
	assert.Equal(t, "dog\n  is a subclass of\n    has some has owner that is ex:Person", first.Document.Text)

	assert.Equal(t, "dog SubClassOf: ex:Animal", report.Axioms[1].Document.Manchester)
}

func TestPipelineSubjectReportKeepsFailures(t *testing.T) {
	p, repo, _ := newTestPipeline(t)
	ctx := context.Background()

	require.NoError(t, repo.InsertStatements(ctx, []domain.Statement{
		{Assertion: 1, Graph: "graph", Subject: "ex:Cat", Predicate: "ex:likes", Object: "ex:Fish", Datatype: "_IRI"},
		{Assertion: 1, Graph: "graph", Subject: "ex:Cat", Predicate: "rdfs:subClassOf", Object: "ex:Animal", Datatype: "_IRI"},
	}))

	report, err := p.SubjectReport(ctx, "ex:Cat")
	require.NoError(t, err)
	require.Len(t, report.Axioms, 2)
	assert.Contains(t, report.Axioms[0].Error, "unknown predicate")
	assert.Nil(t, report.Axioms[0].Document)
	assert.Equal(t, `["SubClassOf","ex:Cat","ex:Animal"]`, report.Axioms[1].OFN)
}

func TestPipelineSubjectReportNotFound(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	_, err := p.SubjectReport(context.Background(), "ex:Nothing")
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestPipelineObjectsToManchester(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	seedPipeline(t, p)

	out, err := p.ObjectsToManchester(context.Background(), []string{restrictionObject, "ex:Person", restrictionObject})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"'has owner' some ex:Person",
		"ex:Person",
		"'has owner' some ex:Person",
	}, out)

	_, err = p.ObjectsToManchester(context.Background(), []string{"{"})
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestPipelineExport(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	seedPipeline(t, p)

	var buf bytes.Buffer
	require.NoError(t, p.Export(context.Background(), "json", &buf))

	ontology, err := p.engine.ParseOntology("json", buf.String())
	require.NoError(t, err)
	assert.Equal(t, 6, ontology.Len())

	assert.ErrorIs(t, p.Export(context.Background(), "turtle", &buf), ErrUnknownFormat)
}

func TestPipelineReload(t *testing.T) {
	p, repo, bus := newTestPipeline(t)
	seedPipeline(t, p)

	events := make(chan Event, 1)
	bus.Subscribe(events)

	result, err := p.Reload(context.Background(), "json",
		strings.NewReader(`[{"subject":"ex:Cat","predicate":"rdfs:subClassOf","object":"ex:Animal"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Statements)

	event := <-events
	assert.Equal(t, EventOntologyReloaded, event.Type)

	stmts, err := repo.Statements(context.Background())
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, "ex:Cat", stmts[0].Subject)

	_, err = p.Reload(context.Background(), "turtle", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
