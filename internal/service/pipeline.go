package service

import (
	"context"
	"fmt"
	"io"

	"wiring/internal/domain"
	"wiring/internal/labeling"
	"wiring/internal/ofn"
	"wiring/internal/render"
	"wiring/internal/repository"
	"wiring/internal/signature"
	"wiring/internal/typing"
)

// Pipeline runs store-backed translations: statements are read from the
// statement store, and typing and labeling maps come from the same store.
type Pipeline struct {
	engine   *Engine
	store    repository.StatementStore
	eventBus *EventBus
}

// NewPipeline creates a pipeline. eventBus may be nil.
func NewPipeline(engine *Engine, store repository.StatementStore, eventBus *EventBus) *Pipeline {
	return &Pipeline{
		engine:   engine,
		store:    store,
		eventBus: eventBus,
	}
}

// AxiomReport is the translation of one statement
type AxiomReport struct {
	Statement domain.Statement `json:"statement"`
	OFN       string           `json:"ofn,omitempty"`
	Typed     string           `json:"typed,omitempty"`
	Document  *render.Document `json:"document,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// SubjectReport collects the translated axioms of one subject together with
// the typing and labeling maps used to render them
type SubjectReport struct {
	Subject string          `json:"subject"`
	Axioms  []AxiomReport   `json:"axioms"`
	Types   domain.TypeMap  `json:"types"`
	Labels  domain.LabelMap `json:"labels"`
}

// SubjectReport translates every statement of a subject. Statements that
// fail to translate are reported with their error rather than aborting the
// report.
func (p *Pipeline) SubjectReport(ctx context.Context, subject string) (*SubjectReport, error) {
	stmts, err := p.store.StatementsBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load statements: %w", err)
	}
	if len(stmts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSubjectNotFound, subject)
	}

	report := &SubjectReport{
		Subject: subject,
		Axioms:  make([]AxiomReport, len(stmts)),
	}
	exprs := make([]ofn.Expr, len(stmts))
	var translated []ofn.Expr
	for i, stmt := range stmts {
		report.Axioms[i].Statement = stmt
		expr, err := p.engine.ldtab.AssembleStatement(stmt)
		if err != nil {
			report.Axioms[i].Error = err.Error()
			continue
		}
		exprs[i] = expr
		translated = append(translated, expr)
	}

	types, labels, err := p.lookup(ctx, signature.Union(translated...))
	if err != nil {
		return nil, err
	}
	report.Types = types
	report.Labels = labels

	for i, expr := range exprs {
		if expr == nil {
			continue
		}
		typed := typing.Inject(expr, types)
		doc := render.NewDocument(labeling.Inject(typed, labels))
		report.Axioms[i].OFN = ofn.Serialize(expr)
		report.Axioms[i].Typed = ofn.Serialize(typed)
		report.Axioms[i].Document = &doc
	}

	p.eventBus.Publish(Event{
		Type:    EventReportGenerated,
		Payload: map[string]interface{}{"subject": subject, "axioms": len(stmts)},
	})

	return report, nil
}

// ObjectsToManchester renders LDTab object columns in Manchester syntax.
// The signature of all objects is looked up in one pass, and identical
// objects are translated once.
func (p *Pipeline) ObjectsToManchester(ctx context.Context, objects []string) ([]string, error) {
	slot := make([]int, len(objects))
	var unique []ofn.Expr
	seen := make(map[uint64]int)

	for i, object := range objects {
		expr, err := p.engine.ldtab.ParseObject(object)
		if err != nil {
			return nil, fmt.Errorf("failed to translate object %d: %w", i, err)
		}
		fp := ofn.Fingerprint(expr)
		if j, ok := seen[fp]; ok && ofn.Equal(unique[j], expr) {
			slot[i] = j
			continue
		}
		seen[fp] = len(unique)
		slot[i] = len(unique)
		unique = append(unique, expr)
	}

	types, labels, err := p.lookup(ctx, signature.Union(unique...))
	if err != nil {
		return nil, err
	}

	rendered := make([]string, len(unique))
	for i, expr := range unique {
		rendered[i] = render.Manchester(labeling.Inject(typing.Inject(expr, types), labels))
	}

	out := make([]string, len(objects))
	for i, j := range slot {
		out[i] = rendered[j]
	}
	return out, nil
}

func (p *Pipeline) lookup(ctx context.Context, ids []string) (domain.TypeMap, domain.LabelMap, error) {
	types, err := p.store.TypesOf(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load types: %w", err)
	}
	labels, err := p.store.LabelsOf(ctx, ids, p.engine.labelPredicates)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load labels: %w", err)
	}
	return types, labels, nil
}

// ImportResult summarizes an import
type ImportResult struct {
	Format     string `json:"format"`
	Statements int    `json:"statements"`
}

// Import reads an ontology in the given format and appends its triples to
// the store as asserted statements
func (p *Pipeline) Import(ctx context.Context, format string, r io.Reader) (*ImportResult, error) {
	stmts, err := p.statements(format, r)
	if err != nil {
		return nil, err
	}

	if err := p.store.InsertStatements(ctx, stmts); err != nil {
		return nil, fmt.Errorf("failed to store statements: %w", err)
	}

	result := &ImportResult{Format: format, Statements: len(stmts)}
	p.eventBus.Publish(Event{
		Type:    EventStatementsImported,
		Payload: result,
	})

	return result, nil
}

// Reload replaces the statements of the engine's graph with the triples
// of an ontology
func (p *Pipeline) Reload(ctx context.Context, format string, r io.Reader) (*ImportResult, error) {
	stmts, err := p.statements(format, r)
	if err != nil {
		return nil, err
	}

	if err := p.store.ReplaceGraph(ctx, p.engine.graph, stmts); err != nil {
		return nil, fmt.Errorf("failed to replace graph %s: %w", p.engine.graph, err)
	}

	result := &ImportResult{Format: format, Statements: len(stmts)}
	p.eventBus.Publish(Event{
		Type:    EventOntologyReloaded,
		Payload: result,
	})

	return result, nil
}

func (p *Pipeline) statements(format string, r io.Reader) ([]domain.Statement, error) {
	imp, ok := p.engine.codecs.Importer(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	ontology, err := imp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s ontology: %w", format, err)
	}

	stmts := make([]domain.Statement, 0, ontology.Len())
	for i, t := range ontology.Triples {
		stmt, err := domain.FromTriple(t, p.engine.graph)
		if err != nil {
			return nil, fmt.Errorf("failed to convert triple %d: %w", i, err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// Export writes every asserted statement of the store in the given format
func (p *Pipeline) Export(ctx context.Context, format string, w io.Writer) error {
	exp, ok := p.engine.codecs.Exporter(format)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	stmts, err := p.store.Statements(ctx)
	if err != nil {
		return fmt.Errorf("failed to load statements: %w", err)
	}

	ontology := domain.NewOntology()
	for i, stmt := range stmts {
		t, err := stmt.Triple()
		if err != nil {
			return fmt.Errorf("failed to decode statement %d: %w", i, err)
		}
		ontology.Add(t)
	}

	if err := exp.Export(ontology, w); err != nil {
		return fmt.Errorf("failed to export %s ontology: %w", format, err)
	}
	return nil
}
