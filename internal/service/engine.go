package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"wiring/internal/codec"
	"wiring/internal/domain"
	"wiring/internal/labeling"
	"wiring/internal/ldtab"
	"wiring/internal/ofn"
	"wiring/internal/render"
	"wiring/internal/signature"
	"wiring/internal/thick"
	"wiring/internal/typing"
)

// DefaultGraph is the LDTab graph column written when none is configured
const DefaultGraph = "graph"

// Engine exposes the translation operations on text input. It holds only
// configuration and is safe for concurrent use.
type Engine struct {
	thick           *thick.Codec
	ldtab           *ldtab.Assembler
	codecs          *codec.Registry
	labelPredicates []string
	maxDepth        int
	graph           string
}

type engineOptions struct {
	thick           []thick.Option
	labelPredicates []string
	prefixes        domain.Prefixes
	maxDepth        int
	graph           string
}

// Option configures an Engine
type Option func(*engineOptions)

// WithThickOptions passes options to the thick-triple codec and the LDTab
// assembler
func WithThickOptions(opts ...thick.Option) Option {
	return func(o *engineOptions) {
		o.thick = append(o.thick, opts...)
	}
}

// WithLabelPredicates sets the annotation properties read as labels
func WithLabelPredicates(predicates ...string) Option {
	return func(o *engineOptions) {
		o.labelPredicates = append(o.labelPredicates, predicates...)
	}
}

// WithPrefixes adds prefixes used when reading N-Triples
func WithPrefixes(p domain.Prefixes) Option {
	return func(o *engineOptions) {
		o.prefixes = o.prefixes.Merge(p)
	}
}

// WithMaxDepth limits the nesting of parsed OFN and thick objects
func WithMaxDepth(n int) Option {
	return func(o *engineOptions) {
		o.maxDepth = n
	}
}

// WithGraph sets the graph column of written LDTab rows
func WithGraph(graph string) Option {
	return func(o *engineOptions) {
		o.graph = graph
	}
}

// NewEngine creates an engine
func NewEngine(opts ...Option) *Engine {
	o := engineOptions{
		prefixes: domain.DefaultPrefixes(),
		maxDepth: ofn.DefaultMaxDepth,
		graph:    DefaultGraph,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDepth < 1 {
		o.maxDepth = ofn.DefaultMaxDepth
	}
	if len(o.labelPredicates) == 0 {
		o.labelPredicates = []string{domain.RDFSLabel}
	}

	thickOpts := append([]thick.Option{thick.WithMaxDepth(o.maxDepth)}, o.thick...)
	return &Engine{
		thick:           thick.New(thickOpts...),
		ldtab:           ldtab.New(o.graph, thickOpts...),
		codecs:          codec.NewRegistry(o.prefixes),
		labelPredicates: o.labelPredicates,
		maxDepth:        o.maxDepth,
		graph:           o.graph,
	}
}

// Codecs returns the ontology codecs known to the engine
func (e *Engine) Codecs() *codec.Registry {
	return e.codecs
}

// LabelPredicates returns the annotation properties read as labels
func (e *Engine) LabelPredicates() []string {
	return e.labelPredicates
}

// Graph returns the graph column of written LDTab rows
func (e *Engine) Graph() string {
	return e.graph
}

func (e *Engine) parse(text string) (ofn.Expr, error) {
	expr, err := ofn.Parse(text, ofn.WithMaxDepth(e.maxDepth))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFN: %w", err)
	}
	return expr, nil
}

// ThickToOFN translates a thick triple in JSON to OFN-S
func (e *Engine) ThickToOFN(text string) (string, error) {
	expr, err := e.thick.ThickToOFN(text)
	if err != nil {
		return "", fmt.Errorf("failed to translate thick triple: %w", err)
	}
	return ofn.Serialize(expr), nil
}

// OFNToThick translates an OFN-S axiom to a thick triple in JSON
func (e *Engine) OFNToThick(text string) (string, error) {
	expr, err := e.parse(text)
	if err != nil {
		return "", err
	}
	t, err := e.thick.FromOFN(expr)
	if err != nil {
		return "", fmt.Errorf("failed to translate axiom: %w", err)
	}
	return t.String(), nil
}

// LDTabToOFN assembles an OFN-S axiom from the subject, predicate and
// object columns of an LDTab row
func (e *Engine) LDTabToOFN(subject, predicate, object string) (string, error) {
	expr, err := e.ldtab.Assemble(subject, predicate, object)
	if err != nil {
		return "", fmt.Errorf("failed to assemble statement: %w", err)
	}
	return ofn.Serialize(expr), nil
}

// StatementToOFN assembles an OFN-S axiom from a complete LDTab row
func (e *Engine) StatementToOFN(stmt domain.Statement) (string, error) {
	expr, err := e.ldtab.AssembleStatement(stmt)
	if err != nil {
		return "", fmt.Errorf("failed to assemble statement: %w", err)
	}
	return ofn.Serialize(expr), nil
}

// ObjectToOFN translates an LDTab object column to an OFN-S expression
func (e *Engine) ObjectToOFN(object string) (string, error) {
	expr, err := e.ldtab.ParseObject(object)
	if err != nil {
		return "", fmt.Errorf("failed to translate object: %w", err)
	}
	return ofn.Serialize(expr), nil
}

// OFNToLDTab writes an OFN-S axiom as an LDTab row
func (e *Engine) OFNToLDTab(text string) (domain.Statement, error) {
	expr, err := e.parse(text)
	if err != nil {
		return domain.Statement{}, err
	}
	stmt, err := e.ldtab.FromOFN(expr)
	if err != nil {
		return domain.Statement{}, fmt.Errorf("failed to translate axiom: %w", err)
	}
	return stmt, nil
}

// Signature returns the sorted identifiers an OFN-S expression mentions
func (e *Engine) Signature(text string) ([]string, error) {
	expr, err := e.parse(text)
	if err != nil {
		return nil, err
	}
	return signature.Extract(expr), nil
}

// ParseOntology reads ontology text in a registered format. An empty
// format means JSON.
func (e *Engine) ParseOntology(format, text string) (*domain.Ontology, error) {
	if format == "" {
		format = "json"
	}
	imp, ok := e.codecs.Importer(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	ontology, err := imp.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s ontology: %w", format, err)
	}
	return ontology, nil
}

// ExtractTypes builds the typing map of an ontology
func (e *Engine) ExtractTypes(format, text string) (domain.TypeMap, error) {
	ontology, err := e.ParseOntology(format, text)
	if err != nil {
		return nil, err
	}
	return typing.Extract(ontology.Triples), nil
}

// InjectTypes resolves the untyped operators of an OFN-S expression
func (e *Engine) InjectTypes(text string, types domain.TypeMap) (string, error) {
	expr, err := e.parse(text)
	if err != nil {
		return "", err
	}
	return ofn.Serialize(typing.Inject(expr, types)), nil
}

// ExtractLabels builds the labeling map of an ontology. Without explicit
// predicates the engine's label predicates are used.
func (e *Engine) ExtractLabels(format, text string, predicates ...string) (domain.LabelMap, error) {
	ontology, err := e.ParseOntology(format, text)
	if err != nil {
		return nil, err
	}
	if len(predicates) == 0 {
		predicates = e.labelPredicates
	}
	return labeling.Extract(ontology.Triples, predicates...), nil
}

// InjectLabels attaches labels to the entities of an OFN-S expression.
// Labeled entities serialize as quoted labels.
func (e *Engine) InjectLabels(text string, labels domain.LabelMap) (string, error) {
	expr, err := e.parse(text)
	if err != nil {
		return "", err
	}
	return ofn.Serialize(labeling.Inject(expr, labels)), nil
}

// RenderDocumentation renders an OFN-S expression, applying the optional
// typing and labeling maps first
func (e *Engine) RenderDocumentation(text string, types domain.TypeMap, labels domain.LabelMap) (render.Document, error) {
	expr, err := e.parse(text)
	if err != nil {
		return render.Document{}, err
	}
	return render.NewDocument(e.decorate(expr, types, labels)), nil
}

// OFNToManchester renders an OFN-S expression in Manchester syntax
func (e *Engine) OFNToManchester(text string, types domain.TypeMap, labels domain.LabelMap) (string, error) {
	expr, err := e.parse(text)
	if err != nil {
		return "", err
	}
	return render.Manchester(e.decorate(expr, types, labels)), nil
}

func (e *Engine) decorate(expr ofn.Expr, types domain.TypeMap, labels domain.LabelMap) ofn.Expr {
	if len(types) > 0 {
		expr = typing.Inject(expr, types)
	}
	if len(labels) > 0 {
		expr = labeling.Inject(expr, labels)
	}
	return expr
}

// DecodeTypeMap reads a typing map from JSON text
func DecodeTypeMap(text string) (domain.TypeMap, error) {
	types := make(domain.TypeMap)
	if strings.TrimSpace(text) == "" {
		return types, nil
	}
	if err := json.Unmarshal([]byte(text), &types); err != nil {
		return nil, fmt.Errorf("%w: typing map: %v", domain.ErrSyntax, err)
	}
	return types, nil
}

// DecodeLabelMap reads a labeling map from JSON text
func DecodeLabelMap(text string) (domain.LabelMap, error) {
	labels := make(domain.LabelMap)
	if strings.TrimSpace(text) == "" {
		return labels, nil
	}
	if err := json.Unmarshal([]byte(text), &labels); err != nil {
		return nil, fmt.Errorf("%w: labeling map: %v", domain.ErrSyntax, err)
	}
	return labels, nil
}
