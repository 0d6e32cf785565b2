package codec

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"wiring/internal/domain"
)

// NQuadsCodec reads and writes N-Triples and N-Quads.
//
// Reading thickens the graph: a blank node used exactly once as an object
// is folded into a nested object (restrictions and RDF lists), and
// owl:Axiom reifications become annotations of the triple they describe.
// Graph labels are dropped. Writing performs the reverse expansion.
type NQuadsCodec struct {
	format   string
	prefixes domain.Prefixes
}

// NewNQuadsCodec creates an N-Quads codec
func NewNQuadsCodec(prefixes domain.Prefixes) *NQuadsCodec {
	return &NQuadsCodec{format: "nquads", prefixes: withDefaults(prefixes)}
}

// NewNTriplesCodec creates an N-Triples codec. N-Triples is a subset of
// N-Quads, so both share the same reader.
func NewNTriplesCodec(prefixes domain.Prefixes) *NQuadsCodec {
	return &NQuadsCodec{format: "ntriples", prefixes: withDefaults(prefixes)}
}

func withDefaults(prefixes domain.Prefixes) domain.Prefixes {
	return domain.DefaultPrefixes().Merge(prefixes)
}

// Format returns the codec format identifier
func (c *NQuadsCodec) Format() string {
	return c.format
}

// Parse imports an ontology from N-Triples or N-Quads text
func (c *NQuadsCodec) Parse(r io.Reader) (*domain.Ontology, error) {
	reader := nquads.NewReader(r, true)

	var quads []quad.Quad
	for {
		q, err := reader.ReadQuad()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrSyntax, c.format, err)
		}
		quads = append(quads, q)
	}

	return c.thicken(quads), nil
}

// flat is one RDF triple with its subject and object already converted
type flat struct {
	subject   string
	predicate string
	object    domain.Entry
	blank     string // object blank node id, if any
}

type thickener struct {
	triples   []flat
	bySubject map[string][]int
	refs      map[string]int
	axioms    map[string]bool
	consumed  map[string]bool
}

func (c *NQuadsCodec) thicken(quads []quad.Quad) *domain.Ontology {
	th := &thickener{
		triples:   make([]flat, 0, len(quads)),
		bySubject: make(map[string][]int),
		refs:      make(map[string]int),
		axioms:    make(map[string]bool),
		consumed:  make(map[string]bool),
	}

	for _, q := range quads {
		f := flat{
			subject:   c.term(q.Subject),
			predicate: c.term(q.Predicate),
			object:    c.entry(q.Object),
		}
		if b, ok := q.Object.(quad.BNode); ok {
			f.blank = blankID(b)
		}
		th.bySubject[f.subject] = append(th.bySubject[f.subject], len(th.triples))
		th.triples = append(th.triples, f)
	}

	for _, f := range th.triples {
		if f.predicate == domain.RDFType && f.object.Object.Value == domain.MetaAxiom && domain.IsBlankNode(f.subject) {
			th.axioms[f.subject] = true
		}
	}
	for _, f := range th.triples {
		if f.blank == "" || (th.axioms[f.subject] && isReificationKey(f.predicate)) {
			continue
		}
		th.refs[f.blank]++
	}

	// claim every foldable blank node reachable from a root subject
	for _, f := range th.triples {
		if th.foldable(f.subject) || (th.axioms[f.subject] && isReificationKey(f.predicate)) {
			continue
		}
		th.claim(f.blank)
	}

	annotations, keys := th.collectAnnotations()
	used := make(map[string]bool)

	ontology := domain.NewOntology()
	for _, f := range th.triples {
		if th.consumed[f.subject] || th.axioms[f.subject] {
			continue
		}
		t := th.triple(f)
		key := reificationKey(f)
		if ann, ok := annotations[key]; ok {
			t.Annotation = ann
			used[key] = true
		}
		ontology.Add(t)
	}

	// reifications that are incomplete or annotate no imported triple are
	// kept as plain rows
	for _, f := range th.triples {
		if th.axioms[f.subject] && !used[keys[f.subject]] {
			ontology.Add(th.triple(f))
		}
	}
	return ontology
}

func (th *thickener) triple(f flat) domain.Triple {
	obj := th.resolve(f)
	return domain.Triple{
		Subject:   domain.IRI(f.subject),
		Predicate: f.predicate,
		Object:    obj.Object,
		Datatype:  obj.Datatype,
	}
}

func (th *thickener) foldable(id string) bool {
	return domain.IsBlankNode(id) && th.refs[id] == 1 && !th.axioms[id] && len(th.bySubject[id]) > 0
}

func (th *thickener) claim(id string) {
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == "" || th.consumed[cur] || !th.foldable(cur) {
			continue
		}
		th.consumed[cur] = true
		for _, i := range th.bySubject[cur] {
			stack = append(stack, th.triples[i].blank)
		}
	}
}

// resolve returns the object of f, folding claimed blank nodes
func (th *thickener) resolve(f flat) domain.Entry {
	if f.blank == "" || !th.consumed[f.blank] {
		return f.object
	}
	fields := make(map[string][]domain.Entry)
	for _, i := range th.bySubject[f.blank] {
		child := th.triples[i]
		fields[child.predicate] = append(fields[child.predicate], th.resolve(child))
	}
	return domain.NestedEntry(fields)
}

func isReificationKey(predicate string) bool {
	return predicate == domain.OWLAnnotatedSource || predicate == domain.OWLAnnotatedTarget
}

func reificationKey(f flat) string {
	target := f.object.Object.Value
	if f.blank != "" {
		target = f.blank
	}
	return strings.Join([]string{f.subject, f.predicate, target, f.object.Datatype}, "\x00")
}

// collectAnnotations turns owl:Axiom nodes into annotation maps keyed by the
// triple they annotate. It also returns the key of every axiom node; an
// incomplete reification gets the empty key.
func (th *thickener) collectAnnotations() (map[string]map[string][]domain.Entry, map[string]string) {
	out := make(map[string]map[string][]domain.Entry)
	keys := make(map[string]string, len(th.axioms))
	for id := range th.axioms {
		var source, property, target []flat
		anns := make(map[string][]domain.Entry)
		for _, i := range th.bySubject[id] {
			f := th.triples[i]
			switch f.predicate {
			case domain.RDFType:
			case domain.OWLAnnotatedSource:
				source = append(source, f)
			case domain.OWLAnnotatedProperty:
				property = append(property, f)
			case domain.OWLAnnotatedTarget:
				target = append(target, f)
			default:
				e := th.resolve(f)
				e.Meta = domain.MetaAxiom
				anns[f.predicate] = append(anns[f.predicate], e)
			}
		}
		if len(source) != 1 || len(property) != 1 || len(target) != 1 {
			continue
		}

		subject := source[0].object.Object.Value
		if source[0].blank != "" {
			subject = source[0].blank
		}
		key := reificationKey(flat{
			subject:   subject,
			predicate: property[0].object.Object.Value,
			object:    target[0].object,
			blank:     target[0].blank,
		})
		keys[id] = key
		if prev, ok := out[key]; ok {
			for k, v := range anns {
				prev[k] = append(prev[k], v...)
			}
			continue
		}
		out[key] = anns
	}
	return out, keys
}

func (c *NQuadsCodec) term(v quad.Value) string {
	switch t := v.(type) {
	case quad.IRI:
		return c.prefixes.Compact(string(t))
	case quad.BNode:
		return blankID(t)
	default:
		return quad.StringOf(v)
	}
}

func (c *NQuadsCodec) entry(v quad.Value) domain.Entry {
	switch t := v.(type) {
	case quad.IRI:
		return domain.IRIEntry(c.prefixes.Compact(string(t)))
	case quad.BNode:
		return domain.IRIEntry(blankID(t))
	case quad.String:
		return domain.LiteralEntry(string(t), domain.XSDString)
	case quad.LangString:
		return domain.LiteralEntry(string(t.Value), "@"+t.Lang)
	case quad.TypedString:
		return domain.LiteralEntry(string(t.Value), c.prefixes.Compact(string(t.Type)))
	default:
		return domain.LiteralEntry(quad.StringOf(v), domain.XSDString)
	}
}

func blankID(b quad.BNode) string {
	return "_:" + string(b)
}

// Export writes the ontology as N-Quads. Nested objects are expanded into
// fresh blank nodes and annotations into owl:Axiom reifications.
func (c *NQuadsCodec) Export(ontology *domain.Ontology, w io.Writer) error {
	writer := nquads.NewWriter(w)
	ex := &expander{codec: c}

	for i, t := range ontology.Triples {
		subject, err := ex.value(domain.Entry{Object: t.Subject})
		if err != nil {
			return fmt.Errorf("failed to expand triple %d subject: %w", i, err)
		}
		object, err := ex.value(t.ObjectEntry())
		if err != nil {
			return fmt.Errorf("failed to expand triple %d object: %w", i, err)
		}
		predicate := c.iri(t.Predicate)
		ex.emit(subject, predicate, object)

		if len(t.Annotation) > 0 {
			axiom := ex.fresh()
			ex.emit(axiom, c.iri(domain.RDFType), c.iri(domain.MetaAxiom))
			ex.emit(axiom, c.iri(domain.OWLAnnotatedSource), subject)
			ex.emit(axiom, c.iri(domain.OWLAnnotatedProperty), predicate)
			ex.emit(axiom, c.iri(domain.OWLAnnotatedTarget), object)
			for _, key := range sortedKeys(t.Annotation) {
				for _, e := range t.Annotation[key] {
					v, err := ex.value(e)
					if err != nil {
						return fmt.Errorf("failed to expand triple %d annotation: %w", i, err)
					}
					ex.emit(axiom, c.iri(key), v)
				}
			}
		}
	}

	for _, q := range ex.out {
		if err := writer.WriteQuad(q); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.format, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.format, err)
	}
	return nil
}

type expander struct {
	codec *NQuadsCodec
	next  int
	out   []quad.Quad
}

func (ex *expander) fresh() quad.BNode {
	ex.next++
	return quad.BNode("b" + strconv.Itoa(ex.next))
}

func (ex *expander) emit(s, p, o quad.Value) {
	ex.out = append(ex.out, quad.Quad{Subject: s, Predicate: p, Object: o})
}

func (ex *expander) value(e domain.Entry) (quad.Value, error) {
	if e.Object.IsNested() {
		node := ex.fresh()
		for _, key := range e.Object.Keys() {
			for _, child := range e.Object.Get(key) {
				v, err := ex.value(child)
				if err != nil {
					return nil, err
				}
				ex.emit(node, ex.codec.iri(key), v)
			}
		}
		return node, nil
	}

	value := e.Object.Value
	switch dt := e.Datatype; {
	case dt == "" || dt == domain.DatatypeIRI:
		if domain.IsBlankNode(value) {
			return quad.BNode(strings.TrimPrefix(value, "_:")), nil
		}
		return ex.codec.iri(value), nil
	case dt == domain.DatatypeJSON:
		return nil, fmt.Errorf("%w: _JSON datatype on a plain value", domain.ErrMalformedObject)
	case strings.HasPrefix(dt, "@"):
		return quad.LangString{Value: quad.String(value), Lang: dt[1:]}, nil
	case dt == domain.XSDString:
		return quad.String(value), nil
	default:
		return quad.TypedString{Value: quad.String(value), Type: ex.codec.iri(dt)}, nil
	}
}

func (c *NQuadsCodec) iri(curie string) quad.IRI {
	return quad.IRI(c.prefixes.Expand(curie))
}

func sortedKeys(m map[string][]domain.Entry) []string {
	return domain.Nested(m).Keys()
}
