package thick

import (
	"fmt"

	"wiring/internal/domain"
	"wiring/internal/ofn"
)

// Codec translates thick triples to OFN and back. A Codec holds only its
// configuration and is safe for concurrent use.
type Codec struct {
	style            Style
	flavor           Flavor
	maxDepth         int
	extraAnnotations []string
	vocab            vocabulary
}

// New creates a codec
func New(opts ...Option) *Codec {
	c := &Codec{
		style:    StyleCURIE,
		flavor:   FlavorThick,
		maxDepth: ofn.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.vocab = newVocabulary(c.extraAnnotations)
	return c
}

// Style returns the predicate spelling of written triples
func (c *Codec) Style() Style {
	return c.style
}

// Flavor returns the datatype flavor of written triples
func (c *Codec) Flavor() Flavor {
	return c.flavor
}

// MaxDepth returns the nesting limit
func (c *Codec) MaxDepth() int {
	return c.maxDepth
}

// IsAnnotationProperty reports whether a predicate is translated to an
// AnnotationAssertion
func (c *Codec) IsAnnotationProperty(predicate string) bool {
	p, _ := c.vocab.resolve(predicate)
	return p == PredicateAnnotation
}

// ThickToOFN decodes a thick triple from JSON text and translates it
func (c *Codec) ThickToOFN(text string) (ofn.Expr, error) {
	t, err := domain.ParseTriple(text)
	if err != nil {
		return nil, err
	}
	return c.ToOFN(t)
}

// OFNToThick parses OFN text and translates it to a thick triple
func (c *Codec) OFNToThick(text string) (domain.Triple, error) {
	e, err := ofn.Parse(text, ofn.WithMaxDepth(c.maxDepth))
	if err != nil {
		return domain.Triple{}, err
	}
	return c.FromOFN(e)
}

// ToOFN translates a thick triple to an OFN axiom
func (c *Codec) ToOFN(t domain.Triple) (ofn.Expr, error) {
	d := decoder{maxDepth: c.maxDepth}
	e, err := c.toOFN(d, t)
	if err != nil {
		return nil, fmt.Errorf("%w (predicate %s)", err, t.Predicate)
	}
	return e, nil
}

// ObjectToOFN translates a single object to the class expression, property
// expression or data range it encodes
func (c *Codec) ObjectToOFN(obj domain.Object) (ofn.Expr, error) {
	d := decoder{maxDepth: c.maxDepth}
	return d.expression(domain.Entry{Object: obj}, 0)
}

// FromOFN translates an OFN axiom to a thick triple
func (c *Codec) FromOFN(e ofn.Expr) (domain.Triple, error) {
	op, ok := e.(*ofn.Operator)
	if !ok || !ofn.IsAxiom(op) {
		return domain.Triple{}, fmt.Errorf("%w: %s is not an axiom", domain.ErrUnsupportedAxiom, ofn.Serialize(e))
	}
	enc := encoder{flavor: c.flavor}
	t, err := c.fromOFN(enc, op)
	if err != nil {
		return domain.Triple{}, fmt.Errorf("%w (axiom %s)", err, op.Name())
	}
	return t, nil
}
