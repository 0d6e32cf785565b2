package thick

import "wiring/internal/ofn"

// Option configures a Codec
type Option func(*Codec)

// WithStyle sets the predicate spelling of written triples
func WithStyle(s Style) Option {
	return func(c *Codec) {
		c.style = s
	}
}

// WithFlavor sets the datatype flavor of written triples
func WithFlavor(f Flavor) Option {
	return func(c *Codec) {
		c.flavor = f
	}
}

// WithAnnotationProperties registers additional annotation properties.
// Properties may be given as CURIEs or full IRIs.
func WithAnnotationProperties(props ...string) Option {
	return func(c *Codec) {
		c.extraAnnotations = append(c.extraAnnotations, props...)
	}
}

// WithMaxDepth sets the maximum nesting of objects and OFN operators.
// Values below 1 select ofn.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *Codec) {
		if n < 1 {
			n = ofn.DefaultMaxDepth
		}
		c.maxDepth = n
	}
}
