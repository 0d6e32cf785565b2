package ofn

// DefaultMaxDepth is the nesting limit applied when no option overrides it
const DefaultMaxDepth = 512

// Option configures Parse
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth sets the maximum number of nested operators. Values below 1
// select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
