package domain

import "errors"

// Translation errors. Components wrap exactly one of the first five with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is.
var (
	// ErrSyntax indicates input that is not valid JSON
	ErrSyntax = errors.New("syntax error")
	// ErrGrammar indicates valid JSON that violates the OFN grammar
	ErrGrammar = errors.New("grammar error")
	// ErrUnknownPredicate indicates a thick triple predicate with no axiom mapping
	ErrUnknownPredicate = errors.New("unknown predicate")
	// ErrUnsupportedAxiom indicates an OFN expression with no thick triple encoding
	ErrUnsupportedAxiom = errors.New("unsupported axiom")
	// ErrMalformedObject indicates a nested object that does not decode to an expression
	ErrMalformedObject = errors.New("malformed object")

	// ErrTooDeep is joined with ErrGrammar or ErrMalformedObject when the
	// input nests deeper than the configured limit
	ErrTooDeep = errors.New("maximum nesting depth exceeded")
)
