package ofn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"wiring/internal/domain"
)

// Parse reads an OFN expression in its JSON S-expression form
func Parse(text string, opts ...Option) (Expr, error) {
	o := newOptions(opts)

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSyntax, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after expression", domain.ErrSyntax)
	}

	p := parser{maxDepth: o.maxDepth}
	e, err := p.parse(raw, SortAny, 0)
	if err != nil {
		return nil, err
	}
	return e, nil
}

type parser struct {
	maxDepth int
}

func (p parser) parse(raw any, sort Sort, depth int) (Expr, error) {
	switch v := raw.(type) {
	case []any:
		return p.parseOperator(v, depth+1)
	case string:
		return parseAtom(v, sort)
	case json.Number:
		if sort != SortCardinality || !isDigits(v.String()) {
			return nil, fmt.Errorf("%w: unexpected number %s", domain.ErrGrammar, v)
		}
		return NewLiteral(v.String(), domain.XSDNonNegativeInteger), nil
	case nil:
		return nil, fmt.Errorf("%w: unexpected null", domain.ErrGrammar)
	default:
		return nil, fmt.Errorf("%w: unexpected JSON value of type %T", domain.ErrGrammar, raw)
	}
}

func (p parser) parseOperator(raw []any, depth int) (Expr, error) {
	if depth > p.maxDepth {
		return nil, fmt.Errorf("%w: %w: more than %d nested operators", domain.ErrGrammar, domain.ErrTooDeep, p.maxDepth)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty operator", domain.ErrGrammar)
	}
	name, ok := raw[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: operator name must be a string", domain.ErrGrammar)
	}
	sig, ok := grammar[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %q", domain.ErrGrammar, name)
	}

	rawArgs := raw[1:]
	sorts, err := sig.argSorts(name, len(rawArgs), func(i int) bool {
		arr, ok := rawArgs[i].([]any)
		return ok && len(arr) > 0 && arr[0] == OpAnnotation
	})
	if err != nil {
		return nil, err
	}

	args := make([]Expr, len(rawArgs))
	for i, r := range rawArgs {
		child, err := p.parse(r, sorts[i], depth)
		if err == nil {
			child, err = place(sorts[i], child)
		}
		if err != nil {
			return nil, fmt.Errorf("%w (argument %d of %s)", err, i+1, name)
		}
		args[i] = child
	}
	return &Operator{name: name, args: args}, nil
}

func parseAtom(s string, sort Sort) (Expr, error) {
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty entity", domain.ErrGrammar)
	case s[0] == '"':
		lit, err := parseLiteral(s)
		if err != nil {
			return nil, err
		}
		return lit, nil
	case len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		return &Entity{Label: s[1 : len(s)-1]}, nil
	case sort == SortCardinality && isDigits(s):
		return NewLiteral(s, domain.XSDNonNegativeInteger), nil
	default:
		return NewEntity(s), nil
	}
}

func parseLiteral(s string) (*Literal, error) {
	var b strings.Builder
	end := -1
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(s[i])
			continue
		}
		if c == '"' {
			end = i
			break
		}
		b.WriteByte(c)
	}
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated literal %s", domain.ErrGrammar, s)
	}

	suffix := s[end+1:]
	switch {
	case suffix == "":
		return NewLiteral(b.String(), domain.XSDString), nil
	case strings.HasPrefix(suffix, "@") && len(suffix) > 1:
		return NewLangLiteral(b.String(), suffix[1:]), nil
	case strings.HasPrefix(suffix, "^^") && len(suffix) > 2:
		return NewLiteral(b.String(), suffix[2:]), nil
	default:
		return nil, fmt.Errorf("%w: invalid literal suffix %q", domain.ErrGrammar, suffix)
	}
}
