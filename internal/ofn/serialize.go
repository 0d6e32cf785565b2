package ofn

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"wiring/internal/domain"
)

// Marshal encodes an expression in its JSON S-expression form
func Marshal(e Expr) ([]byte, error) {
	if e == nil {
		return nil, errors.New("cannot marshal nil expression")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toValue(e, SortAny)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Serialize returns the JSON S-expression text of an expression. It is total
// on trees built by Parse or Build.
func Serialize(e Expr) string {
	data, err := Marshal(e)
	if err != nil {
		return ""
	}
	return string(data)
}

func toValue(e Expr, sort Sort) any {
	switch v := e.(type) {
	case *Entity:
		if v.Label != "" {
			return "'" + v.Label + "'"
		}
		return v.IRI
	case *Literal:
		if sort == SortCardinality {
			return v.Lexical
		}
		return formatLiteral(v)
	case *Operator:
		out := make([]any, 0, len(v.args)+1)
		out = append(out, v.name)
		sorts, err := grammar[v.name].argSorts(v.name, len(v.args), func(i int) bool {
			return IsOp(v.args[i], OpAnnotation)
		})
		for i, arg := range v.args {
			sort := SortAny
			if err == nil {
				sort = sorts[i]
			}
			out = append(out, toValue(arg, sort))
		}
		return out
	default:
		return nil
	}
}

// FormatLiteral returns the quoted OFN-S form of a literal
func FormatLiteral(l *Literal) string {
	return formatLiteral(l)
}

func formatLiteral(l *Literal) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(l.Lexical); i++ {
		c := l.Lexical[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	switch {
	case l.Lang != "":
		b.WriteString("@" + l.Lang)
	case l.Datatype == "" || l.Datatype == domain.XSDString:
	default:
		b.WriteString("^^" + l.Datatype)
	}
	return b.String()
}
