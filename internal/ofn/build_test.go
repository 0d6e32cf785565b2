package ofn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiring/internal/domain"
)

func TestBuild(t *testing.T) {
	t.Run("derives kinds from position", func(t *testing.T) {
		e, err := Build(OpDataSomeValuesFrom, NewEntity("ex:age"), NewEntity("xsd:integer"))
		require.NoError(t, err)
		op := e.(*Operator)
		assert.Equal(t, KindDataProperty, op.Arg(0).(*Entity).Kind)
		assert.Equal(t, KindDatatype, op.Arg(1).(*Entity).Kind)
	})

	t.Run("rebuilding changes kinds", func(t *testing.T) {
		untyped := MustBuild(OpSomeValuesFrom, NewEntity("ex:p"), NewEntity("ex:B")).(*Operator)
		typed, err := Build(OpObjectSomeValuesFrom, untyped.Args()...)
		require.NoError(t, err)
		assert.Equal(t, KindObjectProperty, typed.(*Operator).Arg(0).(*Entity).Kind)
		assert.Equal(t, KindUnknown, untyped.Arg(0).(*Entity).Kind, "input is not modified")
	})

	t.Run("normalizes cardinality", func(t *testing.T) {
		e, err := Build(OpObjectMinCardinality, NewLiteral("2", "xsd:integer"), NewEntity("ex:p"))
		require.NoError(t, err)
		lit := e.(*Operator).Arg(0).(*Literal)
		assert.Equal(t, domain.XSDNonNegativeInteger, lit.Datatype)
	})

	t.Run("copies arguments", func(t *testing.T) {
		args := []Expr{NewEntity("ex:A"), NewEntity("ex:B")}
		e, err := Build(OpSubClassOf, args...)
		require.NoError(t, err)
		args[0] = NewEntity("ex:Z")
		assert.Equal(t, "ex:A", IRIOf(e.(*Operator).Arg(0)))
	})

	t.Run("keeps labels", func(t *testing.T) {
		e, err := Build(OpSubClassOf, NewEntity("ex:A").WithLabel("a"), NewEntity("ex:B"))
		require.NoError(t, err)
		assert.Equal(t, "a", e.(*Operator).Arg(0).(*Entity).Label)
	})

	errs := []struct {
		name string
		op   string
		args []Expr
	}{
		{"unknown operator", "Nope", nil},
		{"arity", OpSubClassOf, []Expr{NewEntity("ex:A")}},
		{"nil argument", OpSubClassOf, []Expr{nil, NewEntity("ex:A")}},
		{"literal cardinality", OpObjectMinCardinality, []Expr{NewLiteral("two", ""), NewEntity("ex:p")}},
		{"data range as class", OpSubClassOf, []Expr{NewEntity("ex:A"), MustBuild(OpDataOneOf, NewLiteral("a", ""))}},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.op, tt.args...)
			assert.ErrorIs(t, err, domain.ErrGrammar)
		})
	}
}

func TestOperatorAnnotations(t *testing.T) {
	ann := MustBuild(OpAnnotation, NewEntity("rdfs:comment"), NewLiteral("note", ""))
	e := MustBuild(OpSubClassOf, ann, NewEntity("ex:A"), NewEntity("ex:B")).(*Operator)

	require.Len(t, e.Annotations(), 1)
	assert.Equal(t, OpAnnotation, e.Annotations()[0].Name())
	body := e.Body()
	require.Len(t, body, 2)
	assert.Equal(t, "ex:A", IRIOf(body[0]))
	assert.True(t, IsAxiom(e))
	assert.False(t, IsClassExpression(e))
}

func TestRewrite(t *testing.T) {
	e, err := Parse(`["SubClassOf","ex:A",["SomeValuesFrom","ex:p","ex:B"]]`)
	require.NoError(t, err)

	typed := Rewrite(e, func(n Expr) Expr {
		if op, ok := n.(*Operator); ok && op.Name() == OpSomeValuesFrom {
			if out, err := Build(OpObjectSomeValuesFrom, op.Args()...); err == nil {
				return out
			}
		}
		return n
	})
	assert.Equal(t, `["SubClassOf","ex:A",["ObjectSomeValuesFrom","ex:p","ex:B"]]`, Serialize(typed))
	assert.Equal(t, `["SubClassOf","ex:A",["SomeValuesFrom","ex:p","ex:B"]]`, Serialize(e))

	same := Rewrite(e, func(n Expr) Expr { return n })
	assert.Same(t, e, same)
}

func TestFingerprint(t *testing.T) {
	a, err := Parse(`["SubClassOf","ex:A","ex:B"]`)
	require.NoError(t, err)
	b, err := Parse(` [ "SubClassOf", "ex:A", "ex:B" ] `)
	require.NoError(t, err)
	c, err := Parse(`["SubClassOf","ex:B","ex:A"]`)
	require.NoError(t, err)

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestEqual(t *testing.T) {
	a := MustBuild(OpSubClassOf, NewEntity("ex:A"), NewEntity("ex:B"))
	b := MustBuild(OpSubClassOf, NewEntity("ex:A"), NewEntity("ex:B"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, NewEntity("ex:A")))
	assert.False(t, Equal(NewLiteral("1", ""), NewLiteral("1", "xsd:integer")))
	assert.False(t, Equal(NewEntity("ex:A"), NewEntity("ex:A").WithLabel("A")))
}
