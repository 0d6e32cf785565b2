package ofn

// Walk visits e and its descendants in pre-order. Children of a node are
// skipped when fn returns false.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	if op, ok := e.(*Operator); ok {
		for _, arg := range op.args {
			Walk(arg, fn)
		}
	}
}

// Entities returns every entity in e in pre-order
func Entities(e Expr) []*Entity {
	var out []*Entity
	Walk(e, func(n Expr) bool {
		if ent, ok := n.(*Entity); ok {
			out = append(out, ent)
		}
		return true
	})
	return out
}

// Rewrite maps fn over e bottom-up and returns the new tree. Operators whose
// arguments changed are rebuilt with Build before fn sees them; when the
// rebuild fails the original operator is kept. fn must return its argument
// unchanged when it has nothing to do.
func Rewrite(e Expr, fn func(Expr) Expr) Expr {
	op, ok := e.(*Operator)
	if !ok {
		return fn(e)
	}

	changed := false
	args := make([]Expr, len(op.args))
	for i, arg := range op.args {
		args[i] = Rewrite(arg, fn)
		if args[i] != arg {
			changed = true
		}
	}

	var node Expr = op
	if changed {
		if rebuilt, err := Build(op.name, args...); err == nil {
			node = rebuilt
		}
	}
	return fn(node)
}
