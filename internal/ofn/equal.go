package ofn

// Equal reports whether two expressions are structurally identical
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Entity:
		y, ok := b.(*Entity)
		return ok && *x == *y
	case *Literal:
		y, ok := b.(*Literal)
		return ok && *x == *y
	case *Operator:
		y, ok := b.(*Operator)
		if !ok || x.name != y.name || len(x.args) != len(y.args) {
			return false
		}
		for i := range x.args {
			if !Equal(x.args[i], y.args[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
