// Package signature collects the entities an OFN expression mentions.
package signature

import (
	"sort"

	"wiring/internal/ofn"
)

// Extract returns the sorted, de-duplicated IRIs of every entity in e,
// anonymous individuals included. Operator names and literals are not part
// of the signature.
func Extract(e ofn.Expr) []string {
	return Union(e)
}

// Union returns the combined signature of several expressions
func Union(exprs ...ofn.Expr) []string {
	seen := make(map[string]struct{})
	for _, e := range exprs {
		ofn.Walk(e, func(n ofn.Expr) bool {
			if ent, ok := n.(*ofn.Entity); ok && ent.IRI != "" {
				seen[ent.IRI] = struct{}{}
			}
			return true
		})
	}

	out := make([]string, 0, len(seen))
	for iri := range seen {
		out = append(out, iri)
	}
	sort.Strings(out)
	return out
}
