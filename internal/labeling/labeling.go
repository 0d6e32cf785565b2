// Package labeling attaches human readable labels to the entities of an OFN
// expression.
package labeling

import (
	"wiring/internal/domain"
	"wiring/internal/ofn"
)

// Extract builds a label map from triples whose predicate is one of
// predicates (rdfs:label when none are given). When an identifier has
// several labels the last one in input order wins.
func Extract(triples []domain.Triple, predicates ...string) domain.LabelMap {
	if len(predicates) == 0 {
		predicates = []string{domain.RDFSLabel}
	}
	prefixes := domain.DefaultPrefixes()
	wanted := make(map[string]bool, len(predicates))
	for _, p := range predicates {
		wanted[prefixes.Compact(p)] = true
	}

	m := domain.LabelMap{}
	for _, t := range triples {
		if t.Subject.IsNested() || t.Object.IsNested() {
			continue
		}
		if !wanted[prefixes.Compact(localPredicate(t.Predicate))] {
			continue
		}
		m[t.Subject.Value] = t.Object.Value
	}
	return m
}

// localPredicate maps the bare "label" spelling to rdfs:label
func localPredicate(p string) string {
	if p == "label" {
		return domain.RDFSLabel
	}
	return p
}

// Inject returns e with the label of every mapped entity set. Entities
// without a label in the map are unchanged, and injecting the same map twice
// gives the same tree as injecting it once.
func Inject(e ofn.Expr, labels domain.LabelMap) ofn.Expr {
	return ofn.Rewrite(e, func(n ofn.Expr) ofn.Expr {
		ent, ok := n.(*ofn.Entity)
		if !ok || ent.IRI == "" {
			return n
		}
		label, ok := labels[ent.IRI]
		if !ok || label == "" || label == ent.Label {
			return n
		}
		return ent.WithLabel(label)
	})
}
