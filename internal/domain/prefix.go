package domain

import "strings"

// Prefixes maps a CURIE prefix to its namespace IRI
type Prefixes map[string]string

// DefaultPrefixes returns the prefixes every ontology in this repository uses
func DefaultPrefixes() Prefixes {
	return Prefixes{
		"rdf":  NamespaceRDF,
		"rdfs": NamespaceRDFS,
		"owl":  NamespaceOWL,
		"xsd":  NamespaceXSD,
		"skos": NamespaceSKOS,
		"obo":  NamespaceOBO,
	}
}

// Compact rewrites a full IRI as a CURIE using the longest matching
// namespace. IRIs without a match are returned unchanged.
func (p Prefixes) Compact(iri string) string {
	best, bestNS := "", ""
	for prefix, ns := range p {
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && prefix < best) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return iri
	}
	return best + ":" + iri[len(bestNS):]
}

// Expand rewrites a CURIE as a full IRI. Unknown prefixes and values that
// are already IRIs are returned unchanged.
func (p Prefixes) Expand(curie string) string {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok || strings.HasPrefix(local, "//") {
		return curie
	}
	ns, ok := p[prefix]
	if !ok {
		return curie
	}
	return ns + local
}

// Merge returns a copy of p extended with other; entries of other win
func (p Prefixes) Merge(other Prefixes) Prefixes {
	out := make(Prefixes, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
