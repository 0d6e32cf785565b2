package thick

import (
	"strings"

	"wiring/internal/domain"
)

// Predicate enumerates the top-level predicates with an axiom mapping
type Predicate int

const (
	PredicateUnknown Predicate = iota
	PredicateSubClassOf
	PredicateEquivalentClass
	PredicateDisjointWith
	PredicateDisjointUnionOf
	PredicateSubPropertyOf
	PredicateEquivalentProperty
	PredicatePropertyDisjointWith
	PredicateInverseOf
	PredicateDomain
	PredicateRange
	PredicatePropertyChainAxiom
	PredicateType
	PredicateSameAs
	PredicateDifferentFrom
	PredicateAnnotation
)

var predicateCURIEs = map[Predicate]string{
	PredicateSubClassOf:           domain.RDFSSubClassOf,
	PredicateEquivalentClass:      domain.OWLEquivalentClass,
	PredicateDisjointWith:         domain.OWLDisjointWith,
	PredicateDisjointUnionOf:      domain.OWLDisjointUnionOf,
	PredicateSubPropertyOf:        domain.RDFSSubPropertyOf,
	PredicateEquivalentProperty:   domain.OWLEquivalentProperty,
	PredicatePropertyDisjointWith: domain.OWLPropertyDisjointWith,
	PredicateInverseOf:            domain.OWLInverseOf,
	PredicateDomain:               domain.RDFSDomain,
	PredicateRange:                domain.RDFSRange,
	PredicatePropertyChainAxiom:   domain.OWLPropertyChainAxiom,
	PredicateType:                 domain.RDFType,
	PredicateSameAs:               domain.OWLSameAs,
	PredicateDifferentFrom:        domain.OWLDifferentFrom,
}

// String returns the CURIE of the predicate
func (p Predicate) String() string {
	if c, ok := predicateCURIEs[p]; ok {
		return c
	}
	if p == PredicateAnnotation {
		return "annotation"
	}
	return "unknown"
}

// DefaultAnnotationProperties are translated to AnnotationAssertion axioms
// without registration
var DefaultAnnotationProperties = []string{
	domain.RDFSLabel,
	domain.RDFSComment,
	domain.RDFSSeeAlso,
	domain.RDFSIsDefinedBy,
	domain.OWLDeprecated,
	domain.OWLVersionInfo,
	domain.SKOSPrefLabel,
	domain.SKOSAltLabel,
	domain.SKOSDefinition,
	domain.OBODefinition,
}

// Style selects how the codec spells the predicate of the triples it writes
type Style int

const (
	// StyleCURIE writes "rdfs:subClassOf"
	StyleCURIE Style = iota
	// StyleLocal writes "subClassOf"
	StyleLocal
	// StyleIRI writes "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	StyleIRI
)

// ParseStyle converts a configuration value to a Style
func ParseStyle(s string) (Style, bool) {
	switch strings.ToLower(s) {
	case "", "curie":
		return StyleCURIE, true
	case "local":
		return StyleLocal, true
	case "iri":
		return StyleIRI, true
	default:
		return StyleCURIE, false
	}
}

func (s Style) String() string {
	switch s {
	case StyleLocal:
		return "local"
	case StyleIRI:
		return "iri"
	default:
		return "curie"
	}
}

// Flavor selects whether the codec writes LDTab datatype markers
type Flavor int

const (
	// FlavorThick leaves identifier and nested datatypes implicit
	FlavorThick Flavor = iota
	// FlavorLDTab writes _IRI and _JSON datatypes and marks axiom
	// annotations with meta owl:Axiom
	FlavorLDTab
)

// ParseFlavor converts a configuration value to a Flavor
func ParseFlavor(s string) (Flavor, bool) {
	switch strings.ToLower(s) {
	case "", "thick":
		return FlavorThick, true
	case "ldtab":
		return FlavorLDTab, true
	default:
		return FlavorThick, false
	}
}

func (f Flavor) String() string {
	if f == FlavorLDTab {
		return "ldtab"
	}
	return "thick"
}

// vocabulary resolves predicate spellings to CURIEs
type vocabulary struct {
	prefixes    domain.Prefixes
	known       map[string]Predicate
	annotations map[string]bool
	locals      map[string]string
}

func newVocabulary(annotationProps []string) vocabulary {
	v := vocabulary{
		prefixes:    domain.DefaultPrefixes(),
		known:       make(map[string]Predicate),
		annotations: make(map[string]bool),
		locals:      make(map[string]string),
	}
	for p, curie := range predicateCURIEs {
		v.known[curie] = p
		v.locals[localName(curie)] = curie
	}
	for _, ap := range DefaultAnnotationProperties {
		v.annotations[ap] = true
		v.locals[localName(ap)] = ap
	}
	for _, ap := range annotationProps {
		v.annotations[v.canonical(ap)] = true
	}
	return v
}

// canonical returns the CURIE for a predicate spelled as CURIE, local name
// or full IRI. Spellings it cannot resolve are returned unchanged.
func (v vocabulary) canonical(s string) string {
	if _, ok := v.known[s]; ok {
		return s
	}
	if v.annotations[s] {
		return s
	}
	if strings.Contains(s, "://") {
		return v.prefixes.Compact(s)
	}
	if !strings.Contains(s, ":") {
		if curie, ok := v.locals[s]; ok {
			return curie
		}
	}
	return s
}

// resolve maps a predicate spelling to its Predicate and canonical CURIE
func (v vocabulary) resolve(s string) (Predicate, string) {
	curie := v.canonical(s)
	if p, ok := v.known[curie]; ok {
		return p, curie
	}
	if v.annotations[curie] {
		return PredicateAnnotation, curie
	}
	return PredicateUnknown, curie
}

func (v vocabulary) spell(curie string, style Style) string {
	switch style {
	case StyleLocal:
		if v.locals[localName(curie)] == curie {
			return localName(curie)
		}
		return curie
	case StyleIRI:
		return v.prefixes.Expand(curie)
	default:
		return curie
	}
}

func localName(curie string) string {
	if i := strings.LastIndex(curie, ":"); i >= 0 {
		return curie[i+1:]
	}
	return curie
}
