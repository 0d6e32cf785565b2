package codec

import (
	"io"
	"sort"

	"wiring/internal/domain"
)

// Importer interface for reading ontologies from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Ontology, error)
	Format() string
}

// Exporter interface for writing ontologies to various formats
type Exporter interface {
	Export(ontology *domain.Ontology, w io.Writer) error
	Format() string
}

// Registry holds the importers and exporters known by format name
type Registry struct {
	importers map[string]Importer
	exporters map[string]Exporter
}

// NewRegistry creates a registry with every built-in codec. Prefixes are
// used to compact IRIs read from N-Triples and to expand them on export.
func NewRegistry(prefixes domain.Prefixes) *Registry {
	r := &Registry{
		importers: make(map[string]Importer),
		exporters: make(map[string]Exporter),
	}
	jsonCodec := NewJSONCodec()
	yamlCodec := NewYAMLCodec()
	ntriples := NewNTriplesCodec(prefixes)
	nquads := NewNQuadsCodec(prefixes)

	for _, c := range []interface {
		Importer
		Exporter
	}{jsonCodec, yamlCodec, ntriples, nquads} {
		r.importers[c.Format()] = c
		r.exporters[c.Format()] = c
	}
	return r
}

// Importer returns the importer for a format
func (r *Registry) Importer(format string) (Importer, bool) {
	imp, ok := r.importers[format]
	return imp, ok
}

// Exporter returns the exporter for a format
func (r *Registry) Exporter(format string) (Exporter, bool) {
	exp, ok := r.exporters[format]
	return exp, ok
}

// Formats lists the registered import formats
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.importers))
	for f := range r.importers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
