package domain

// Ontology is an ordered collection of thick triples used for import, export
// and the extraction passes
type Ontology struct {
	Triples []Triple `json:"triples" yaml:"triples"`
}

// NewOntology creates an empty ontology
func NewOntology() *Ontology {
	return &Ontology{
		Triples: make([]Triple, 0),
	}
}

// Add appends a triple
func (o *Ontology) Add(t Triple) {
	o.Triples = append(o.Triples, t)
}

// Len returns the number of triples
func (o *Ontology) Len() int {
	return len(o.Triples)
}
