package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"wiring/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export. Documents have the shape
//
//	triples:
//	  - subject: ex:Dog
//	    predicate: rdfs:subClassOf
//	    object: ex:Animal
//
// where nested objects are YAML mappings with the same layout as their JSON
// form.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlOntology represents the YAML structure for an ontology. Triples stay
// generic so they can pass through the JSON decoder of domain.Triple.
type yamlOntology struct {
	Triples []map[string]any `yaml:"triples"`
}

// Parse imports an ontology from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Ontology, error) {
	var yo yamlOntology
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yo); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", domain.ErrSyntax, err)
	}

	ontology := domain.NewOntology()
	for i, raw := range yo.Triples {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: triple %d: %v", domain.ErrMalformedObject, i, err)
		}
		t, err := domain.ParseTriple(string(data))
		if err != nil {
			return nil, fmt.Errorf("triple %d: %w", i, err)
		}
		ontology.Add(t)
	}

	return ontology, nil
}

// Export exports the ontology to YAML
func (c *YAMLCodec) Export(ontology *domain.Ontology, w io.Writer) error {
	yo := yamlOntology{Triples: make([]map[string]any, 0, ontology.Len())}
	for i, t := range ontology.Triples {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to encode triple %d: %w", i, err)
		}
		var generic map[string]any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("failed to encode triple %d: %w", i, err)
		}
		yo.Triples = append(yo.Triples, generic)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(yo); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
