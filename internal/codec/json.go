package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"wiring/internal/domain"
)

// JSONCodec handles JSON import/export. Input may be a single array of
// thick triples, an object with a "triples" array, or JSON Lines with one
// triple per line.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports an ontology from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Ontology, error) {
	ontology := domain.NewOntology()
	decoder := json.NewDecoder(r)

	for n := 1; ; n++ {
		var raw json.RawMessage
		err := decoder.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return ontology, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON value %d: %v", domain.ErrSyntax, n, err)
		}
		if err := c.add(ontology, raw); err != nil {
			return nil, fmt.Errorf("value %d: %w", n, err)
		}
	}
}

func (c *JSONCodec) add(ontology *domain.Ontology, raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrSyntax, err)
		}
		for i, item := range items {
			t, err := domain.ParseTriple(string(item))
			if err != nil {
				return fmt.Errorf("triple %d: %w", i, err)
			}
			ontology.Add(t)
		}
		return nil
	}

	var wrapper struct {
		Triples []json.RawMessage `json:"triples"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err == nil && wrapper.Triples != nil {
		for i, item := range wrapper.Triples {
			t, err := domain.ParseTriple(string(item))
			if err != nil {
				return fmt.Errorf("triple %d: %w", i, err)
			}
			ontology.Add(t)
		}
		return nil
	}

	t, err := domain.ParseTriple(string(trimmed))
	if err != nil {
		return err
	}
	ontology.Add(t)
	return nil
}

// Export writes the ontology as an indented JSON array of thick triples
func (c *JSONCodec) Export(ontology *domain.Ontology, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	triples := ontology.Triples
	if triples == nil {
		triples = []domain.Triple{}
	}
	if err := encoder.Encode(triples); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
