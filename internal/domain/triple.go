package domain

import (
	"encoding/json"
	"fmt"
)

// Triple is a thick triple. Subject and Object may be nested expressions;
// Datatype qualifies a string Object the same way Entry.Datatype does.
type Triple struct {
	Subject    Object             `json:"subject"`
	Predicate  string             `json:"predicate"`
	Object     Object             `json:"object"`
	Datatype   string             `json:"datatype,omitempty"`
	Annotation map[string][]Entry `json:"annotation,omitempty"`
}

// NewTriple creates a triple between two identifiers
func NewTriple(subject, predicate, object string) Triple {
	return Triple{
		Subject:   IRI(subject),
		Predicate: predicate,
		Object:    IRI(object),
	}
}

// ObjectEntry returns the object position as an Entry
func (t Triple) ObjectEntry() Entry {
	return Entry{Object: t.Object, Datatype: t.Datatype}
}

// Equal compares two triples structurally
func (t Triple) Equal(other Triple) bool {
	return t.Predicate == other.Predicate &&
		t.Subject.Equal(other.Subject) &&
		t.ObjectEntry().Equal(other.ObjectEntry()) &&
		entriesMapEqual(t.Annotation, other.Annotation)
}

// ParseTriple decodes a thick triple from JSON text
func ParseTriple(text string) (Triple, error) {
	var t Triple
	if !json.Valid([]byte(text)) {
		return t, fmt.Errorf("%w: thick triple is not valid JSON", ErrSyntax)
	}
	if err := json.Unmarshal([]byte(text), &t); err != nil {
		return t, fmt.Errorf("%w: %v", ErrMalformedObject, err)
	}
	if t.Predicate == "" {
		return t, fmt.Errorf("%w: triple without predicate", ErrMalformedObject)
	}
	if !t.Subject.IsNested() && t.Subject.Value == "" {
		return t, fmt.Errorf("%w: triple without subject", ErrMalformedObject)
	}
	if !t.Object.IsNested() && t.Object.Value == "" && t.Datatype == "" {
		return t, fmt.Errorf("%w: triple without object", ErrMalformedObject)
	}
	return t, nil
}

// String returns the JSON encoding of the triple
func (t Triple) String() string {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Sprintf("<invalid triple: %v>", err)
	}
	return string(data)
}
