package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Statement is one row of an LDTab statement table. Subject and Object hold
// either an identifier or the JSON text of a nested object; Annotation holds
// JSON text or is empty.
type Statement struct {
	Assertion  int    `json:"assertion"`
	Retraction int    `json:"retraction"`
	Graph      string `json:"graph"`
	Subject    string `json:"subject"`
	Predicate  string `json:"predicate"`
	Object     string `json:"object"`
	Datatype   string `json:"datatype"`
	Annotation string `json:"annotation,omitempty"`
}

// Triple decodes the row into a thick triple
func (s Statement) Triple() (Triple, error) {
	subject, err := decodeCell(s.Subject, "")
	if err != nil {
		return Triple{}, fmt.Errorf("failed to decode subject: %w", err)
	}
	object, err := decodeCell(s.Object, s.Datatype)
	if err != nil {
		return Triple{}, fmt.Errorf("failed to decode object: %w", err)
	}

	t := Triple{
		Subject:   subject,
		Predicate: s.Predicate,
		Object:    object,
		Datatype:  s.Datatype,
	}
	if object.IsNested() {
		t.Datatype = DatatypeJSON
	}

	if strings.TrimSpace(s.Annotation) != "" {
		annotation := make(map[string][]Entry)
		if err := json.Unmarshal([]byte(s.Annotation), &annotation); err != nil {
			return Triple{}, fmt.Errorf("failed to decode annotation: %w", wrapMalformed(err))
		}
		t.Annotation = annotation
	}
	return t, nil
}

// FromTriple encodes a thick triple as an asserted statement row
func FromTriple(t Triple, graph string) (Statement, error) {
	subject, err := encodeCell(t.Subject)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to encode subject: %w", err)
	}
	object, err := encodeCell(t.Object)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to encode object: %w", err)
	}

	datatype := normalizeDatatype(t.Object, t.Datatype)

	stmt := Statement{
		Assertion: 1,
		Graph:     graph,
		Subject:   subject,
		Predicate: t.Predicate,
		Object:    object,
		Datatype:  datatype,
	}
	if len(t.Annotation) > 0 {
		data, err := json.Marshal(t.Annotation)
		if err != nil {
			return Statement{}, fmt.Errorf("failed to encode annotation: %w", err)
		}
		stmt.Annotation = string(data)
	}
	return stmt, nil
}

func decodeCell(cell, datatype string) (Object, error) {
	trimmed := strings.TrimSpace(cell)
	if datatype == DatatypeJSON || (datatype == "" && strings.HasPrefix(trimmed, "{")) {
		if !json.Valid([]byte(trimmed)) {
			return Object{}, fmt.Errorf("%w: cell is not valid JSON", ErrSyntax)
		}
		var obj Object
		if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
			return Object{}, wrapMalformed(err)
		}
		return obj, nil
	}
	return Object{Value: cell}, nil
}

func encodeCell(o Object) (string, error) {
	if !o.IsNested() {
		return o.Value, nil
	}
	data, err := json.Marshal(o.Fields)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// wrapMalformed keeps errors that already carry a translation kind and wraps
// plain JSON errors as ErrMalformedObject
func wrapMalformed(err error) error {
	if isKind(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMalformedObject, err)
}

func isKind(err error) bool {
	for _, kind := range []error{ErrSyntax, ErrGrammar, ErrUnknownPredicate, ErrUnsupportedAxiom, ErrMalformedObject} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
