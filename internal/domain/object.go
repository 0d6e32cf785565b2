package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Object is the value held in the subject or object position of a thick triple.
// Exactly one of Value and Fields is meaningful: Fields != nil marks a nested
// expression, otherwise Value holds an identifier or a literal lexical form.
type Object struct {
	Value  string
	Fields map[string][]Entry
}

// Entry is one element in the value list of a nested predicate
type Entry struct {
	Object   Object `json:"object"`
	Datatype string `json:"datatype,omitempty"`
	Meta     string `json:"meta,omitempty"`
}

// IRI creates an identifier object
func IRI(id string) Object {
	return Object{Value: id}
}

// Nested creates a nested object from predicate entries
func Nested(fields map[string][]Entry) Object {
	if fields == nil {
		fields = make(map[string][]Entry)
	}
	return Object{Fields: fields}
}

// IRIEntry creates an entry holding an identifier
func IRIEntry(id string) Entry {
	return Entry{Object: IRI(id)}
}

// LiteralEntry creates an entry holding a literal of the given datatype.
// Language tagged strings use "@lang" as datatype.
func LiteralEntry(lexical, datatype string) Entry {
	return Entry{Object: Object{Value: lexical}, Datatype: datatype}
}

// NestedEntry creates an entry holding a nested object
func NestedEntry(fields map[string][]Entry) Entry {
	return Entry{Object: Nested(fields)}
}

// IsNested returns true if the object is a nested expression
func (o Object) IsNested() bool {
	return o.Fields != nil
}

// Get returns the entries of a nested predicate
func (o Object) Get(predicate string) []Entry {
	if o.Fields == nil {
		return nil
	}
	return o.Fields[predicate]
}

// First returns the first entry of a nested predicate
func (o Object) First(predicate string) (Entry, bool) {
	entries := o.Get(predicate)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Keys returns the nested predicates in sorted order
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal compares two objects structurally, normalizing implicit datatypes
func (o Object) Equal(other Object) bool {
	if o.IsNested() != other.IsNested() {
		return false
	}
	if !o.IsNested() {
		return o.Value == other.Value
	}
	return entriesMapEqual(o.Fields, other.Fields)
}

// MarshalJSON encodes a string value as a JSON string and a nested object as
// a JSON object of entry lists
func (o Object) MarshalJSON() ([]byte, error) {
	if o.IsNested() {
		return json.Marshal(o.Fields)
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Object) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty object", ErrMalformedObject)
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedObject, err)
		}
		*o = Object{Value: s}
		return nil
	case '{':
		fields := make(map[string][]Entry)
		if err := json.Unmarshal(data, &fields); err != nil {
			return wrapMalformed(err)
		}
		*o = Object{Fields: fields}
		return nil
	default:
		return fmt.Errorf("%w: expected string or JSON object, got %s", ErrMalformedObject, abbreviate(string(data)))
	}
}

// IsIRI returns true if the entry holds an identifier
func (e Entry) IsIRI() bool {
	return !e.Object.IsNested() && (e.Datatype == "" || e.Datatype == DatatypeIRI)
}

// IsLiteral returns true if the entry holds a literal
func (e Entry) IsLiteral() bool {
	return !e.Object.IsNested() && e.Datatype != "" && e.Datatype != DatatypeIRI && e.Datatype != DatatypeJSON
}

// Lang returns the language tag of a language tagged literal
func (e Entry) Lang() string {
	if strings.HasPrefix(e.Datatype, "@") {
		return e.Datatype[1:]
	}
	return ""
}

// Equal compares two entries, treating "" as the implicit datatype. Meta is
// not part of the value and is ignored.
func (e Entry) Equal(other Entry) bool {
	return normalizeDatatype(e.Object, e.Datatype) == normalizeDatatype(other.Object, other.Datatype) &&
		e.Object.Equal(other.Object)
}

// UnmarshalJSON implements json.Unmarshaler
func (e *Entry) UnmarshalJSON(data []byte) error {
	var aux struct {
		Object   json.RawMessage `json:"object"`
		Datatype string          `json:"datatype"`
		Meta     string          `json:"meta"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedObject, err)
	}
	if len(aux.Object) == 0 {
		return fmt.Errorf("%w: entry without object: %s", ErrMalformedObject, abbreviate(string(data)))
	}
	var obj Object
	if err := obj.UnmarshalJSON(aux.Object); err != nil {
		return err
	}
	*e = Entry{Object: obj, Datatype: aux.Datatype, Meta: aux.Meta}
	return nil
}

func normalizeDatatype(o Object, datatype string) string {
	if datatype != "" {
		return datatype
	}
	if o.IsNested() {
		return DatatypeJSON
	}
	return DatatypeIRI
}

func entriesEqual(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func entriesMapEqual(a, b map[string][]Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !entriesEqual(va, vb) {
			return false
		}
	}
	return true
}

func abbreviate(s string) string {
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
