package domain

import (
	"encoding/json"
	"slices"
	"sort"
)

// TypeMap maps an identifier to its declared type tags
type TypeMap map[string][]string

// Add records a type tag for id, keeping the tag list sorted and unique
func (m TypeMap) Add(id, tag string) {
	tags := m[id]
	if slices.Contains(tags, tag) {
		return
	}
	tags = append(tags, tag)
	sort.Strings(tags)
	m[id] = tags
}

// Has reports whether id carries tag. Tag lists need not be sorted.
func (m TypeMap) Has(id, tag string) bool {
	return slices.Contains(m[id], tag)
}

// Normalize sorts and deduplicates every tag list
func (m TypeMap) Normalize() {
	for id, tags := range m {
		tags = slices.Clone(tags)
		sort.Strings(tags)
		m[id] = slices.Compact(tags)
	}
}

// UnmarshalJSON decodes an identifier to tag-list object and normalizes it
func (m *TypeMap) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	types := TypeMap(raw)
	types.Normalize()
	*m = types
	return nil
}

// Tags returns the tags of id
func (m TypeMap) Tags(id string) []string {
	return m[id]
}

// Merge adds every tag of other into m
func (m TypeMap) Merge(other TypeMap) {
	for id, tags := range other {
		for _, tag := range tags {
			m.Add(id, tag)
		}
	}
}

// LabelMap maps an identifier to its display label
type LabelMap map[string]string

// Merge copies other into m; entries of other win
func (m LabelMap) Merge(other LabelMap) {
	for id, label := range other {
		m[id] = label
	}
}
