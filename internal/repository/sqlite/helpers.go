package sqlite

import (
	"database/sql"
	"strings"

	"wiring/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Statement Row Scanner
// ============================================================================

// statementRow holds all columns from a statement query for scanning
type statementRow struct {
	Assertion  int
	Retraction int
	Graph      string
	Subject    string
	Predicate  string
	Object     string
	Datatype   string
	Annotation sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match statementColumns order exactly:
// assertion, retraction, graph, subject, predicate, object, datatype, annotation
func (r *statementRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Assertion,
		&r.Retraction,
		&r.Graph,
		&r.Subject,
		&r.Predicate,
		&r.Object,
		&r.Datatype,
		&r.Annotation,
	}
}

// toDomain converts the scanned row to a domain.Statement
func (r *statementRow) toDomain() domain.Statement {
	return domain.Statement{
		Assertion:  r.Assertion,
		Retraction: r.Retraction,
		Graph:      r.Graph,
		Subject:    r.Subject,
		Predicate:  r.Predicate,
		Object:     r.Object,
		Datatype:   r.Datatype,
		Annotation: nullToString(r.Annotation),
	}
}

// statementColumns is the SELECT column list for statement queries
const statementColumns = `assertion, retraction, graph, subject, predicate, object, datatype, annotation`

// ============================================================================
// Statement Write Helpers
// ============================================================================

// statementInsertArgs prepares arguments for statement INSERT
// Returns: assertion, retraction, graph, subject, predicate, object, datatype, annotation
func statementInsertArgs(s domain.Statement) []interface{} {
	datatype := s.Datatype
	if datatype == "" {
		datatype = domain.DatatypeIRI
	}
	return []interface{}{
		s.Assertion,
		s.Retraction,
		s.Graph,
		s.Subject,
		s.Predicate,
		s.Object,
		datatype,
		stringToNull(s.Annotation),
	}
}

// ============================================================================
// Query Helpers
// ============================================================================

// maxBatch bounds the number of bound parameters per IN clause
const maxBatch = 500

// placeholders returns "?, ?, ..." with n markers
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// batches splits ids into chunks of at most maxBatch, dropping duplicates
func batches(ids []string) [][]string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	var out [][]string
	for len(unique) > 0 {
		n := min(len(unique), maxBatch)
		out = append(out, unique[:n])
		unique = unique[n:]
	}
	return out
}

func toArgs(values ...[]string) []interface{} {
	var args []interface{}
	for _, vs := range values {
		for _, v := range vs {
			args = append(args, v)
		}
	}
	return args
}

// localSpellings maps CURIEs to the bare names thick triples may use for them
var localSpellings = map[string]string{
	domain.RDFType:   "type",
	domain.RDFSLabel: "label",
}

// spellings returns the CURIE, full IRI and local forms under which a
// predicate can be stored, without duplicates
func spellings(predicates []string) []string {
	prefixes := domain.DefaultPrefixes()
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range predicates {
		curie := prefixes.Compact(p)
		add(p)
		add(curie)
		add(prefixes.Expand(curie))
		add(localSpellings[curie])
	}
	return out
}
