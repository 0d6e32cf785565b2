package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"wiring/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.StatementStore using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository. The special path ":memory:" opens a
// private in-memory database.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS statement (
		assertion INTEGER NOT NULL,
		retraction INTEGER NOT NULL DEFAULT 0,
		graph TEXT NOT NULL,
		subject TEXT NOT NULL,
		predicate TEXT NOT NULL,
		object TEXT NOT NULL,
		datatype TEXT NOT NULL,
		annotation TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_statement_subject ON statement(subject);
	CREATE INDEX IF NOT EXISTS idx_statement_predicate ON statement(predicate);
	`

	_, err := r.db.Exec(schema)
	return err
}

// InsertStatements appends statement rows in a single transaction
func (r *Repository) InsertStatements(ctx context.Context, stmts []domain.Statement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertStatements(ctx, tx, stmts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ReplaceGraph deletes every row of graph and inserts stmts in its place
// within one transaction
func (r *Repository) ReplaceGraph(ctx context.Context, graph string, stmts []domain.Statement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM statement WHERE graph = ?", graph); err != nil {
		return fmt.Errorf("failed to clear graph %s: %w", graph, err)
	}
	if err := insertStatements(ctx, tx, stmts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertStatements(ctx context.Context, tx *sql.Tx, stmts []domain.Statement) error {
	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO statement (`+statementColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement insert: %w", err)
	}
	defer insert.Close()

	for i, s := range stmts {
		if s.Subject == "" || s.Predicate == "" {
			return fmt.Errorf("failed to insert statement %d: %w: missing subject or predicate", i, domain.ErrMalformedObject)
		}
		if _, err := insert.ExecContext(ctx, statementInsertArgs(s)...); err != nil {
			return fmt.Errorf("failed to insert statement %d: %w", i, err)
		}
	}
	return nil
}

// Statements returns every asserted statement in insertion order
func (r *Repository) Statements(ctx context.Context) ([]domain.Statement, error) {
	return r.queryStatements(ctx, `
		SELECT `+statementColumns+`
		FROM statement
		WHERE retraction = 0
		ORDER BY rowid
	`)
}

// StatementsBySubject returns the asserted statements of one subject
func (r *Repository) StatementsBySubject(ctx context.Context, subject string) ([]domain.Statement, error) {
	return r.queryStatements(ctx, `
		SELECT `+statementColumns+`
		FROM statement
		WHERE retraction = 0 AND subject = ?
		ORDER BY rowid
	`, subject)
}

func (r *Repository) queryStatements(ctx context.Context, query string, args ...interface{}) ([]domain.Statement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var stmts []domain.Statement
	for rows.Next() {
		var row statementRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		stmts = append(stmts, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statements: %w", err)
	}

	return stmts, nil
}

// TypesOf returns the declaration types of the given identifiers. Only
// rdf:type statements whose object is a declaration tag count; predicates
// and tags may be spelled as CURIEs, full IRIs or local names.
func (r *Repository) TypesOf(ctx context.Context, ids []string) (domain.TypeMap, error) {
	types := make(domain.TypeMap)
	prefixes := domain.DefaultPrefixes()
	typePredicates := spellings([]string{domain.RDFType})

	for _, batch := range batches(ids) {
		query := `
			SELECT subject, object
			FROM statement
			WHERE retraction = 0
				AND predicate IN (` + placeholders(len(typePredicates)) + `)
				AND subject IN (` + placeholders(len(batch)) + `)
			ORDER BY rowid
		`
		args := toArgs(typePredicates, batch)

		err := r.scanPairs(ctx, query, args, func(subject, object string) {
			if tag := prefixes.Compact(object); domain.IsDeclarationTag(tag) {
				types.Add(subject, tag)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query types: %w", err)
		}
	}

	return types, nil
}

// LabelsOf returns one label per identifier using the given annotation
// predicates (rdfs:label when none are given) in any of their spellings.
// Later rows win.
func (r *Repository) LabelsOf(ctx context.Context, ids []string, predicates []string) (domain.LabelMap, error) {
	if len(predicates) == 0 {
		predicates = []string{domain.RDFSLabel}
	}
	predicates = spellings(predicates)
	labels := make(domain.LabelMap)

	for _, batch := range batches(ids) {
		query := `
			SELECT subject, object
			FROM statement
			WHERE retraction = 0
				AND predicate IN (` + placeholders(len(predicates)) + `)
				AND subject IN (` + placeholders(len(batch)) + `)
				AND datatype NOT IN ('` + domain.DatatypeIRI + `', '` + domain.DatatypeJSON + `')
			ORDER BY rowid
		`
		args := toArgs(predicates, batch)

		err := r.scanPairs(ctx, query, args, func(subject, object string) {
			labels[subject] = strings.TrimSpace(object)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query labels: %w", err)
		}
	}

	return labels, nil
}

func (r *Repository) scanPairs(ctx context.Context, query string, args []interface{}, fn func(a, b string)) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return err
		}
		fn(a, b)
	}
	return rows.Err()
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
