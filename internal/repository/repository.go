package repository

import (
	"context"

	"wiring/internal/domain"
)

// StatementStore defines the interface for LDTab statement data access.
// Retracted statements are never returned.
type StatementStore interface {
	// Write operations
	InsertStatements(ctx context.Context, stmts []domain.Statement) error
	ReplaceGraph(ctx context.Context, graph string, stmts []domain.Statement) error

	// Read operations
	Statements(ctx context.Context) ([]domain.Statement, error)
	StatementsBySubject(ctx context.Context, subject string) ([]domain.Statement, error)

	// Lookups feeding the typing and labeling passes
	TypesOf(ctx context.Context, ids []string) (domain.TypeMap, error)
	LabelsOf(ctx context.Context, ids []string, predicates []string) (domain.LabelMap, error)

	// Close releases resources
	Close() error
}
