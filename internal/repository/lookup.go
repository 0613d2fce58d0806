package repository

import (
	"context"

	"jobboard/internal/model"
)

// LookupQuery filters reference-data records.
type LookupQuery struct {
	Kind   string
	Search string
	Limit  int
	Offset int
}

// LookupRepository defines data access for the admin-managed reference
// tables (skills, locations, degrees, ...), all stored as {kind, value,
// label} records unique per (kind, value).
type LookupRepository interface {
	Create(ctx context.Context, l *model.Lookup) (*model.Lookup, error)
	// InsertIfAbsent inserts unless (kind, value) exists; reports whether a
	// row was written. Backs the upsert-or-skip bulk import.
	InsertIfAbsent(ctx context.Context, l *model.Lookup) (bool, error)
	Update(ctx context.Context, l *model.Lookup) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q LookupQuery) (*PageResult[model.Lookup], error)
}
