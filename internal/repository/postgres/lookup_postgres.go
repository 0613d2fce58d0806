package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/search"
)

// LookupPostgres is a PostgreSQL implementation of
// repository.LookupRepository.
type LookupPostgres struct {
	db *sql.DB
}

// NewLookupPostgres creates a new LookupPostgres repository.
func NewLookupPostgres(db *sql.DB) *LookupPostgres {
	return &LookupPostgres{db: db}
}

var _ repository.LookupRepository = (*LookupPostgres)(nil)

const lookupColumns = `id, kind, value, label, created_at`

func scanLookup(row rowScanner) (*model.Lookup, error) {
	var l model.Lookup
	if err := row.Scan(&l.ID, &l.Kind, &l.Value, &l.Label, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LookupPostgres) Create(ctx context.Context, l *model.Lookup) (*model.Lookup, error) {
	q := `
		INSERT INTO lookups (id, kind, value, label, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + lookupColumns
	row := r.db.QueryRowContext(ctx, q, l.ID, l.Kind, l.Value, l.Label, l.CreatedAt)
	out, err := scanLookup(row)
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return out, nil
}

func (r *LookupPostgres) InsertIfAbsent(ctx context.Context, l *model.Lookup) (bool, error) {
	const q = `
		INSERT INTO lookups (id, kind, value, label, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kind, value) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, q, l.ID, l.Kind, l.Value, l.Label, l.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *LookupPostgres) Update(ctx context.Context, l *model.Lookup) error {
	const q = `UPDATE lookups SET value = $2, label = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, l.ID, l.Value, l.Label)
	if err != nil {
		return mapDuplicate(err)
	}
	return requireRow(res)
}

func (r *LookupPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM lookups WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *LookupPostgres) List(ctx context.Context, q repository.LookupQuery) (*repository.PageResult[model.Lookup], error) {
	b := search.NewBuilder()
	b.Equals("kind", q.Kind)
	if q.Search != "" {
		s := q.Search
		b.Or(func(or *search.Group) {
			or.Contains("value", s)
			or.Contains("label", s)
		})
	}
	clause, args := b.Clause()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lookups WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, err
	}

	listQ := fmt.Sprintf(
		`SELECT `+lookupColumns+` FROM lookups WHERE `+clause+` ORDER BY value LIMIT $%d OFFSET $%d`,
		b.ArgOffset(), b.ArgOffset()+1,
	)
	rows, err := r.db.QueryContext(ctx, listQ, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Lookup, 0)
	for rows.Next() {
		l, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Lookup]{Items: items, Total: total}, nil
}
