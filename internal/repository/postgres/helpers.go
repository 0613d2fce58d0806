package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"jobboard/internal/repository"
)

// jsonb marshals a value for storage in a JSONB column. Nil slices become
// empty arrays so the column default shape is preserved.
func jsonb(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	if string(b) == "null" {
		return []byte("[]"), nil
	}
	return b, nil
}

// scanJSON unmarshals a JSONB column previously scanned into raw bytes.
func scanJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// mapDuplicate translates a unique-constraint violation to the repository
// sentinel so services can produce conflict responses.
func mapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

// mapMissingRef translates a foreign-key violation to sql.ErrNoRows: the
// referenced row does not exist, which is the not-found convention the rest
// of the repository layer uses.
func mapMissingRef(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return sql.ErrNoRows
	}
	return err
}
