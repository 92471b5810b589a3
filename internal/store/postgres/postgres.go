// Package postgres implements the record store gateway on PostgreSQL. Each
// collection maps to a table of the same name; records are read and written
// as flat column maps so the gateway stays schema-agnostic.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"rentalops-backend/internal/store"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects and verifies the connection.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(db), nil
}

var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ident guards interpolated identifiers; field and collection names come from
// internal constants but the check keeps a bad caller from reaching the SQL.
func ident(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	return name, nil
}

// sortedKeys fixes the column order so generated SQL is deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) GetAll(ctx context.Context, c store.Collection) ([]store.Record, error) {
	return s.List(ctx, c, nil)
}

func (s *Store) GetByID(ctx context.Context, c store.Collection, id string) (store.Record, error) {
	table, err := ident(string(c))
	if err != nil {
		return nil, &store.StoreError{Op: "get", Collection: c, ID: id, Err: err}
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return nil, &store.StoreError{Op: "get", Collection: c, ID: id, Err: err}
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, &store.StoreError{Op: "get", Collection: c, ID: id, Err: err}
	}
	if len(recs) == 0 {
		return nil, &store.StoreError{Op: "get", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	return recs[0], nil
}

func (s *Store) List(ctx context.Context, c store.Collection, filter store.Filter) ([]store.Record, error) {
	table, err := ident(string(c))
	if err != nil {
		return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
	}

	query := fmt.Sprintf(`SELECT * FROM %s`, table)
	var args []any
	if len(filter) > 0 {
		var conds []string
		for _, k := range sortedKeys(filter) {
			col, err := ident(k)
			if err != nil {
				return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
			}
			args = append(args, filter[k])
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		}
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
	}
	return recs, nil
}

func (s *Store) ListIn(ctx context.Context, c store.Collection, field string, values []string) ([]store.Record, error) {
	if len(values) == 0 {
		return nil, nil
	}
	table, err := ident(string(c))
	if err != nil {
		return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
	}
	col, err := ident(field)
	if err != nil {
		return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
	}

	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = ANY($1)`, table, col)
	rows, err := s.db.QueryContext(ctx, query, pq.Array(values))
	if err != nil {
		return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
	}
	return recs, nil
}

func (s *Store) Create(ctx context.Context, c store.Collection, fields store.Fields) (store.Record, error) {
	table, err := ident(string(c))
	if err != nil {
		return nil, &store.StoreError{Op: "create", Collection: c, Err: err}
	}

	cols := []string{"id"}
	args := []any{uuid.NewString()}
	for _, k := range sortedKeys(fields) {
		col, err := ident(k)
		if err != nil {
			return nil, &store.StoreError{Op: "create", Collection: c, Err: err}
		}
		cols = append(cols, col)
		args = append(args, fields[k])
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING *`,
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &store.StoreError{Op: "create", Collection: c, Err: err}
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, &store.StoreError{Op: "create", Collection: c, Err: err}
	}
	if len(recs) == 0 {
		return nil, &store.StoreError{Op: "create", Collection: c, Err: errors.New("insert returned no row")}
	}
	return recs[0], nil
}

func (s *Store) Update(ctx context.Context, c store.Collection, id string, fields store.Fields) (store.Record, error) {
	return s.update(ctx, c, id, fields, nil)
}

func (s *Store) UpdateWhere(ctx context.Context, c store.Collection, id string, fields store.Fields, cond store.Filter) (store.Record, error) {
	return s.update(ctx, c, id, fields, cond)
}

func (s *Store) update(ctx context.Context, c store.Collection, id string, fields store.Fields, cond store.Filter) (store.Record, error) {
	table, err := ident(string(c))
	if err != nil {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: err}
	}

	var sets []string
	var args []any
	for _, k := range sortedKeys(fields) {
		col, err := ident(k)
		if err != nil {
			return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: err}
		}
		args = append(args, fields[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(sets) == 0 {
		return s.GetByID(ctx, c, id)
	}

	args = append(args, id)
	conds := []string{fmt.Sprintf("id = $%d", len(args))}
	for _, k := range sortedKeys(cond) {
		col, err := ident(k)
		if err != nil {
			return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: err}
		}
		args = append(args, cond[k])
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s RETURNING *`,
		table, strings.Join(sets, ", "), strings.Join(conds, " AND "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: err}
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: err}
	}
	if len(recs) == 0 {
		// Distinguish "no such record" from "condition did not hold".
		if len(cond) > 0 {
			if _, getErr := s.GetByID(ctx, c, id); getErr == nil {
				return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: store.ErrConditionFailed}
			}
		}
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	return recs[0], nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	table, err := ident(string(c))
	if err != nil {
		return &store.StoreError{Op: "delete", Collection: c, ID: id, Err: err}
	}

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return &store.StoreError{Op: "delete", Collection: c, ID: id, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &store.StoreError{Op: "delete", Collection: c, ID: id, Err: err}
	}
	if n == 0 {
		return &store.StoreError{Op: "delete", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// scanRecords reads every row into a field map. Text columns arrive as
// []byte from lib/pq and are normalized to string so callers see one type.
func scanRecords(rows *sql.Rows) ([]store.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []store.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(store.Record, len(cols))
		for i, col := range cols {
			switch v := vals[i].(type) {
			case []byte:
				rec[col] = string(v)
			default:
				rec[col] = v
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
