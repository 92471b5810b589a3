// Package memory implements the record store gateway on in-process maps.
// It backs development setups without a hosted database and most of the
// service and workflow tests.
package memory

import (
	"context"
	"sync"

	"rentalops-backend/internal/store"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.RWMutex
	collections map[store.Collection]map[string]store.Record
}

func New() *Store {
	return &Store{
		collections: make(map[store.Collection]map[string]store.Record),
	}
}

func (s *Store) coll(c store.Collection) map[string]store.Record {
	if s.collections[c] == nil {
		s.collections[c] = make(map[string]store.Record)
	}
	return s.collections[c]
}

func clone(r store.Record) store.Record {
	out := make(store.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func matches(r store.Record, filter store.Filter) bool {
	for k, want := range filter {
		if r[k] != want {
			return false
		}
	}
	return true
}

func (s *Store) GetAll(ctx context.Context, c store.Collection) ([]store.Record, error) {
	return s.List(ctx, c, nil)
}

func (s *Store) GetByID(ctx context.Context, c store.Collection, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.coll(c)[id]
	if !ok {
		return nil, &store.StoreError{Op: "get", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	return clone(r), nil
}

func (s *Store) List(ctx context.Context, c store.Collection, filter store.Filter) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Record
	for _, r := range s.coll(c) {
		if matches(r, filter) {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (s *Store) ListIn(ctx context.Context, c store.Collection, field string, values []string) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}

	var out []store.Record
	for _, r := range s.coll(c) {
		if v, ok := r[field].(string); ok && want[v] {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, c store.Collection, fields store.Fields) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := make(store.Record, len(fields)+1)
	for k, v := range fields {
		r[k] = v
	}
	r["id"] = uuid.NewString()
	s.coll(c)[r.ID()] = r
	return clone(r), nil
}

func (s *Store) Update(ctx context.Context, c store.Collection, id string, fields store.Fields) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.coll(c)[id]
	if !ok {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	for k, v := range fields {
		r[k] = v
	}
	return clone(r), nil
}

func (s *Store) UpdateWhere(ctx context.Context, c store.Collection, id string, fields store.Fields, cond store.Filter) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.coll(c)[id]
	if !ok {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	if !matches(r, cond) {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: store.ErrConditionFailed}
	}
	for k, v := range fields {
		r[k] = v
	}
	return clone(r), nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.coll(c)[id]; !ok {
		return &store.StoreError{Op: "delete", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	delete(s.coll(c), id)
	return nil
}

func (s *Store) Close() error { return nil }
