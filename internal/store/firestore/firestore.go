// Package firestore implements the record store gateway on Cloud Firestore
// via the Firebase SDK. Collections map one-to-one onto Firestore
// collections; records are flat documents carrying their own "id" field so
// all backends return identical shapes.
package firestore

import (
	"context"
	"fmt"

	cf "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rentalops-backend/internal/store"

	"github.com/google/uuid"
)

// inChunkSize bounds the number of values per Firestore "in" query.
const inChunkSize = 10

type Store struct {
	client *cf.Client
}

// Open initializes the Firebase app and its Firestore client. An empty
// credentialsFile falls back to application default credentials.
func Open(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	conf := &firebase.Config{ProjectID: projectID}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func New(client *cf.Client) *Store {
	return &Store{client: client}
}

func record(snap *cf.DocumentSnapshot) store.Record {
	rec := store.Record(snap.Data())
	rec["id"] = snap.Ref.ID
	return rec
}

func (s *Store) GetAll(ctx context.Context, c store.Collection) ([]store.Record, error) {
	return s.query(ctx, c, s.client.Collection(string(c)).Query)
}

func (s *Store) GetByID(ctx context.Context, c store.Collection, id string) (store.Record, error) {
	snap, err := s.client.Collection(string(c)).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, &store.StoreError{Op: "get", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	if err != nil {
		return nil, &store.StoreError{Op: "get", Collection: c, ID: id, Err: err}
	}
	return record(snap), nil
}

func (s *Store) List(ctx context.Context, c store.Collection, filter store.Filter) ([]store.Record, error) {
	q := s.client.Collection(string(c)).Query
	for k, v := range filter {
		q = q.Where(k, "==", v)
	}
	return s.query(ctx, c, q)
}

func (s *Store) ListIn(ctx context.Context, c store.Collection, field string, values []string) ([]store.Record, error) {
	var out []store.Record
	for start := 0; start < len(values); start += inChunkSize {
		end := start + inChunkSize
		if end > len(values) {
			end = len(values)
		}
		chunk := make([]any, 0, end-start)
		for _, v := range values[start:end] {
			chunk = append(chunk, v)
		}

		recs, err := s.query(ctx, c, s.client.Collection(string(c)).Where(field, "in", chunk))
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

func (s *Store) query(ctx context.Context, c store.Collection, q cf.Query) ([]store.Record, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []store.Record
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &store.StoreError{Op: "list", Collection: c, Err: err}
		}
		out = append(out, record(snap))
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, c store.Collection, fields store.Fields) (store.Record, error) {
	id := uuid.NewString()
	data := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data["id"] = id

	if _, err := s.client.Collection(string(c)).Doc(id).Create(ctx, data); err != nil {
		return nil, &store.StoreError{Op: "create", Collection: c, Err: err}
	}
	return store.Record(data), nil
}

func (s *Store) Update(ctx context.Context, c store.Collection, id string, fields store.Fields) (store.Record, error) {
	ref := s.client.Collection(string(c)).Doc(id)

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	if err != nil {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: err}
	}

	if _, err := ref.Set(ctx, map[string]any(fields), cf.MergeAll); err != nil {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: err}
	}

	rec := record(snap)
	for k, v := range fields {
		rec[k] = v
	}
	return rec, nil
}

// UpdateWhere runs a Firestore transaction so the condition check and the
// write apply atomically.
func (s *Store) UpdateWhere(ctx context.Context, c store.Collection, id string, fields store.Fields, cond store.Filter) (store.Record, error) {
	ref := s.client.Collection(string(c)).Doc(id)

	var rec store.Record
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *cf.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}

		rec = record(snap)
		for k, want := range cond {
			if rec[k] != want {
				return store.ErrConditionFailed
			}
		}
		for k, v := range fields {
			rec[k] = v
		}
		return tx.Set(ref, map[string]any(fields), cf.MergeAll)
	})
	if err != nil {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: err}
	}
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	ref := s.client.Collection(string(c)).Doc(id)

	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &store.StoreError{Op: "delete", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	if err != nil {
		return &store.StoreError{Op: "delete", Collection: c, ID: id, Err: err}
	}

	if _, err := ref.Delete(ctx); err != nil {
		return &store.StoreError{Op: "delete", Collection: c, ID: id, Err: err}
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }
