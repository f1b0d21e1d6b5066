/*
repository.go - Typed collection operations over the key-value store

PURPOSE:
  Every collection is one JSON document under one key. The repository
  loads, mutates, and rewrites whole collections; there is no partial
  update of a stored document.

CONTRACT:
  - Load fails open: a missing or corrupt document reads as an empty
    collection, never an error. Only a store I/O failure is an error.
  - Save overwrites the whole document. A failed write commits nothing;
    the caller retries the whole operation.
  - Every mutation (Append, DeleteByID, UpdateByID, Mutate) runs as one
    load-modify-save unit under a per-key mutex, so two mutations of the
    same collection can never interleave and lose an update.
  - DeleteByID and UpdateByID on an absent id are silent no-ops.

MONTHLY BUCKETS:
  Some data is bucketed per calendar month under derived keys of the form
  "orders_2024_6". MonthlyKey/AppendMonthly/LoadMonthly cover those.

SEE ALSO:
  - store.go: The KeyValueStore interface and key constants
  - archive.go: Month-label archival built on MutateMap
*/
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// =============================================================================
// REPOSITORY
// =============================================================================

// Repository mediates all reads and writes of stored collections and
// serializes mutations per key.
type Repository struct {
	store KeyValueStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRepository(store KeyValueStore) *Repository {
	return &Repository{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// Store exposes the underlying key-value store.
func (r *Repository) Store() KeyValueStore { return r.store }

// lock returns the mutex guarding one collection key.
func (r *Repository) lock(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[key]
	if !ok {
		l = &sync.Mutex{}
		r.locks[key] = l
	}
	return l
}

// Remove deletes a collection document entirely. Removing an absent key
// is a no-op.
func (r *Repository) Remove(ctx context.Context, key string) error {
	l := r.lock(key)
	l.Lock()
	defer l.Unlock()
	if err := r.store.Remove(ctx, key); err != nil {
		return &StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// =============================================================================
// LIST COLLECTIONS
// =============================================================================

// Load reads a collection. Missing and corrupt documents both read as
// empty; only a store failure is an error.
func Load[T any](ctx context.Context, r *Repository, key string) ([]T, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, &StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// Save overwrites a collection with the given list.
func Save[T any](ctx context.Context, r *Repository, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	if err := r.store.Set(ctx, key, string(raw)); err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Mutate runs one load-modify-save cycle under the collection's mutex.
// All other mutations are built on this.
func Mutate[T any](ctx context.Context, r *Repository, key string, fn func([]T) ([]T, error)) error {
	l := r.lock(key)
	l.Lock()
	defer l.Unlock()

	list, err := Load[T](ctx, r, key)
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	return Save(ctx, r, key, list)
}

// Append adds one record to the end of a collection.
func Append[T any](ctx context.Context, r *Repository, key string, rec T) error {
	return Mutate(ctx, r, key, func(list []T) ([]T, error) {
		return append(list, rec), nil
	})
}

// DeleteByID removes the record with the given id. Absent id is a no-op.
func DeleteByID[T Identifiable](ctx context.Context, r *Repository, key string, id int64) error {
	return Mutate(ctx, r, key, func(list []T) ([]T, error) {
		kept := list[:0]
		for _, rec := range list {
			if rec.RecordID() != id {
				kept = append(kept, rec)
			}
		}
		return kept, nil
	})
}

// UpdateByID replaces the record with the given id by mutator(record),
// keeping its position. Absent id is a no-op.
func UpdateByID[T Identifiable](ctx context.Context, r *Repository, key string, id int64, mutator func(T) T) error {
	return Mutate(ctx, r, key, func(list []T) ([]T, error) {
		for i, rec := range list {
			if rec.RecordID() == id {
				list[i] = mutator(rec)
			}
		}
		return list, nil
	})
}

// FindByID returns the first record with the given id.
func FindByID[T Identifiable](ctx context.Context, r *Repository, key string, id int64) (T, bool, error) {
	var zero T
	list, err := Load[T](ctx, r, key)
	if err != nil {
		return zero, false, err
	}
	for _, rec := range list {
		if rec.RecordID() == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// =============================================================================
// MAP COLLECTIONS (archive documents)
// =============================================================================

// LoadMap reads a month-label map document; missing or corrupt reads as
// an empty map.
func LoadMap[T any](ctx context.Context, r *Repository, key string) (map[string][]T, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, &StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok || raw == "" {
		return map[string][]T{}, nil
	}
	var m map[string][]T
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string][]T{}, nil
	}
	if m == nil {
		m = map[string][]T{}
	}
	return m, nil
}

// SaveMap overwrites a map document.
func SaveMap[T any](ctx context.Context, r *Repository, key string, m map[string][]T) error {
	if m == nil {
		m = map[string][]T{}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	if err := r.store.Set(ctx, key, string(raw)); err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// MutateMap runs one load-modify-save cycle on a map document under the
// key's mutex.
func MutateMap[T any](ctx context.Context, r *Repository, key string, fn func(map[string][]T) (map[string][]T, error)) error {
	l := r.lock(key)
	l.Lock()
	defer l.Unlock()

	m, err := LoadMap[T](ctx, r, key)
	if err != nil {
		return err
	}
	m, err = fn(m)
	if err != nil {
		return err
	}
	return SaveMap(ctx, r, key, m)
}

// =============================================================================
// MONTHLY BUCKETS
// =============================================================================

// MonthlyKey derives the bucket key for a base collection and a date,
// e.g. MonthlyKey("orders", June 2024) == "orders_2024_6".
func MonthlyKey(base string, t time.Time) string {
	return fmt.Sprintf("%s_%d_%d", base, t.Year(), int(t.Month()))
}

// AppendMonthly appends a record to the bucket for the given date.
func AppendMonthly[T any](ctx context.Context, r *Repository, base string, t time.Time, rec T) error {
	return Append(ctx, r, MonthlyKey(base, t), rec)
}

// LoadMonthly reads the bucket for a given year and month (1-12).
func LoadMonthly[T any](ctx context.Context, r *Repository, base string, year, month int) ([]T, error) {
	key := fmt.Sprintf("%s_%d_%d", base, year, month)
	return Load[T](ctx, r, key)
}
