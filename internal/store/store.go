// Package store holds the in-memory project and task collections,
// mirrors every mutation to the durable record store, and derives
// filtered views and statistics from snapshots.
package store

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/taskflow-app/taskflow/internal/storage"
)

// Storage keys for the persisted collections
const (
	keyProjects = "projects"
	keyTasks    = "tasks"
)

var validate = validator.New()

// loadOrSeed returns the collection persisted under key. When no record
// exists yet, the seed collection is persisted immediately and returned,
// so subsequent loads are stable.
func loadOrSeed[T any](db *storage.DB, key string, seed func() []T) ([]T, error) {
	data, err := db.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		items := seed()
		if err := persist(db, key, items); err != nil {
			return nil, err
		}
		return items, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load " + key, Err: err}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &PersistenceError{Op: "decode " + key, Err: err}
	}
	return items, nil
}

// persist writes the full collection under key as a JSON array
func persist[T any](db *storage.DB, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return &PersistenceError{Op: "encode " + key, Err: err}
	}
	if err := db.Put(key, data); err != nil {
		return &PersistenceError{Op: "store " + key, Err: err}
	}
	return nil
}
