/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/tablestore/datastore"
	"github.com/suparena/tablestore/errors"
)

// TypedStorage holds the datastores for entities of type T, keyed by table name.
type TypedStorage[T any] struct {
	mu     sync.RWMutex
	stores map[string]datastore.DataStore[T]
}

// NewTypedStorage creates a new TypedStorage for type T
func NewTypedStorage[T any]() *TypedStorage[T] {
	return &TypedStorage[T]{
		stores: make(map[string]datastore.DataStore[T]),
	}
}

// Register adds the datastore for a table
func (ts *TypedStorage[T]) Register(table string, ds datastore.DataStore[T]) error {
	if ds == nil {
		return errors.NewValidationError("datastore", "must not be nil")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[table]; exists {
		return fmt.Errorf("datastore for table %q: %w", table, errors.NewAlreadyExistsError("datastore", table))
	}
	ts.stores[table] = ds
	return nil
}

// Get retrieves the datastore for a table
func (ts *TypedStorage[T]) Get(table string) (datastore.DataStore[T], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	ds, exists := ts.stores[table]
	if !exists {
		return nil, errors.NewNotFoundError("datastore", table)
	}
	return ds, nil
}

// Remove deletes the datastore for a table
func (ts *TypedStorage[T]) Remove(table string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[table]; !exists {
		return errors.NewNotFoundError("datastore", table)
	}
	delete(ts.stores, table)
	return nil
}

// List returns the registered table names in sorted order
func (ts *TypedStorage[T]) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	tables := make([]string, 0, len(ts.stores))
	for k := range ts.stores {
		tables = append(tables, k)
	}
	sort.Strings(tables)
	return tables
}
