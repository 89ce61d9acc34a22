/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a mock implementation of the DataStore interface for testing
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/suparena/tablestore/atom"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tablewriter"
)

// DataStore is an in-memory datastore.DataStore[*storagemodels.GenericEntity].
// Every write is rendered to an Atom entry first, so entities the wire
// format cannot carry are rejected as they would be by a real table.
type DataStore struct {
	mu          sync.RWMutex
	data        map[string]*storagemodels.GenericEntity
	payloads    map[string][]byte
	writer      *tablewriter.Writer
	now         func() time.Time
	insertError error
	updateError error
	deleteError error
}

// New creates a new mock DataStore
func New() *DataStore {
	return &DataStore{
		data:     make(map[string]*storagemodels.GenericEntity),
		payloads: make(map[string][]byte),
		writer:   tablewriter.NewWriter(),
		now:      time.Now,
	}
}

// WithWriter sets the writer used to render entries
func (m *DataStore) WithWriter(w *tablewriter.Writer) *DataStore {
	m.writer = w
	return m
}

// WithClock sets the clock used for the entry's updated element
func (m *DataStore) WithClock(now func() time.Time) *DataStore {
	m.now = now
	return m
}

// WithInsertError makes Insert operations return an error
func (m *DataStore) WithInsertError(err error) *DataStore {
	m.insertError = err
	return m
}

// WithUpdateError makes Update and Merge operations return an error
func (m *DataStore) WithUpdateError(err error) *DataStore {
	m.updateError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// Insert stores a new entity
func (m *DataStore) Insert(ctx context.Context, entity *storagemodels.GenericEntity) error {
	if m.insertError != nil {
		return m.insertError
	}

	payload, err := m.render(entity)
	if err != nil {
		return err
	}
	key := Key(entity.PartitionKey(), entity.RowKey())

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; exists {
		return errors.NewAlreadyExistsError("entity", key)
	}
	m.data[key] = entity
	m.payloads[key] = payload
	return nil
}

// Update replaces an existing entity
func (m *DataStore) Update(ctx context.Context, entity *storagemodels.GenericEntity) error {
	return m.replace(entity, false)
}

// Merge adds the entity's properties to an existing entity
func (m *DataStore) Merge(ctx context.Context, entity *storagemodels.GenericEntity) error {
	return m.replace(entity, true)
}

func (m *DataStore) replace(entity *storagemodels.GenericEntity, merge bool) error {
	if m.updateError != nil {
		return m.updateError
	}

	payload, err := m.render(entity)
	if err != nil {
		return err
	}
	key := Key(entity.PartitionKey(), entity.RowKey())

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.data[key]
	if !exists {
		return errors.NewNotFoundError("entity", key)
	}

	if merge {
		merged := storagemodels.NewGenericEntity(entity.PartitionKey(), entity.RowKey())
		for _, set := range [][]storagemodels.Property{existing.Properties(), entity.Properties()} {
			for _, p := range set {
				if p.IsNull {
					err = merged.SetNull(p.Name, p.Type)
				} else {
					err = merged.SetTyped(p.Name, p.Type, p.Value)
				}
				if err != nil {
					return err
				}
			}
		}
		entity = merged
		if payload, err = m.render(merged); err != nil {
			return err
		}
	}

	m.data[key] = entity
	m.payloads[key] = payload
	return nil
}

// Delete removes an entity by key
func (m *DataStore) Delete(ctx context.Context, partitionKey, rowKey string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	key := Key(partitionKey, rowKey)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return errors.NewNotFoundError("entity", key)
	}

	delete(m.data, key)
	delete(m.payloads, key)
	return nil
}

func (m *DataStore) render(entity *storagemodels.GenericEntity) ([]byte, error) {
	if entity == nil {
		return nil, errors.NewValidationError("entity", "must not be nil")
	}
	if entity.PartitionKey() == "" && entity.RowKey() == "" {
		return nil, errors.NewValidationError("key", "entity has no PartitionKey or RowKey")
	}

	ev := &atom.WritingEntityEvent{Data: atom.NewEntry("", m.now()), Entity: entity}
	if err := m.writer.HandleWritingEntity(ev); err != nil {
		return nil, fmt.Errorf("render entity: %w", err)
	}
	return atom.Marshal(ev.Data)
}

// Helper methods for testing

// Key returns the map key an entity is stored under
func Key(partitionKey, rowKey string) string {
	return fmt.Sprintf("%s|%s", partitionKey, rowKey)
}

// Get returns the stored entity for the given keys
func (m *DataStore) Get(partitionKey, rowKey string) (*storagemodels.GenericEntity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[Key(partitionKey, rowKey)]
	return e, ok
}

// Payload returns the Atom entry of the entity as stored under the given keys
func (m *DataStore) Payload(partitionKey, rowKey string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payloads[Key(partitionKey, rowKey)]
	return p, ok
}

// Count returns the number of stored entities
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]*storagemodels.GenericEntity)
	m.payloads = make(map[string][]byte)
}
