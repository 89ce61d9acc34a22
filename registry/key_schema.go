/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"
)

// KeySchema names the attributes a backend writes an entity's keys into.
type KeySchema struct {
	PartitionKey string `yaml:"partitionKey"`
	RowKey       string `yaml:"rowKey"`
}

// DefaultKeySchema matches the Atom table protocol's system properties.
var DefaultKeySchema = KeySchema{PartitionKey: "PartitionKey", RowKey: "RowKey"}

var (
	keySchemas = make(map[string]KeySchema)
	mu         sync.RWMutex
)

// RegisterKeySchema associates a table with the attribute names of its keys.
// A name left empty falls back to DefaultKeySchema.
func RegisterKeySchema(table string, schema KeySchema) {
	if schema.PartitionKey == "" {
		schema.PartitionKey = DefaultKeySchema.PartitionKey
	}
	if schema.RowKey == "" {
		schema.RowKey = DefaultKeySchema.RowKey
	}
	mu.Lock()
	defer mu.Unlock()
	keySchemas[table] = schema
}

// GetKeySchema retrieves the key schema for table, if any.
func GetKeySchema(table string) (KeySchema, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := keySchemas[table]
	return s, ok
}

// KeySchemaFor returns the registered schema for table or DefaultKeySchema.
func KeySchemaFor(table string) KeySchema {
	if s, ok := GetKeySchema(table); ok {
		return s
	}
	return DefaultKeySchema
}
