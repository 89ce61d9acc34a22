/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"fmt"
	"time"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/registry"
)

// Names of the system properties every table entity carries.
const (
	PartitionKeyProperty = "PartitionKey"
	RowKeyProperty       = "RowKey"
	TimestampProperty    = "Timestamp"
)

// Property is one named, typed value of an entity.
type Property struct {
	Name string
	// Type is the declared type; Invalid when the value has no EDM representation.
	Type registry.Type
	// GoType names the value's Go type when Type is Invalid.
	GoType string
	// Value is the canonical value produced by registry.Normalize, nil when IsNull.
	Value  any
	IsNull bool
}

// TypeName names the declared type for error reporting.
func (p Property) TypeName() string {
	if p.Type == registry.Invalid && p.GoType != "" {
		return p.GoType
	}
	return p.Type.String()
}

// GenericEntity is a schema-less property bag. Properties keep the order in
// which they were first set.
type GenericEntity struct {
	props []Property
	index map[string]int
}

// EntityOption configures a new GenericEntity.
type EntityOption func(*GenericEntity)

// WithTimestamp adds a Timestamp property holding ts.
func WithTimestamp(ts time.Time) EntityOption {
	return func(e *GenericEntity) {
		e.put(Property{Name: TimestampProperty, Type: registry.DateTime, Value: ts})
	}
}

// NewGenericEntity creates an entity with its PartitionKey and RowKey set.
func NewGenericEntity(partitionKey, rowKey string, opts ...EntityOption) *GenericEntity {
	e := &GenericEntity{index: make(map[string]int)}
	e.put(Property{Name: PartitionKeyProperty, Type: registry.String, Value: partitionKey})
	e.put(Property{Name: RowKeyProperty, Type: registry.String, Value: rowKey})
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Set stores value under name with its type inferred from the Go value.
// A value with no EDM representation is kept with an Invalid type so the
// writer can reject it; Set itself only fails on an empty name.
func (e *GenericEntity) Set(name string, value any) error {
	if name == "" {
		return errors.NewValidationError("name", "property name must not be empty")
	}
	t, ok := registry.TypeOf(value)
	if !ok {
		e.put(Property{Name: name, GoType: fmt.Sprintf("%T", value), Value: value, IsNull: value == nil})
		return nil
	}
	return e.SetTyped(name, t, value)
}

// SetTyped stores value under name with an explicit declared type.
func (e *GenericEntity) SetTyped(name string, t registry.Type, value any) error {
	if name == "" {
		return errors.NewValidationError("name", "property name must not be empty")
	}
	v, isNull, err := registry.Normalize(t, value)
	if err != nil {
		if errors.IsUnsupportedType(err) {
			return errors.NewUnsupportedTypeError(name, t.String())
		}
		return fmt.Errorf("property %q: %w", name, err)
	}
	e.put(Property{Name: name, Type: t, Value: v, IsNull: isNull})
	return nil
}

// SetNull stores a null value declared as t under name.
func (e *GenericEntity) SetNull(name string, t registry.Type) error {
	return e.SetTyped(name, t, nil)
}

// Get returns the property stored under name.
func (e *GenericEntity) Get(name string) (Property, bool) {
	i, ok := e.index[name]
	if !ok {
		return Property{}, false
	}
	return e.props[i], true
}

// Delete removes the property stored under name.
func (e *GenericEntity) Delete(name string) {
	i, ok := e.index[name]
	if !ok {
		return
	}
	e.props = append(e.props[:i], e.props[i+1:]...)
	delete(e.index, name)
	for j := i; j < len(e.props); j++ {
		e.index[e.props[j].Name] = j
	}
}

// Properties returns a copy of the properties in order.
func (e *GenericEntity) Properties() []Property {
	out := make([]Property, len(e.props))
	copy(out, e.props)
	return out
}

// Len returns the number of properties.
func (e *GenericEntity) Len() int {
	return len(e.props)
}

// PartitionKey returns the entity's partition key.
func (e *GenericEntity) PartitionKey() string {
	return e.stringValue(PartitionKeyProperty)
}

// RowKey returns the entity's row key.
func (e *GenericEntity) RowKey() string {
	return e.stringValue(RowKeyProperty)
}

func (e *GenericEntity) stringValue(name string) string {
	p, ok := e.Get(name)
	if !ok || p.IsNull {
		return ""
	}
	s, _ := p.Value.(string)
	return s
}

func (e *GenericEntity) put(p Property) {
	if e.index == nil {
		e.index = make(map[string]int)
	}
	if i, ok := e.index[p.Name]; ok {
		e.props[i] = p
		return
	}
	e.index[p.Name] = len(e.props)
	e.props = append(e.props, p)
}
