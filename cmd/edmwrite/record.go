/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-openapi/strfmt"
	"gopkg.in/yaml.v3"

	"github.com/suparena/tablestore/atom"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/registry"
	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tablewriter"
)

// recordFile is the YAML description of one entity.
type recordFile struct {
	PartitionKey string           `yaml:"partitionKey"`
	RowKey       string           `yaml:"rowKey"`
	Timestamp    *time.Time       `yaml:"timestamp,omitempty"`
	Properties   []recordProperty `yaml:"properties"`
}

type recordProperty struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type"`
	Value yaml.Node `yaml:"value"`
	Null  bool      `yaml:"null"`
}

func (p recordProperty) isNull() bool {
	return p.Null || p.Value.Kind == 0 || p.Value.Tag == "!!null"
}

// loadRecord decodes a record file into an entity. Each property's type is
// a Go type name or an EDM type name; values are decoded to match it.
func loadRecord(r io.Reader) (*storagemodels.GenericEntity, error) {
	var rf recordFile
	if err := yaml.NewDecoder(r).Decode(&rf); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	var opts []storagemodels.EntityOption
	if rf.Timestamp != nil {
		opts = append(opts, storagemodels.WithTimestamp(*rf.Timestamp))
	}
	entity := storagemodels.NewGenericEntity(rf.PartitionKey, rf.RowKey, opts...)

	for _, p := range rf.Properties {
		t, ok := registry.ParseType(p.Type)
		if !ok {
			return nil, errors.NewUnsupportedTypeError(p.Name, p.Type)
		}
		if p.isNull() {
			if err := entity.SetNull(p.Name, t); err != nil {
				return nil, err
			}
			continue
		}
		v, err := decodeValue(t, &p.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		if err := entity.SetTyped(p.Name, t, v); err != nil {
			return nil, err
		}
	}
	return entity, nil
}

func decodeValue(t registry.Type, node *yaml.Node) (any, error) {
	switch t {
	case registry.Int32, registry.NullableInt32:
		var v int32
		err := node.Decode(&v)
		return v, err
	case registry.Int64, registry.NullableInt64:
		var v int64
		err := node.Decode(&v)
		return v, err
	case registry.Double, registry.NullableDouble:
		var v float64
		err := node.Decode(&v)
		return v, err
	case registry.Boolean, registry.NullableBoolean:
		var v bool
		err := node.Decode(&v)
		return v, err
	case registry.DateTime, registry.NullableDateTime:
		var v time.Time
		err := node.Decode(&v)
		return v, err
	case registry.Binary:
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		var b strfmt.Base64
		if err := b.UnmarshalText([]byte(s)); err != nil {
			return nil, errors.NewValidationError("value", "binary values must be base64")
		}
		return b, nil
	}
	// Guid, String and URI are given as text.
	var s string
	err := node.Decode(&s)
	return s, err
}

// render writes entity as a standalone Atom entry.
func render(entity *storagemodels.GenericEntity, updated time.Time, writer *tablewriter.Writer) ([]byte, error) {
	ev := &atom.WritingEntityEvent{Data: atom.NewEntry("", updated), Entity: entity}
	if err := writer.HandleWritingEntity(ev); err != nil {
		return nil, err
	}
	return atom.Marshal(ev.Data)
}
