/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/registry"
	"github.com/suparena/tablestore/tablewriter"
)

const sampleRecord = `
partitionKey: retail
rowKey: c-001
properties:
  - name: Age
    type: Edm.Int32
    value: 36
  - name: Balance
    type: float64
    value: 12.5
  - name: Active
    type: bool
    value: true
  - name: Id
    type: Edm.Guid
    value: c9da6455-213d-42c9-9a79-3e9149a57833
  - name: Joined
    type: time.Time
    value: 2020-01-01T00:00:00Z
  - name: Avatar
    type: Edm.Binary
    value: AQID
  - name: Site
    type: "*url.URL"
    value: HTTP://Example.com
  - name: Coach
    type: Edm.String
    null: true
  - name: Rank
    type: "*int64"
`

func TestLoadRecord(t *testing.T) {
	entity, err := loadRecord(strings.NewReader(sampleRecord))
	require.NoError(t, err)

	assert.Equal(t, "retail", entity.PartitionKey())
	assert.Equal(t, "c-001", entity.RowKey())

	tests := []struct {
		name  string
		typ   registry.Type
		value any
	}{
		{"Age", registry.Int32, int32(36)},
		{"Balance", registry.Double, 12.5},
		{"Active", registry.Boolean, true},
		{"Id", registry.Guid, uuid.MustParse("c9da6455-213d-42c9-9a79-3e9149a57833")},
		{"Joined", registry.DateTime, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"Avatar", registry.Binary, []byte{1, 2, 3}},
	}
	for _, tt := range tests {
		p, ok := entity.Get(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.typ, p.Type, tt.name)
		assert.Equal(t, tt.value, p.Value, tt.name)
		assert.False(t, p.IsNull, tt.name)
	}

	coach, ok := entity.Get("Coach")
	require.True(t, ok)
	assert.True(t, coach.IsNull)

	rank, ok := entity.Get("Rank")
	require.True(t, ok)
	assert.True(t, rank.IsNull)
	assert.Equal(t, registry.NullableInt64, rank.Type)
}

func TestLoadRecordErrors(t *testing.T) {
	_, err := loadRecord(strings.NewReader("partitionKey: pk\nrowKey: rk\nproperties:\n  - name: Tags\n    type: \"[]string\"\n    value: a\n"))
	assert.True(t, errors.IsUnsupportedType(err))

	_, err = loadRecord(strings.NewReader("partitionKey: pk\nrowKey: rk\nproperties:\n  - name: Age\n    type: Edm.Int32\n    value: old\n"))
	assert.Error(t, err)

	_, err = loadRecord(strings.NewReader("partitionKey: pk\nrowKey: rk\nproperties:\n  - name: Avatar\n    type: Edm.Binary\n    value: \"***\"\n"))
	assert.True(t, errors.IsValidationError(err))
}

func TestRender(t *testing.T) {
	entity, err := loadRecord(strings.NewReader(sampleRecord))
	require.NoError(t, err)

	out, err := render(entity, time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC), tablewriter.NewWriter())
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="utf-8" standalone="yes"?>`))
	assert.Contains(t, doc, `<d:Age m:type="Edm.Int32">36</d:Age>`)
	assert.Contains(t, doc, `<d:Balance m:type="Edm.Double">12.5</d:Balance>`)
	assert.Contains(t, doc, `<d:Active m:type="Edm.Boolean">true</d:Active>`)
	assert.Contains(t, doc, `<d:Joined m:type="Edm.DateTime">2020-01-01T00:00:00.0000000Z</d:Joined>`)
	assert.Contains(t, doc, `<d:Avatar m:type="Edm.Binary">AQID</d:Avatar>`)
	assert.Contains(t, doc, `<d:Site m:type="Edm.String">http://example.com/</d:Site>`)
	assert.Contains(t, doc, `<d:Coach m:type="Edm.String" m:null="true"></d:Coach>`)
	assert.Contains(t, doc, `<d:Rank m:type="Edm.Int64" m:null="true"></d:Rank>`)
}
