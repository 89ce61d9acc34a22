/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablewriter

import (
	"encoding/base64"
	"math"
	"net/url"
	"strconv"
	"testing"
	"time"

	smithytesting "github.com/aws/smithy-go/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/tablestore/atom"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/registry"
	"github.com/suparena/tablestore/storagemodels"
)

const (
	metaNS = atom.MetadataNamespaceURI
	dataNS = atom.DataServicesNamespaceURI
)

// props is a Record with a fixed property list.
type props []storagemodels.Property

func (p props) Properties() []storagemodels.Property { return p }

type gadget struct{}

func encodeOne(t *testing.T, p storagemodels.Property) *atom.Element {
	t.Helper()
	container := atom.NewElement(metaNS, "properties")
	require.NoError(t, Encode(props{p}, container, DefaultNamespaces))
	require.Len(t, container.Children, 1)
	return container.Children[0]
}

func text(e *atom.Element) string {
	if e.Text == nil {
		return ""
	}
	return *e.Text
}

func attr(e *atom.Element, local string) (string, bool) {
	return e.Attribute(metaNS, local)
}

func TestEncodeValues(t *testing.T) {
	id := uuid.MustParse("c9da6455-213d-42c9-9a79-3e9149a57833")
	link, _ := url.Parse("http://example.com/a")
	plus2 := time.FixedZone("+02:00", 2*60*60)

	tests := []struct {
		name string
		prop storagemodels.Property
		text string
		tag  string
	}{
		{"int32", storagemodels.Property{Name: "Age", Type: registry.Int32, Value: int32(-7)}, "-7", "Edm.Int32"},
		{"int64", storagemodels.Property{Name: "Big", Type: registry.NullableInt64, Value: int64(math.MaxInt64)}, "9223372036854775807", "Edm.Int64"},
		{"double", storagemodels.Property{Name: "Ratio", Type: registry.Double, Value: 1.5}, "1.5", "Edm.Double"},
		{"nan", storagemodels.Property{Name: "Ratio", Type: registry.NullableDouble, Value: math.NaN()}, "NaN", "Edm.Double"},
		{"inf", storagemodels.Property{Name: "Ratio", Type: registry.Double, Value: math.Inf(1)}, "INF", "Edm.Double"},
		{"true", storagemodels.Property{Name: "Ok", Type: registry.Boolean, Value: true}, "true", "Edm.Boolean"},
		{"false", storagemodels.Property{Name: "Ok", Type: registry.NullableBoolean, Value: false}, "false", "Edm.Boolean"},
		{"guid", storagemodels.Property{Name: "Id", Type: registry.Guid, Value: id}, "c9da6455-213d-42c9-9a79-3e9149a57833", "Edm.Guid"},
		{"datetime", storagemodels.Property{Name: "At", Type: registry.DateTime, Value: time.Date(2020, 1, 1, 0, 0, 0, 0, plus2)}, "2019-12-31T22:00:00.0000000Z", "Edm.DateTime"},
		{"binary", storagemodels.Property{Name: "Blob", Type: registry.Binary, Value: []byte{0, 1, 2, 0xfe, 0xff}}, "AAEC/v8=", "Edm.Binary"},
		{"string", storagemodels.Property{Name: "Name", Type: registry.String, Value: "Ada <Lovelace>"}, "Ada <Lovelace>", "Edm.String"},
		{"uri", storagemodels.Property{Name: "Site", Type: registry.URI, Value: link}, "http://example.com/a", "Edm.String"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := encodeOne(t, tt.prop)

			assert.Equal(t, dataNS, el.Name.Space)
			assert.Equal(t, tt.prop.Name, el.Name.Local)
			assert.Equal(t, tt.text, text(el))

			tag, ok := attr(el, "type")
			require.True(t, ok)
			assert.Equal(t, tt.tag, tag)

			_, isNull := attr(el, "null")
			assert.False(t, isNull)
		})
	}
}

func TestEncodeNulls(t *testing.T) {
	for _, typ := range []registry.Type{
		registry.NullableInt32, registry.NullableInt64, registry.NullableDouble,
		registry.NullableBoolean, registry.NullableGuid, registry.NullableDateTime,
		registry.Binary, registry.String, registry.URI,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			el := encodeOne(t, storagemodels.Property{Name: "Value", Type: typ, IsNull: true})

			assert.Nil(t, el.Text)
			null, ok := attr(el, "null")
			require.True(t, ok)
			assert.Equal(t, "true", null)

			tag, _ := registry.WireTag(typ)
			got, ok := attr(el, "type")
			require.True(t, ok)
			assert.Equal(t, string(tag), got)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	e := storagemodels.NewGenericEntity("pk", "rk")
	id := uuid.New()
	require.NoError(t, e.Set("Flag", true))
	require.NoError(t, e.Set("Ratio", 1.0/3.0))
	require.NoError(t, e.Set("Id", id))
	require.NoError(t, e.Set("Small", int32(math.MinInt32)))
	require.NoError(t, e.Set("Large", int64(math.MaxInt64)))
	require.NoError(t, e.Set("Name", "line1\nline2"))
	require.NoError(t, e.Set("Blob", []byte("payload")))

	container := atom.NewElement(metaNS, "properties")
	require.NoError(t, Encode(e, container, DefaultNamespaces))

	byName := map[string]string{}
	for _, c := range container.Children {
		byName[c.Name.Local] = text(c)
	}

	b, err := strconv.ParseBool(byName["Flag"])
	require.NoError(t, err)
	assert.True(t, b)

	f, err := strconv.ParseFloat(byName["Ratio"], 64)
	require.NoError(t, err)
	assert.Equal(t, 1.0/3.0, f)

	parsed, err := uuid.Parse(byName["Id"])
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	i32, err := strconv.ParseInt(byName["Small"], 10, 32)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt32), i32)

	i64, err := strconv.ParseInt(byName["Large"], 10, 64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), i64)

	assert.Equal(t, "line1\nline2", byName["Name"])

	blob, err := base64.StdEncoding.DecodeString(byName["Blob"])
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), blob)
}

func TestEncodeUnsupportedType(t *testing.T) {
	record := props{
		{Name: "First", Type: registry.String, Value: "ok"},
		{Name: "Gadget", GoType: "tablewriter.gadget", Value: gadget{}},
		{Name: "Last", Type: registry.String, Value: "never"},
	}
	container := atom.NewElement(metaNS, "properties")

	err := Encode(record, container, DefaultNamespaces)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedType(err))

	var ute *errors.UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "Gadget", ute.Property)
	assert.Equal(t, "tablewriter.gadget", ute.Type)

	require.Len(t, container.Children, 1)
	assert.Equal(t, "First", container.Children[0].Name.Local)
}

func TestEncodeUnsupportedNull(t *testing.T) {
	e := storagemodels.NewGenericEntity("pk", "rk")
	require.NoError(t, e.Set("Nothing", nil))

	container := atom.NewElement(metaNS, "properties")
	err := Encode(e, container, DefaultNamespaces)
	assert.True(t, errors.IsUnsupportedType(err))
	assert.Len(t, container.Children, 2)
}

func TestEncodePreservesOrder(t *testing.T) {
	record := props{
		{Name: "B", Type: registry.Int32, Value: int32(2)},
		{Name: "A", Type: registry.Int32, Value: int32(1)},
		{Name: "C", Type: registry.Int32, Value: int32(3)},
	}
	container := atom.NewElement(metaNS, "properties")
	require.NoError(t, Encode(record, container, DefaultNamespaces))

	var order []string
	for _, c := range container.Children {
		order = append(order, c.Name.Local)
	}
	assert.Equal(t, []string{"B", "A", "C"}, order)
}

func TestEncodeBadValue(t *testing.T) {
	relative, _ := url.Parse("/a/b")
	record := props{{Name: "Site", Type: registry.URI, Value: relative}}

	err := Encode(record, atom.NewElement(metaNS, "properties"), DefaultNamespaces)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), `"Site"`)
}

func TestEncodeCustomNamespaces(t *testing.T) {
	ns := Namespaces{Metadata: "urn:meta", Data: "urn:data"}
	container := atom.NewElement("urn:meta", "properties")
	record := props{{Name: "Flag", Type: registry.Boolean, IsNull: true}}
	require.NoError(t, Encode(record, container, ns))

	el := container.Children[0]
	assert.Equal(t, "urn:data", el.Name.Space)
	v, ok := el.Attribute("urn:meta", "null")
	require.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestHandleWritingEntity(t *testing.T) {
	updated := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	e := storagemodels.NewGenericEntity("customers", "42", storagemodels.WithTimestamp(updated))
	require.NoError(t, e.Set("Name", "Ada"))
	require.NoError(t, e.SetNull("Rating", registry.NullableDouble))
	require.NoError(t, e.Set("Photo", []byte("hi")))

	ev := &atom.WritingEntityEvent{Data: atom.NewEntry("", updated), Entity: e}
	require.NoError(t, NewWriter().HandleWritingEntity(ev))

	out, err := atom.Marshal(ev.Data)
	require.NoError(t, err)

	expected := `<?xml version="1.0" encoding="utf-8" standalone="yes"?>` +
		`<entry xmlns="http://www.w3.org/2005/Atom" ` +
		`xmlns:d="http://schemas.microsoft.com/ado/2007/08/dataservices" ` +
		`xmlns:m="http://schemas.microsoft.com/ado/2007/08/dataservices/metadata">` +
		`<title></title><updated>2024-05-06T07:08:09.0000000Z</updated>` +
		`<author><name></name></author><id></id>` +
		`<content type="application/xml"><m:properties>` +
		`<d:PartitionKey m:type="Edm.String">customers</d:PartitionKey>` +
		`<d:RowKey m:type="Edm.String">42</d:RowKey>` +
		`<d:Timestamp m:type="Edm.DateTime">2024-05-06T07:08:09.0000000Z</d:Timestamp>` +
		`<d:Name m:type="Edm.String">Ada</d:Name>` +
		`<d:Rating m:type="Edm.Double" m:null="true"></d:Rating>` +
		`<d:Photo m:type="Edm.Binary">aGk=</d:Photo>` +
		`</m:properties></content></entry>`
	assert.Equal(t, expected, string(out))
	smithytesting.AssertXMLEqual(t, []byte(expected), out)
}

func TestHandleWritingEntityErrors(t *testing.T) {
	w := NewWriter()

	ev := &atom.WritingEntityEvent{Data: atom.NewElement(atom.AtomNamespaceURI, "entry"), Entity: props{}}
	assert.ErrorContains(t, w.HandleWritingEntity(ev), "no properties element")

	ev = &atom.WritingEntityEvent{Entity: props{}}
	assert.Error(t, w.HandleWritingEntity(ev))

	entry := atom.NewEntry("", time.Now())
	ev = &atom.WritingEntityEvent{Data: entry, Entity: "not a record"}
	require.NoError(t, w.HandleWritingEntity(ev))
	assert.Empty(t, entry.FirstDescendant(metaNS, "properties").Children)
}
