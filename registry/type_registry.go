/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

// Type is the declared semantic type of a property value.
type Type uint8

const (
	// Invalid is the zero Type; it is never supported.
	Invalid Type = iota
	Int32
	NullableInt32
	Int64
	NullableInt64
	Double
	NullableDouble
	Boolean
	NullableBoolean
	Guid
	NullableGuid
	DateTime
	NullableDateTime
	Binary
	String
	URI

	typeCount
)

// Tag is an EDM type identifier written into the m:type attribute.
type Tag string

const (
	Int32Tag    Tag = "Edm.Int32"
	Int64Tag    Tag = "Edm.Int64"
	DoubleTag   Tag = "Edm.Double"
	BooleanTag  Tag = "Edm.Boolean"
	GuidTag     Tag = "Edm.Guid"
	DateTimeTag Tag = "Edm.DateTime"
	BinaryTag   Tag = "Edm.Binary"
	StringTag   Tag = "Edm.String"
)

// TextEncoder renders a non-null value in its wire text form.
type TextEncoder func(value any) (string, error)

type entry struct {
	name    string
	tag     Tag
	encoder TextEncoder
}

// types is indexed by Type. It is filled in at package initialization and
// only read afterwards, so lookups need no locking.
var types = [typeCount]entry{
	Int32:            {name: "int32", tag: Int32Tag},
	NullableInt32:    {name: "*int32", tag: Int32Tag},
	Int64:            {name: "int64", tag: Int64Tag},
	NullableInt64:    {name: "*int64", tag: Int64Tag},
	Double:           {name: "float64", tag: DoubleTag, encoder: encodeDouble},
	NullableDouble:   {name: "*float64", tag: DoubleTag, encoder: encodeDouble},
	Boolean:          {name: "bool", tag: BooleanTag, encoder: encodeBoolean},
	NullableBoolean:  {name: "*bool", tag: BooleanTag, encoder: encodeBoolean},
	Guid:             {name: "uuid.UUID", tag: GuidTag},
	NullableGuid:     {name: "*uuid.UUID", tag: GuidTag},
	DateTime:         {name: "time.Time", tag: DateTimeTag, encoder: encodeDateTime},
	NullableDateTime: {name: "*time.Time", tag: DateTimeTag, encoder: encodeDateTime},
	Binary:           {name: "[]byte", tag: BinaryTag, encoder: encodeBinary},
	String:           {name: "string", tag: StringTag},
	URI:              {name: "*url.URL", tag: StringTag, encoder: encodeURI},
}

func lookup(t Type) (entry, bool) {
	if t == Invalid || t >= typeCount {
		return entry{}, false
	}
	return types[t], true
}

// String returns the Go shape the type stands for.
func (t Type) String() string {
	if e, ok := lookup(t); ok {
		return e.name
	}
	return "invalid"
}

// WireTag returns the EDM tag for t. Nullable and non-nullable variants share a tag.
func WireTag(t Type) (Tag, bool) {
	e, ok := lookup(t)
	if !ok || e.tag == "" {
		return "", false
	}
	return e.tag, true
}

// Encoder returns the custom text encoder for t. When none is registered
// the value's default text form is already wire conformant.
func Encoder(t Type) (TextEncoder, bool) {
	e, ok := lookup(t)
	if !ok || e.encoder == nil {
		return nil, false
	}
	return e.encoder, true
}

// IsSupported reports whether values of type t can be written at all.
func IsSupported(t Type) bool {
	if _, ok := WireTag(t); ok {
		return true
	}
	return t == String
}

// ParseType resolves a type by its Go shape name ("int32", "*time.Time") or,
// for the non-nullable variant, by its EDM tag ("Edm.Int32").
func ParseType(name string) (Type, bool) {
	for t := Int32; t < typeCount; t++ {
		if types[t].name == name {
			return t, true
		}
	}
	for t := Int32; t < typeCount; t++ {
		if string(types[t].tag) == name {
			return t, true
		}
	}
	return Invalid, false
}

// Types returns every supported type in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount-1)
	for t := Int32; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}
