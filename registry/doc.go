/*
Package registry holds the EDM type registry and the table key schema registry.

Type Registry:
A closed set of semantic types, each mapped to the EDM tag written into the
m:type attribute and, where the default text form is not wire conformant,
to a custom text encoder:

	tag, ok := registry.WireTag(registry.NullableDateTime) // "Edm.DateTime"
	enc, ok := registry.Encoder(registry.Binary)           // base64
	registry.IsSupported(registry.Invalid)                 // false

Nullable and non-nullable variants are distinct types sharing one tag. The
table is fixed at package initialization and is safe for concurrent use.

TypeOf and Normalize bridge Go values to the closed set:

	t, ok := registry.TypeOf(&age)          // NullableInt32
	v, isNull, err := registry.Normalize(t, &age)

Key Schema Registry:
Associates a table with the attribute names its keys are written to:

	registry.RegisterKeySchema("Customers", registry.KeySchema{
	    PartitionKey: "PK",
	    RowKey:       "SK",
	})

Key schemas should be registered during initialization.
*/
package registry
