/*
Package storagemodels defines the data structures shared by the writer and
the storage backends.

GenericEntity:
A schema-less, ordered property bag. Every entity carries PartitionKey and
RowKey; other properties are added with their type inferred from the Go
value or declared explicitly:

	e := storagemodels.NewGenericEntity("customers", "42",
	    storagemodels.WithTimestamp(time.Now()))
	e.Set("Name", "Ada")
	e.Set("Age", int32(36))
	e.Set("Photo", []byte{0xff, 0xd8})
	e.SetNull("Rating", registry.NullableDouble)

Property:
Each property exposes its name, declared registry.Type, canonical value and
null flag:

	for _, p := range e.Properties() {
	    fmt.Println(p.Name, p.Type, p.Value, p.IsNull)
	}

Properties keep first-insertion order; setting an existing name replaces its
value in place.
*/
package storagemodels
