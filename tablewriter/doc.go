/*
Package tablewriter encodes entity properties into the m:properties element
of an Atom entry.

Each property becomes one element in the data namespace. Its text is the
wire encoding of the value, empty when the value is null. Properties whose
type has an EDM tag carry m:type, and null values carry m:null="true":

	<d:Age m:type="Edm.Int32">36</d:Age>
	<d:Rating m:type="Edm.Double" m:null="true"></d:Rating>

Encode works on any container; Writer adapts it to a transport's
writing-entity event:

	w := tablewriter.NewWriter(tablewriter.WithLogger(logger))
	ev := &atom.WritingEntityEvent{Data: atom.NewEntry("", time.Now()), Entity: entity}
	if err := w.HandleWritingEntity(ev); err != nil {
	    return err // errors.IsUnsupportedType(err) for unrepresentable values
	}

A Writer holds no mutable state and may be shared between goroutines.
*/
package tablewriter
