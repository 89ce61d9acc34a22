/*
Package atom builds and serializes the Atom entry documents the table
protocol exchanges.

An entry is a small mutable tree of Elements whose names carry namespace
URIs; prefixes are only chosen when the tree is marshaled:

	entry := atom.NewEntry("", time.Now())
	props := entry.FirstDescendant(atom.MetadataNamespaceURI, "properties")
	props.Add(atom.NewElement(atom.DataServicesNamespaceURI, "Name").SetText("Ada"))
	body, err := atom.Marshal(entry)

Transports raise a WritingEntityEvent between building and marshaling an
entry so handlers can populate m:properties from the entity being written.
*/
package atom
