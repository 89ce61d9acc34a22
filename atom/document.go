/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package atom

import (
	"encoding/xml"
	"time"

	"github.com/suparena/tablestore/registry"
)

// Namespace binds a namespace URI to the prefix it is written with.
type Namespace struct {
	Prefix string
	URI    string
}

const (
	AtomNamespaceURI         = "http://www.w3.org/2005/Atom"
	DataServicesNamespaceURI = "http://schemas.microsoft.com/ado/2007/08/dataservices"
	MetadataNamespaceURI     = "http://schemas.microsoft.com/ado/2007/08/dataservices/metadata"
)

var (
	AtomNamespace         = Namespace{Prefix: "", URI: AtomNamespaceURI}
	DataServicesNamespace = Namespace{Prefix: "d", URI: DataServicesNamespaceURI}
	MetadataNamespace     = Namespace{Prefix: "m", URI: MetadataNamespaceURI}
)

// DefaultNamespaces are declared on the root of every marshaled entry.
func DefaultNamespaces() []Namespace {
	return []Namespace{AtomNamespace, DataServicesNamespace, MetadataNamespace}
}

// Element is a mutable XML element. Name.Space and Attr[i].Name.Space hold
// namespace URIs, not prefixes. A nil Text is absent content.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Text     *string
	Children []*Element
}

// NewElement creates an element named local in namespace space.
func NewElement(space, local string) *Element {
	return &Element{Name: xml.Name{Space: space, Local: local}}
}

// SetText sets the element's text content.
func (e *Element) SetText(text string) *Element {
	e.Text = &text
	return e
}

// SetAttr adds or replaces the attribute space:local.
func (e *Element) SetAttr(space, local, value string) *Element {
	for i := range e.Attr {
		if e.Attr[i].Name.Space == space && e.Attr[i].Name.Local == local {
			e.Attr[i].Value = value
			return e
		}
	}
	e.Attr = append(e.Attr, xml.Attr{Name: xml.Name{Space: space, Local: local}, Value: value})
	return e
}

// Attribute returns the value of the attribute space:local.
func (e *Element) Attribute(space, local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Add appends children and returns e.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Child returns the first direct child named space:local.
func (e *Element) Child(space, local string) *Element {
	for _, c := range e.Children {
		if c.Name.Space == space && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// Descendants returns every element below e named space:local in document order.
func (e *Element) Descendants(space, local string) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.Children {
			if c.Name.Space == space && c.Name.Local == local {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// FirstDescendant returns the first element below e named space:local.
func (e *Element) FirstDescendant(space, local string) *Element {
	for _, c := range e.Children {
		if c.Name.Space == space && c.Name.Local == local {
			return c
		}
		if d := c.FirstDescendant(space, local); d != nil {
			return d
		}
	}
	return nil
}

// NewEntry builds an Atom entry with an empty m:properties container.
// id is the entity's edit URL, empty for inserts.
func NewEntry(id string, updated time.Time) *Element {
	entry := NewElement(AtomNamespaceURI, "entry")
	entry.Add(
		NewElement(AtomNamespaceURI, "title"),
		NewElement(AtomNamespaceURI, "updated").SetText(updated.UTC().Format(registry.DateTimeLayout)),
		NewElement(AtomNamespaceURI, "author").Add(NewElement(AtomNamespaceURI, "name")),
		NewElement(AtomNamespaceURI, "id").SetText(id),
		NewElement(AtomNamespaceURI, "content").
			SetAttr("", "type", "application/xml").
			Add(NewElement(MetadataNamespaceURI, "properties")),
	)
	return entry
}

// WritingEntityEvent is raised after an entry is built and before it is
// serialized. Handlers fill in Data from Entity.
type WritingEntityEvent struct {
	Data   *Element
	Entity any
}

// WritingEntityHandler handles a WritingEntityEvent.
type WritingEntityHandler func(ev *WritingEntityEvent) error
