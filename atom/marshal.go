/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package atom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	smithyxml "github.com/aws/smithy-go/encoding/xml"
)

const declaration = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>`

// Marshal serializes root with an XML declaration. Every namespace in ns
// (DefaultNamespaces when empty) is declared on the root element; names in
// any other namespace are an error.
func Marshal(root *Element, ns ...Namespace) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("atom: nil root element")
	}
	if len(ns) == 0 {
		ns = DefaultNamespaces()
	}
	prefixes := make(map[string]string, len(ns))
	for _, n := range ns {
		prefixes[n.URI] = n.Prefix
	}

	start, err := startElement(root, prefixes)
	if err != nil {
		return nil, err
	}
	for _, n := range ns {
		start.Attr = append(start.Attr, smithyxml.NewNamespaceAttribute(n.Prefix, n.URI))
	}

	buf := bytes.NewBufferString(declaration)
	enc := smithyxml.NewEncoder(buf)
	v := enc.RootElement(start)
	if err := writeContent(v, root, prefixes); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

func writeContent(v smithyxml.Value, e *Element, prefixes map[string]string) error {
	if len(e.Children) == 0 {
		if e.Text != nil && *e.Text != "" {
			v.String(*e.Text)
			return nil
		}
		v.Close()
		return nil
	}

	if e.Text != nil && *e.Text != "" {
		return fmt.Errorf("atom: element %s has both text and children", e.Name.Local)
	}
	for _, c := range e.Children {
		start, err := startElement(c, prefixes)
		if err != nil {
			return err
		}
		if err := writeContent(v.MemberElement(start), c, prefixes); err != nil {
			return err
		}
	}
	v.Close()
	return nil
}

func startElement(e *Element, prefixes map[string]string) (smithyxml.StartElement, error) {
	name, err := qualify(e.Name, prefixes, false)
	if err != nil {
		return smithyxml.StartElement{}, err
	}
	start := smithyxml.StartElement{Name: name}
	for _, a := range e.Attr {
		an, err := qualify(a.Name, prefixes, true)
		if err != nil {
			return smithyxml.StartElement{}, err
		}
		start.Attr = append(start.Attr, smithyxml.Attr{Name: an, Value: escapeAttr(a.Value)})
	}
	return start, nil
}

// qualify maps a namespace URI to its declared prefix. Unqualified
// attributes stay unqualified; attributes cannot use the default namespace.
func qualify(n xml.Name, prefixes map[string]string, attr bool) (smithyxml.Name, error) {
	if n.Space == "" {
		if attr {
			return smithyxml.Name{Local: n.Local}, nil
		}
		return smithyxml.Name{}, fmt.Errorf("atom: element %s has no namespace", n.Local)
	}
	prefix, ok := prefixes[n.Space]
	if !ok {
		return smithyxml.Name{}, fmt.Errorf("atom: undeclared namespace %q for %s", n.Space, n.Local)
	}
	if prefix == "" && attr {
		return smithyxml.Name{}, fmt.Errorf("atom: attribute %s cannot use the default namespace", n.Local)
	}
	return smithyxml.Name{Space: prefix, Local: n.Local}, nil
}

func escapeAttr(s string) string {
	if !strings.ContainsAny(s, `<>&"'`+"\t\n\r") {
		return s
	}
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
