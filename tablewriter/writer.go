/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablewriter

import (
	"fmt"
	"log/slog"

	"github.com/suparena/tablestore/atom"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/registry"
	"github.com/suparena/tablestore/storagemodels"
)

// Record is an entity whose properties can be written.
type Record interface {
	// Properties returns the properties in a stable order.
	Properties() []storagemodels.Property
}

// Namespaces are the URIs property elements and their attributes are written in.
type Namespaces struct {
	// Metadata qualifies the type and null attributes.
	Metadata string
	// Data qualifies the property elements.
	Data string
}

// DefaultNamespaces are the data services namespaces of the table protocol.
var DefaultNamespaces = Namespaces{
	Metadata: atom.MetadataNamespaceURI,
	Data:     atom.DataServicesNamespaceURI,
}

// Encode appends one element per property of rec to properties, in order.
//
// A property whose declared type is unsupported stops the encode with an
// UnsupportedTypeError, null or not. Elements appended before the failure
// remain in properties, so the container must not be reused.
func Encode(rec Record, properties *atom.Element, ns Namespaces) error {
	for _, p := range rec.Properties() {
		el, err := encodeProperty(p, ns)
		if err != nil {
			return err
		}
		properties.Add(el)
	}
	return nil
}

func encodeProperty(p storagemodels.Property, ns Namespaces) (*atom.Element, error) {
	if !registry.IsSupported(p.Type) {
		return nil, errors.NewUnsupportedTypeError(p.Name, p.TypeName())
	}

	el := atom.NewElement(ns.Data, p.Name)
	if !p.IsNull {
		text, err := encodeValue(p)
		if err != nil {
			return nil, fmt.Errorf("encode property %q: %w", p.Name, err)
		}
		el.SetText(text)
	}
	if tag, ok := registry.WireTag(p.Type); ok {
		el.SetAttr(ns.Metadata, "type", string(tag))
	}
	if p.IsNull {
		el.SetAttr(ns.Metadata, "null", "true")
	}
	return el, nil
}

func encodeValue(p storagemodels.Property) (string, error) {
	if enc, ok := registry.Encoder(p.Type); ok {
		return enc(p.Value)
	}
	return fmt.Sprint(p.Value), nil
}

// Writer populates Atom entries from records as a transport writes them.
type Writer struct {
	ns     Namespaces
	logger *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithNamespaces overrides the namespaces properties are written in.
func WithNamespaces(ns Namespaces) Option {
	return func(w *Writer) {
		w.ns = ns
	}
}

// WithLogger sets the logger used for per-entity debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer using the default namespaces.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		ns:     DefaultNamespaces,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Namespaces returns the namespaces the writer encodes into.
func (w *Writer) Namespaces() Namespaces {
	return w.ns
}

// HandleWritingEntity fills the first m:properties element of the event's
// document from its entity. Entities that are not Records are left alone.
func (w *Writer) HandleWritingEntity(ev *atom.WritingEntityEvent) error {
	rec, ok := ev.Entity.(Record)
	if !ok {
		w.logger.Debug("skipping entity without properties", "type", fmt.Sprintf("%T", ev.Entity))
		return nil
	}
	if ev.Data == nil {
		return fmt.Errorf("tablewriter: writing entity event has no document")
	}

	properties := ev.Data.FirstDescendant(w.ns.Metadata, "properties")
	if properties == nil {
		return fmt.Errorf("tablewriter: no properties element in namespace %q", w.ns.Metadata)
	}

	if err := Encode(rec, properties, w.ns); err != nil {
		return err
	}
	w.logger.Debug("encoded entity properties", "count", len(properties.Children))
	return nil
}
