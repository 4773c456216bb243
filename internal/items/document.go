// Package items reads, checks and rescales the game's item definition files.
//
// An item file is an XML tree of nested <Prop Name="..." Value="..."/>
// records. The item's identity is the value of the first "Name" property and
// its stack capacity is the "StackSize" property, wherever they appear in the
// tree.
package items

import (
	"fmt"

	"github.com/beevik/etree"
)

const (
	propTag   = "Prop"
	nameAttr  = "Name"
	valueAttr = "Value"

	// IdentityProp names the property carrying the item identity.
	IdentityProp = "Name"
	// StackSizeProp names the property carrying the stack capacity.
	StackSizeProp = "StackSize"
)

// Document is a parsed item file.
type Document struct {
	doc *etree.Document
}

// Parse parses sanitized item text.
func Parse(clean string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(clean); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	switch n := len(doc.ChildElements()); {
	case n == 0:
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	case n > 1:
		return nil, fmt.Errorf("%w: %d top-level elements", ErrMalformedDocument, n)
	}
	return &Document{doc: doc}, nil
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	b, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return b, nil
}

// FindProperty returns the value of the first property named name, searching
// every descendant of the root in document order.
func (d *Document) FindProperty(name string) (string, bool) {
	prop := d.property(name)
	if prop == nil {
		return "", false
	}
	return propValue(prop), true
}

func (d *Document) property(name string) *etree.Element {
	return findFirst(d.doc.Root(), isProperty(name))
}

func (d *Document) properties(name string) []*etree.Element {
	return findAll(d.doc.Root(), isProperty(name))
}

func isProperty(name string) func(*etree.Element) bool {
	return func(e *etree.Element) bool {
		if e.Space != "" || e.Tag != propTag {
			return false
		}
		attr := plainAttr(e, nameAttr)
		return attr != nil && attr.Value == name
	}
}

// plainAttr returns the unprefixed attribute key of e. etree's SelectAttr
// would also match "x:key".
func plainAttr(e *etree.Element, key string) *etree.Attr {
	for i := range e.Attr {
		if e.Attr[i].Space == "" && e.Attr[i].Key == key {
			return &e.Attr[i]
		}
	}
	return nil
}

func propValue(e *etree.Element) string {
	if attr := plainAttr(e, valueAttr); attr != nil {
		return attr.Value
	}
	return ""
}

func setPropValue(e *etree.Element, value string) {
	if attr := plainAttr(e, valueAttr); attr != nil {
		attr.Value = value
		return
	}
	e.CreateAttr(valueAttr, value)
}

// findFirst walks the descendants of root depth-first in document order and
// returns the first element matching pred. root itself is not tested.
func findFirst(root *etree.Element, pred func(*etree.Element) bool) *etree.Element {
	for _, child := range root.ChildElements() {
		if pred(child) {
			return child
		}
		if found := findFirst(child, pred); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant of root matching pred, in the same order
// findFirst visits them.
func findAll(root *etree.Element, pred func(*etree.Element) bool) []*etree.Element {
	var out []*etree.Element
	for _, child := range root.ChildElements() {
		if pred(child) {
			out = append(out, child)
		}
		out = append(out, findAll(child, pred)...)
	}
	return out
}
