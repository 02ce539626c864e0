// Package plist reads the XML property lists Xcode stores next to each
// template (TemplateInfo.plist). Only the top-level dictionary is indexed;
// nested values keep their kind but not their contents.
package plist

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

var (
	// ErrBinaryPlist is returned for bplist00 documents, which are not XML
	ErrBinaryPlist = errors.New("binary property lists are not supported")

	// ErrNotPlist is returned when the document has no <plist><dict> root
	ErrNotPlist = errors.New("document is not a property list dictionary")
)

var binaryMagic = []byte("bplist00")

// Kind is the element name of a plist value
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindReal    Kind = "real"
	KindTrue    Kind = "true"
	KindFalse   Kind = "false"
	KindDate    Kind = "date"
	KindData    Kind = "data"
	KindArray   Kind = "array"
	KindDict    Kind = "dict"
)

// Value is one entry of the top-level dictionary
type Value struct {
	Kind Kind
	Text string
}

// Document is a parsed property list. A repeated key keeps its last value.
type Document struct {
	values map[string]Value
}

// Parse reads an XML property list
func Parse(data []byte) (*Document, error) {
	if bytes.HasPrefix(data, binaryMagic) {
		return nil, ErrBinaryPlist
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse plist: %w", err)
	}

	root := doc.SelectElement("plist")
	if root == nil {
		return nil, ErrNotPlist
	}
	dict := root.SelectElement("dict")
	if dict == nil {
		return nil, ErrNotPlist
	}

	d := &Document{values: make(map[string]Value)}
	children := dict.ChildElements()
	for i := 0; i < len(children); i++ {
		if children[i].Tag != "key" {
			return nil, fmt.Errorf("expected <key> at position %d, found <%s>", i, children[i].Tag)
		}
		if i+1 >= len(children) {
			return nil, fmt.Errorf("key %q has no value", children[i].Text())
		}
		key := children[i].Text()
		val := children[i+1]
		i++

		d.values[key] = Value{
			Kind: Kind(val.Tag),
			Text: strings.TrimSpace(val.Text()),
		}
	}

	return d, nil
}

// Value returns the value stored under key
func (d *Document) Value(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}
