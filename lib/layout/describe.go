// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Node is one entry of a decoded field tree: where a field sits in the
// encoding, how large it is, and a printable rendering of its value.
// Integers render in decimal and byte fields in lowercase hex.
type Node struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Offset   int    `json:"offset"`
	Size     int    `json:"size"`
	Value    string `json:"value,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Child returns the direct child with the given name.
func (n Node) Child(name string) (Node, bool) {
	for _, child := range n.Children {
		if child.Name == name {
			return child, true
		}
	}
	return Node{}, false
}

// Lookup follows a dotted path of child names ("body.mosaics.0.amount").
func (n Node) Lookup(path string) (Node, bool) {
	current := n
	for _, name := range strings.Split(path, ".") {
		next, ok := current.Child(name)
		if !ok {
			return Node{}, false
		}
		current = next
	}
	return current, true
}

// WriteText renders the tree with one field per line, indented by
// depth:
//
//	transfer              struct  @36  +34
//	  recipient_address   fixed   @36  +24  6800...
func (n Node) WriteText(w io.Writer) error {
	return n.writeText(w, 0)
}

func (n Node) writeText(w io.Writer, depth int) error {
	line := fmt.Sprintf("%s%-*s %-11s @%-5d +%-5d", strings.Repeat("  ", depth), 28-2*depth, n.Name, n.Kind, n.Offset, n.Size)
	if n.Value != "" {
		line += " " + n.Value
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.writeText(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// DescribeValue implements [Describer].
func (d *Descriptor) DescribeValue(value any, offset int) (Node, error) {
	record, err := toRecord(value)
	if err != nil {
		return Node{}, fmt.Errorf("%s: %w", d.name, err)
	}

	root := Node{Name: d.name, Kind: KindStruct.String(), Offset: offset}
	position := offset
	for _, field := range d.fields {
		node, err := d.describeField(field, record, position)
		if err != nil {
			return Node{}, d.fieldError(field, err)
		}
		root.Children = append(root.Children, node)
		position += node.Size
	}
	root.Size = position - offset
	return root, nil
}

func (d *Descriptor) describeField(field Field, record Record, offset int) (Node, error) {
	node := Node{Name: field.Name, Kind: field.Kind.String(), Offset: offset}
	raw := record[field.Name]

	switch field.Kind {
	case KindScalar, KindReserved:
		value, err := toUint(raw)
		if err != nil && field.Kind == KindScalar {
			return Node{}, &ValueError{Field: field.Name, Reason: err.Error()}
		}
		node.Size = field.Width
		node.Value = strconv.FormatUint(value, 10)

	case KindSize:
		value, err := d.derivedSize(field, record)
		if err != nil {
			return Node{}, err
		}
		node.Size = field.Width
		node.Value = strconv.FormatUint(value, 10)

	case KindFixed, KindBuffer:
		data, err := toBytes(raw)
		if err != nil {
			return Node{}, &ValueError{Field: field.Name, Reason: err.Error()}
		}
		node.Size = len(data)
		node.Value = hex.EncodeToString(data)

	case KindStruct:
		child, err := describeElement(field.Element, raw, offset)
		if err != nil {
			return Node{}, err
		}
		child.Name = field.Name
		return child, nil

	case KindArray, KindSizedArray:
		elements, err := toElements(raw)
		if err != nil {
			return Node{}, &ValueError{Field: field.Name, Reason: err.Error()}
		}
		position := offset
		for i, element := range elements {
			child, err := describeElement(field.Element, element, position)
			if err != nil {
				return Node{}, fmt.Errorf("element %d: %w", i, err)
			}
			child.Name = strconv.Itoa(i)
			node.Children = append(node.Children, child)
			position += child.Size + padding(child.Size, field.Align)
		}
		node.Size = position - offset
		node.Value = strconv.Itoa(len(elements))
	}
	return node, nil
}

func describeElement(codec Codec, value any, offset int) (Node, error) {
	if describer, ok := codec.(Describer); ok {
		return describer.DescribeValue(value, offset)
	}
	size, err := codec.Size(value)
	if err != nil {
		return Node{}, err
	}
	return Node{Kind: KindStruct.String(), Offset: offset, Size: size}, nil
}
