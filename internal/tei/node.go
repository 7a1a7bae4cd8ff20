// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element or text segment of a parsed document. Transcription
// markup is open-ended (TEI producers disagree on tag sets), so the tree
// is generic: elements keep their expanded names and attributes, text
// segments keep their character data, and children preserve document
// order across both kinds.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*Node
}

// UnmarshalXML builds the subtree rooted at start, recursively.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Name = start.Name
	n.Attrs = append(n.Attrs, start.Attr...)

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Node{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			n.Children = append(n.Children, &Node{Text: string(t)})
		case xml.EndElement:
			return nil
		}
	}
}

// Parse reads a whole document into a Node tree. Malformed markup is a
// document-level error; callers fall back to free-text extraction.
func Parse(r io.Reader) (*Node, error) {
	var root Node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &root, nil
}

// IsText reports whether the node is a text segment.
func (n *Node) IsText() bool {
	return n.Name.Local == ""
}

// Attr returns the value of the first attribute with the given local
// name, ignoring namespace prefixes, or "" when absent. Matching by
// local name makes plain id and xml:id interchangeable.
func (n *Node) Attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// FlattenText concatenates every text segment in the subtree in document
// order, the raw material for entry notes.
func (n *Node) FlattenText() string {
	var b strings.Builder
	n.flattenInto(&b)
	return b.String()
}

func (n *Node) flattenInto(b *strings.Builder) {
	if n.IsText() {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.flattenInto(b)
	}
}

// FindAll returns the element nodes in the subtree, in document order,
// for which match returns true. The subtree root itself is included.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var found []*Node
	n.walk(func(el *Node) {
		if match(el) {
			found = append(found, el)
		}
	})
	return found
}

func (n *Node) walk(visit func(*Node)) {
	if n.IsText() {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.walk(visit)
	}
}
