// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import "strings"

// TEINamespace is the canonical TEI namespace URI.
const TEINamespace = "http://www.tei-c.org/ns/1.0"

// Locator finds candidate entry elements within a parsed document.
// Locators run in list order and the first non-empty result wins, so a
// document is read at the highest fidelity its markup supports.
type Locator interface {
	// Name identifies the locator in diagnostics.
	Name() string

	// Locate returns entry elements in document order.
	Locate(root *Node) []*Node
}

// NamespaceLocator matches entry elements in a specific namespace.
type NamespaceLocator struct {
	Namespace string
}

func (l NamespaceLocator) Name() string { return "namespace" }

func (l NamespaceLocator) Locate(root *Node) []*Node {
	return root.FindAll(func(n *Node) bool {
		return n.Name.Space == l.Namespace && n.Name.Local == "entry"
	})
}

// PlainTagLocator matches entry elements carrying no namespace, for
// transcriptions written without a TEI header.
type PlainTagLocator struct{}

func (l PlainTagLocator) Name() string { return "plain-tag" }

func (l PlainTagLocator) Locate(root *Node) []*Node {
	return root.FindAll(func(n *Node) bool {
		return n.Name.Space == "" && n.Name.Local == "entry"
	})
}

// BroadScanLocator matches any element whose local name ends in "entry"
// and that carries an n attribute. It tolerates producer-specific tag
// variants at the cost of precision, so it runs last.
type BroadScanLocator struct{}

func (l BroadScanLocator) Name() string { return "broad-scan" }

func (l BroadScanLocator) Locate(root *Node) []*Node {
	return root.FindAll(func(n *Node) bool {
		return strings.HasSuffix(n.Name.Local, "entry") && n.Attr("n") != ""
	})
}

// DefaultLocators returns the locator chain in priority order: exact TEI
// namespace, plain tag, broad suffix scan.
func DefaultLocators() []Locator {
	return []Locator{
		NamespaceLocator{Namespace: TEINamespace},
		PlainTagLocator{},
		BroadScanLocator{},
	}
}

// LocateEntries runs the locator chain and returns the first non-empty
// result along with the name of the locator that produced it.
func LocateEntries(root *Node, locators []Locator) ([]*Node, string) {
	for _, loc := range locators {
		if nodes := loc.Locate(root); len(nodes) > 0 {
			return nodes, loc.Name()
		}
	}
	return nil, ""
}
