package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is a rendered XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is a minimal XML tree: either an element (Name set, optional
// attributes and children) or a text node (Name empty). Text nodes are
// escaped on render unless Raw is set, in which case the text is written
// verbatim and must already be XML-safe.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Raw      bool
	Children []*Node
}

// Element builds an element node with the given children.
func Element(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// Text builds a text node rendered with standard XML escaping.
func Text(s string) *Node {
	return &Node{Text: s}
}

// RawText builds a pre-escaped text node, written verbatim on render.
func RawText(s string) *Node {
	return &Node{Text: s, Raw: true}
}

// Append adds children to an element node.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// SetAttr sets an attribute, replacing any existing attribute of the
// same name.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

func (n *Node) encode(w io.Writer) error {
	if n.Name == "" {
		if n.Raw {
			_, err := io.WriteString(w, n.Text)
			return err
		}
		return xml.EscapeText(w, []byte(n.Text))
	}

	if _, err := io.WriteString(w, "<"+n.Name); err != nil {
		return err
	}
	for _, attr := range n.Attrs {
		if _, err := io.WriteString(w, " "+attr.Name+`="`); err != nil {
			return err
		}
		if err := xml.EscapeText(w, []byte(attr.Value)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
	}
	if len(n.Children) == 0 {
		_, err := io.WriteString(w, "/>")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.encode(w); err != nil {
			return fmt.Errorf("error encoding <%s>: %w", n.Name, err)
		}
	}
	_, err := io.WriteString(w, "</"+n.Name+">")
	return err
}

// String renders the node as a compact XML fragment.
func (n *Node) String() string {
	var b strings.Builder
	n.encode(&b) // strings.Builder writes cannot fail
	return b.String()
}
