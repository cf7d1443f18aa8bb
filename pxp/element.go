package pxp

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Attr is an attribute of an Element.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of a parsed response document. Namespaces are dropped,
// only local names are kept.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	// character data directly inside this element
	Text string
}

// NewElement creates an element with the specified name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// SetAttr appends an attribute and returns the element.
func (e *Element) SetAttr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{name, value})
	return e
}

// SetText sets the character data and returns the element.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// Add appends child elements and returns the element.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Attr looks up an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child element with the specified name or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// MarshalXML implements xml.Marshaler.
func (e *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	err := enc.EncodeToken(start)
	if err != nil {
		return err
	}
	if e.Text != "" {
		err = enc.EncodeToken(xml.CharData(e.Text))
		if err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		err = enc.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: c.Name}})
		if err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Parse parses an XML document into an element tree.
func Parse(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.CharsetReader = charsetReader
	// the service emits HTML entities like &nbsp; in free text fields
	dec.Entity = xml.HTMLEntity
	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newError(DecodingFailure, "", fmt.Errorf("Invalid XML: %w", err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &Element{Name: t.Name.Local}
			for _, a := range t.Attr {
				// skip namespace declarations
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				e.Attrs = append(e.Attrs, Attr{a.Name.Local, a.Value})
			}
			if len(stack) > 0 {
				p := stack[len(stack)-1]
				p.Children = append(p.Children, e)
			} else if root == nil {
				root = e
			} else {
				return nil, newError(DecodingFailure, "", fmt.Errorf("Invalid XML: multiple root elements: %s, %s", root.Name, e.Name))
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, newError(DecodingFailure, "", errors.New("Invalid XML: no root element"))
	}
	return root, nil
}

// The documents of the service sometimes declare utf-16, although the text is
// already decoded at this point.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(label, "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}
