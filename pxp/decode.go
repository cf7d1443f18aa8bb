package pxp

import "fmt"

const faultElement = "RT_ERROR"

// Document is a typed response document.
type Document interface {
	// RootName returns the name of the root element of the document.
	RootName() string
	// ReadFrom reads the field values. Errors are collected in the Query.
	ReadFrom(q *Query)
}

// Decode parses the response text and reads it into the document. The root
// element of the document is searched at the top level and below a wrapper
// element.
func Decode(text string, d Document) error {
	root, err := Parse(text)
	if err != nil {
		return err
	}
	return DecodeElement(root, d)
}

// DecodeElement reads an already parsed response into the document.
func DecodeElement(root *Element, d Document) error {
	name := d.RootName()
	e := root
	if e.Name != name {
		e = root.Child(name)
		if e == nil {
			return newError(DecodingFailure, name, fmt.Errorf("Unexpected root element: %s", root.Name))
		}
	}
	q := Q(e)
	d.ReadFrom(q)
	return q.Err()
}

// Fault returns a *ServiceError, if the element is an error document of the
// service. Otherwise nil is returned.
func Fault(root *Element) *ServiceError {
	if root.Name != faultElement {
		return nil
	}
	msg, _ := root.Attr("ERROR_MESSAGE")
	return &ServiceError{Message: msg}
}
