package pxp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Query helps to extract values from a response document. The first
// encountered error is stored and shared by all queries derived from the same
// root; later operations are no-ops.
//
// A field is looked up first as attribute and then as child element of the
// current element. Names are matched case-sensitively.
type Query struct {
	elem *Element
	// field path for error messages, e.g. Gradebook.Courses.Course[0].Title
	path string
	err  *error
}

// Q creates a new Query for the specified element.
func Q(e *Element) *Query {
	var err error
	var path string
	if e != nil {
		path = e.Name
	}
	return &Query{elem: e, path: path, err: &err}
}

// Err returns the first encountered error.
func (q *Query) Err() error {
	return *q.err
}

// Path returns the field path of the query.
func (q *Query) Path() string {
	return q.path
}

// Element returns the wrapped element. For attributes a synthetic leaf element
// is returned. Nil is returned for an absent optional field.
func (q *Query) Element() *Element {
	return q.elem
}

func (q *Query) fail(err error) {
	if *q.err == nil {
		*q.err = newError(DecodingFailure, q.path, err)
	}
}

func (q *Query) sub(e *Element, path string) *Query {
	return &Query{elem: e, path: path, err: q.err}
}

// field gets the specified field.
func (q *Query) field(name string, must bool) *Query {
	path := q.path + "." + name
	// previous error?
	if q.Err() != nil {
		return q.sub(nil, path)
	}
	// attributes take precedence over child elements
	if q.elem != nil {
		if v, ok := q.elem.Attr(name); ok {
			return q.sub(&Element{Name: name, Text: v}, path)
		}
		if c := q.elem.Child(name); c != nil {
			return q.sub(c, path)
		}
	}
	f := q.sub(nil, path)
	if must {
		f.fail(errors.New("Field not found"))
	}
	return f
}

// Key sets an error, if the specified field is missing.
func (q *Query) Key(name string) *Query {
	return q.field(name, true)
}

// TryKey does not set an error, if the specified field is missing.
func (q *Query) TryKey(name string) *Query {
	return q.field(name, false)
}

// Slice returns all child elements with the specified name in document order.
func (q *Query) Slice(name string) []*Query {
	// previous error or empty optional?
	if q.Err() != nil || q.elem == nil {
		return nil
	}
	var r []*Query
	for _, c := range q.elem.Children {
		if c.Name == name {
			r = append(r, q.sub(c, fmt.Sprintf("%s.%s[%d]", q.path, name, len(r))))
		}
	}
	return r
}

// IsEmpty returns true, if the field is absent or has neither text,
// attributes nor child elements.
func (q *Query) IsEmpty() bool {
	// previous error?
	if q.Err() != nil {
		return false
	}
	// empty optional?
	if q.elem == nil {
		return true
	}
	return strings.TrimSpace(q.elem.Text) == "" && len(q.elem.Attrs) == 0 && len(q.elem.Children) == 0
}

// String gets a text value. Surrounding white space is removed, like for all
// other accessors.
func (q *Query) String() string {
	// previous error or empty optional?
	if q.Err() != nil || q.elem == nil {
		return ""
	}
	return strings.TrimSpace(q.elem.Text)
}

// OptString gets a text value. Nil is returned for an absent field.
func (q *Query) OptString() *string {
	// previous error or empty optional?
	if q.Err() != nil || q.elem == nil {
		return nil
	}
	s := strings.TrimSpace(q.elem.Text)
	return &s
}

// Uint gets an unsigned integer. bitSize limits the range like in
// strconv.ParseUint.
func (q *Query) Uint(bitSize int) uint64 {
	// previous error or empty optional?
	if q.Err() != nil || q.elem == nil {
		return 0
	}
	s := strings.TrimSpace(q.elem.Text)
	u, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		q.fail(fmt.Errorf("Invalid unsigned integer: %q", q.elem.Text))
		return 0
	}
	return u
}

// Float64 gets a floating point number.
func (q *Query) Float64() float64 {
	// previous error or empty optional?
	if q.Err() != nil || q.elem == nil {
		return 0
	}
	s := strings.TrimSpace(q.elem.Text)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		q.fail(fmt.Errorf("Invalid number: %q", q.elem.Text))
		return 0
	}
	return f
}

// Bool gets a boolean.
func (q *Query) Bool() bool {
	// previous error or empty optional?
	if q.Err() != nil || q.elem == nil {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(q.elem.Text))
	if err != nil {
		q.fail(fmt.Errorf("Invalid boolean: %q", q.elem.Text))
		return false
	}
	return b
}

// Char gets exactly one character. Longer values are not truncated, they are
// an error.
func (q *Query) Char() rune {
	// previous error or empty optional?
	if q.Err() != nil || q.elem == nil {
		return 0
	}
	s := strings.TrimSpace(q.elem.Text)
	if utf8.RuneCountInString(s) != 1 {
		q.fail(fmt.Errorf("Not a single character: %q", s))
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		q.fail(fmt.Errorf("Invalid character: %q", s))
		return 0
	}
	return r
}
