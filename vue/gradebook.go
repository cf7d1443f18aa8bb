package vue

import "github.com/mdzio/go-studentvue/pxp"

// Grade is a single character grade code like 'A' or 'B'.
type Grade rune

// String implements fmt.Stringer.
func (g Grade) String() string {
	return string(rune(g))
}

// MarshalText implements encoding.TextMarshaler.
func (g Grade) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Gradebook is the response of method Gradebook.
type Gradebook struct {
	Courses []*Course
}

// RootName implements pxp.Document.
func (*Gradebook) RootName() string { return "Gradebook" }

// ReadFrom implements pxp.Document.
func (g *Gradebook) ReadFrom(q *pxp.Query) {
	cs := q.Key("Courses").Slice("Course")
	g.Courses = make([]*Course, 0, len(cs))
	for _, cq := range cs {
		c := &Course{}
		c.ReadFrom(cq)
		g.Courses = append(g.Courses, c)
	}
}

// Course is a class of the student with its grading periods.
type Course struct {
	Period     uint8
	Title      string
	Room       uint32
	Staff      string
	StaffEMail string
	// grading periods of all Marks elements in document order
	Marks []*Mark
}

// ReadFrom reads the field values from a pxp.Query.
func (c *Course) ReadFrom(q *pxp.Query) {
	c.Period = uint8(q.Key("Period").Uint(8))
	c.Title = q.Key("Title").String()
	c.Room = uint32(q.Key("Room").Uint(32))
	c.Staff = q.Key("Staff").String()
	c.StaffEMail = q.Key("StaffEMail").String()
	c.Marks = []*Mark{}
	for _, ms := range q.Slice("Marks") {
		for _, mq := range ms.Slice("Mark") {
			m := &Mark{}
			m.ReadFrom(mq)
			c.Marks = append(c.Marks, m)
		}
	}
}

// Mark is the score of a grading period.
type Mark struct {
	Grade   Grade
	Percent float64
}

// ReadFrom reads the field values from a pxp.Query.
func (m *Mark) ReadFrom(q *pxp.Query) {
	m.Grade = Grade(q.Key("CalculatedScoreString").Char())
	m.Percent = q.Key("CalculatedScoreRaw").Float64()
}
