package vue

import "github.com/mdzio/go-studentvue/pxp"

// ClassSchedule is the response of method StudentClassList.
type ClassSchedule struct {
	TermIndex uint8
	Classes   []*Class
}

// RootName implements pxp.Document.
func (*ClassSchedule) RootName() string { return "StudentClassSchedule" }

// ReadFrom implements pxp.Document.
func (s *ClassSchedule) ReadFrom(q *pxp.Query) {
	s.TermIndex = uint8(q.Key("TermIndex").Uint(8))
	cs := q.Key("ClassLists").Slice("ClassListing")
	s.Classes = make([]*Class, 0, len(cs))
	for _, cq := range cs {
		s.Classes = append(s.Classes, &Class{
			Period:       uint8(cq.Key("Period").Uint(8)),
			CourseTitle:  cq.Key("CourseTitle").String(),
			RoomName:     cq.Key("RoomName").String(),
			Teacher:      cq.Key("Teacher").String(),
			TeacherEmail: cq.Key("TeacherEmail").String(),
		})
	}
}

// Class is an entry of the class schedule.
type Class struct {
	Period      uint8
	CourseTitle string
	// not always numeric (e.g. CAFE)
	RoomName     string
	Teacher      string
	TeacherEmail string
}
