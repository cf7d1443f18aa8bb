package vue

import "github.com/mdzio/go-studentvue/pxp"

// StudentInfo is the response of method StudentInfo.
type StudentInfo struct {
	Name   string
	PermID uint32
	Gender string
	Grade  uint8
	// address lines as sent by the service
	Address string
	// nil, if the student has no nickname
	Nickname      *string
	BirthDate     string
	EMail         string
	Phone         string
	CurrentSchool string
}

// RootName implements pxp.Document.
func (*StudentInfo) RootName() string { return "StudentInfo" }

// ReadFrom implements pxp.Document.
func (s *StudentInfo) ReadFrom(q *pxp.Query) {
	s.Name = q.Key("FormattedName").String()
	s.PermID = uint32(q.Key("PermID").Uint(32))
	s.Gender = q.Key("Gender").String()
	s.Grade = uint8(q.Key("Grade").Uint(8))
	s.Address = q.Key("Address").String()
	// the service sends an empty element for no nickname
	if nq := q.TryKey("Nickname"); !nq.IsEmpty() {
		s.Nickname = nq.OptString()
	}
	s.BirthDate = q.Key("BirthDate").String()
	s.EMail = q.Key("EMail").String()
	s.Phone = q.Key("Phone").String()
	s.CurrentSchool = q.Key("CurrentSchool").String()
}
