package vue

import "github.com/mdzio/go-studentvue/pxp"

// SchoolInfo is the response of method StudentSchoolInfo.
type SchoolInfo struct {
	School    string
	Principal string
	Address   string
	City      string
	State     string
	Zip       uint32
	Phone     string
	URL       string
	Staff     []*Staff
}

// RootName implements pxp.Document.
func (*SchoolInfo) RootName() string { return "StudentSchoolInfoListing" }

// ReadFrom implements pxp.Document.
func (s *SchoolInfo) ReadFrom(q *pxp.Query) {
	s.School = q.Key("School").String()
	s.Principal = q.Key("Principal").String()
	s.Address = q.Key("SchoolAddress").String()
	s.City = q.Key("SchoolCity").String()
	s.State = q.Key("SchoolState").String()
	s.Zip = uint32(q.Key("SchoolZip").Uint(32))
	s.Phone = q.Key("Phone").String()
	// the service spells this one in capitals
	s.URL = q.Key("URL").String()
	ss := q.Key("StaffLists").Slice("StaffList")
	s.Staff = make([]*Staff, 0, len(ss))
	for _, sq := range ss {
		s.Staff = append(s.Staff, &Staff{
			Name:  sq.Key("Name").String(),
			EMail: sq.Key("EMail").String(),
			Title: sq.Key("Title").String(),
			Phone: sq.Key("Phone").String(),
		})
	}
}

// Staff is a staff member of a school.
type Staff struct {
	Name  string
	EMail string
	Title string
	Phone string
}
