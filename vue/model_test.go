package vue

import (
	"encoding/xml"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdzio/go-studentvue/pxp"
)

func uintText(u uint64) string { return strconv.FormatUint(u, 10) }

func gradebookElement(g *Gradebook) *pxp.Element {
	cs := pxp.NewElement("Courses")
	for _, c := range g.Courses {
		ms := pxp.NewElement("Marks")
		for _, m := range c.Marks {
			ms.Add(pxp.NewElement("Mark").
				SetAttr("CalculatedScoreString", m.Grade.String()).
				SetAttr("CalculatedScoreRaw", strconv.FormatFloat(m.Percent, 'g', -1, 64)))
		}
		cs.Add(pxp.NewElement("Course").
			SetAttr("Period", uintText(uint64(c.Period))).
			SetAttr("Title", c.Title).
			SetAttr("Room", uintText(uint64(c.Room))).
			SetAttr("Staff", c.Staff).
			SetAttr("StaffEMail", c.StaffEMail).
			Add(ms))
	}
	return pxp.NewElement("Gradebook").Add(cs)
}

func attendanceElement(a *Attendance) *pxp.Element {
	as := pxp.NewElement("Absences")
	for _, ab := range a.Absences {
		as.Add(pxp.NewElement("Absence").
			SetAttr("AbsenceDate", ab.Date).
			SetAttr("Reason", ab.Reason).
			SetAttr("Note", ab.Note))
	}
	return pxp.NewElement("Attendance").Add(as)
}

func studentInfoElement(s *StudentInfo) *pxp.Element {
	e := pxp.NewElement("StudentInfo").
		Add(pxp.NewElement("FormattedName").SetText(s.Name)).
		Add(pxp.NewElement("PermID").SetText(uintText(uint64(s.PermID)))).
		Add(pxp.NewElement("Gender").SetText(s.Gender)).
		Add(pxp.NewElement("Grade").SetText(uintText(uint64(s.Grade)))).
		Add(pxp.NewElement("Address").SetText(s.Address))
	if s.Nickname != nil {
		e.Add(pxp.NewElement("Nickname").SetText(*s.Nickname))
	}
	return e.
		Add(pxp.NewElement("BirthDate").SetText(s.BirthDate)).
		Add(pxp.NewElement("EMail").SetText(s.EMail)).
		Add(pxp.NewElement("Phone").SetText(s.Phone)).
		Add(pxp.NewElement("CurrentSchool").SetText(s.CurrentSchool))
}

func scheduleElement(s *ClassSchedule) *pxp.Element {
	cls := pxp.NewElement("ClassLists")
	for _, c := range s.Classes {
		cls.Add(pxp.NewElement("ClassListing").
			SetAttr("Period", uintText(uint64(c.Period))).
			SetAttr("CourseTitle", c.CourseTitle).
			SetAttr("RoomName", c.RoomName).
			SetAttr("Teacher", c.Teacher).
			SetAttr("TeacherEmail", c.TeacherEmail))
	}
	return pxp.NewElement("StudentClassSchedule").
		SetAttr("TermIndex", uintText(uint64(s.TermIndex))).
		Add(cls)
}

func schoolInfoElement(s *SchoolInfo) *pxp.Element {
	sls := pxp.NewElement("StaffLists")
	for _, st := range s.Staff {
		sls.Add(pxp.NewElement("StaffList").
			SetAttr("Name", st.Name).
			SetAttr("EMail", st.EMail).
			SetAttr("Title", st.Title).
			SetAttr("Phone", st.Phone))
	}
	return pxp.NewElement("StudentSchoolInfoListing").
		SetAttr("School", s.School).
		SetAttr("Principal", s.Principal).
		SetAttr("SchoolAddress", s.Address).
		SetAttr("SchoolCity", s.City).
		SetAttr("SchoolState", s.State).
		SetAttr("SchoolZip", uintText(uint64(s.Zip))).
		SetAttr("Phone", s.Phone).
		SetAttr("URL", s.URL).
		Add(sls)
}

func marshal(t *testing.T, e *pxp.Element) string {
	b, err := xml.Marshal(e)
	require.NoError(t, err)
	return string(b)
}

const gradebookScenario = `<Gradebook><Courses><Course Period="3" Title="Algebra" Room="204" Staff="Doe" StaffEMail="d@x.org"><Marks><Mark CalculatedScoreString="A" CalculatedScoreRaw="93.5"/></Marks></Course></Courses></Gradebook>`

func TestGradebook(t *testing.T) {
	g := &Gradebook{}
	require.NoError(t, pxp.Decode(gradebookScenario, g))
	want := &Gradebook{Courses: []*Course{{
		Period:     3,
		Title:      "Algebra",
		Room:       204,
		Staff:      "Doe",
		StaffEMail: "d@x.org",
		Marks:      []*Mark{{Grade: 'A', Percent: 93.5}},
	}}}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("unexpected gradebook (-want +got):\n%s", diff)
	}
}

func TestGradebook_Marks(t *testing.T) {
	// marks of multiple Marks containers are concatenated
	text := `<Gradebook><Courses>` +
		`<Course Period="1" Title="Art" Room="1" Staff="S" StaffEMail="s@x.org">` +
		`<Marks><Mark CalculatedScoreString="B" CalculatedScoreRaw="85"/></Marks>` +
		`<Marks><Mark CalculatedScoreString="C" CalculatedScoreRaw=" 72.25 "/><Mark CalculatedScoreString="A" CalculatedScoreRaw="100"/></Marks>` +
		`</Course>` +
		`<Course Period="2" Title="Music" Room="2" Staff="T" StaffEMail="t@x.org"/>` +
		`</Courses></Gradebook>`
	g := &Gradebook{}
	require.NoError(t, pxp.Decode(text, g))
	require.Len(t, g.Courses, 2)
	assert.Equal(t, []*Mark{{'B', 85}, {'C', 72.25}, {'A', 100}}, g.Courses[0].Marks)
	assert.NotNil(t, g.Courses[1].Marks)
	assert.Empty(t, g.Courses[1].Marks)
}

func TestGradebook_Errors(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		field string
	}{
		{
			"missing title",
			`<Gradebook><Courses><Course Period="3" Room="204" Staff="Doe" StaffEMail="d@x.org"/></Courses></Gradebook>`,
			"Gradebook.Courses.Course[0].Title",
		},
		{
			"room not numeric",
			`<Gradebook><Courses><Course Period="3" Title="Algebra" Room="CAFE" Staff="Doe" StaffEMail="d@x.org"/></Courses></Gradebook>`,
			"Gradebook.Courses.Course[0].Room",
		},
		{
			"period too large",
			`<Gradebook><Courses><Course Period="300" Title="Algebra" Room="1" Staff="Doe" StaffEMail="d@x.org"/></Courses></Gradebook>`,
			"Gradebook.Courses.Course[0].Period",
		},
		{
			"grade too long",
			`<Gradebook><Courses><Course Period="3" Title="Algebra" Room="1" Staff="Doe" StaffEMail="d@x.org"><Marks><Mark CalculatedScoreString="A+" CalculatedScoreRaw="98"/></Marks></Course></Courses></Gradebook>`,
			"Gradebook.Courses.Course[0].Marks[0].Mark[0].CalculatedScoreString",
		},
		{
			"missing courses",
			`<Gradebook/>`,
			"Gradebook.Courses",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := pxp.Decode(c.text, &Gradebook{})
			var e *pxp.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, pxp.DecodingFailure, e.Kind)
			assert.Equal(t, c.field, e.Field)
		})
	}
}

func TestStudentInfo(t *testing.T) {
	text := `<StudentInfo><FormattedName>Jane Doe</FormattedName><PermID>123456</PermID><Gender>Female</Gender>` +
		`<Grade>10</Grade><Address>1 Main St&#xA;Springfield</Address><BirthDate>1/2/2008</BirthDate>` +
		`<EMail>jane@x.org</EMail><Phone>555-0100</Phone><CurrentSchool>High School</CurrentSchool></StudentInfo>`
	s := &StudentInfo{}
	require.NoError(t, pxp.Decode(text, s))
	assert.Nil(t, s.Nickname)
	assert.Equal(t, uint32(123456), s.PermID)
	assert.Equal(t, "1 Main St\nSpringfield", s.Address)

	s = &StudentInfo{}
	require.NoError(t, pxp.Decode(`<StudentInfo FormattedName="Jane" PermID="1" Gender="F" Grade="9" Address="" BirthDate="" EMail="" Phone="" CurrentSchool=""><Nickname/></StudentInfo>`, s))
	assert.Nil(t, s.Nickname)

	err := pxp.Decode(`<StudentInfo><FormattedName>Jane</FormattedName><PermID>A1</PermID></StudentInfo>`, &StudentInfo{})
	var e *pxp.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "StudentInfo.PermID", e.Field)
}

func TestDocuments_Reencode(t *testing.T) {
	nick := "JJ"
	docs := []struct {
		name    string
		doc     pxp.Document
		empty   func() pxp.Document
		element func(pxp.Document) *pxp.Element
	}{
		{
			"gradebook",
			&Gradebook{Courses: []*Course{
				{Period: 1, Title: "Art & Design", Room: 12, Staff: "S", StaffEMail: "s@x.org", Marks: []*Mark{{'B', 88.8}}},
				{Period: 2, Title: "Music", Room: 13, Staff: "T", StaffEMail: "t@x.org", Marks: []*Mark{}},
			}},
			func() pxp.Document { return &Gradebook{} },
			func(d pxp.Document) *pxp.Element { return gradebookElement(d.(*Gradebook)) },
		},
		{
			"empty gradebook",
			&Gradebook{Courses: []*Course{}},
			func() pxp.Document { return &Gradebook{} },
			func(d pxp.Document) *pxp.Element { return gradebookElement(d.(*Gradebook)) },
		},
		{
			"attendance",
			&Attendance{Absences: []*Absence{{Date: "1/23/2019", Reason: "Illness", Note: "<none>"}}},
			func() pxp.Document { return &Attendance{} },
			func(d pxp.Document) *pxp.Element { return attendanceElement(d.(*Attendance)) },
		},
		{
			"student with nickname",
			&StudentInfo{Name: "Jane Doe", PermID: 1, Gender: "Female", Grade: 9, Nickname: &nick},
			func() pxp.Document { return &StudentInfo{} },
			func(d pxp.Document) *pxp.Element { return studentInfoElement(d.(*StudentInfo)) },
		},
		{
			"schedule",
			&ClassSchedule{TermIndex: 1, Classes: []*Class{{Period: 4, CourseTitle: "Lunch", RoomName: "CAFE"}}},
			func() pxp.Document { return &ClassSchedule{} },
			func(d pxp.Document) *pxp.Element { return scheduleElement(d.(*ClassSchedule)) },
		},
		{
			"school",
			&SchoolInfo{School: "High School", Zip: 12345, URL: "https://hs.example.org", Staff: []*Staff{{Name: "Doe"}}},
			func() pxp.Document { return &SchoolInfo{} },
			func(d pxp.Document) *pxp.Element { return schoolInfoElement(d.(*SchoolInfo)) },
		},
	}
	for _, c := range docs {
		t.Run(c.name, func(t *testing.T) {
			text := marshal(t, c.element(c.doc))
			got := c.empty()
			require.NoError(t, pxp.Decode(text, got))
			if diff := cmp.Diff(c.doc, got); diff != "" {
				t.Fatalf("decoded document differs (-want +got):\n%s", diff)
			}
			// encoding the decoded document gives the same text
			assert.Equal(t, text, marshal(t, c.element(got)))
		})
	}
}
