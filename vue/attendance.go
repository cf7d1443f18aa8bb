package vue

import "github.com/mdzio/go-studentvue/pxp"

// Attendance is the response of method Attendance.
type Attendance struct {
	Absences []*Absence
}

// RootName implements pxp.Document.
func (*Attendance) RootName() string { return "Attendance" }

// ReadFrom implements pxp.Document.
func (a *Attendance) ReadFrom(q *pxp.Query) {
	as := q.Key("Absences").Slice("Absence")
	a.Absences = make([]*Absence, 0, len(as))
	for _, aq := range as {
		a.Absences = append(a.Absences, &Absence{
			Date:   aq.Key("AbsenceDate").String(),
			Reason: aq.Key("Reason").String(),
			Note:   aq.Key("Note").String(),
		})
	}
}

// Absence is a day with missed periods.
type Absence struct {
	// date as sent by the service, e.g. 1/23/2019
	Date   string
	Reason string
	Note   string
}
