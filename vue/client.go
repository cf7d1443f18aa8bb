package vue

import (
	"context"
	"fmt"

	"github.com/mdzio/go-logging"

	"github.com/mdzio/go-studentvue/pxp"
)

var clnLog = logging.Get("vue-client")

// Client provides typed access to the StudentVUE services of a district.
type Client struct {
	Name string
	pxp.Caller
}

// NewClient creates a Client for the specified district URL (e.g.
// https://studentvue.example.org) and credentials.
func NewClient(districtURL, userID, password string) *Client {
	return &Client{
		Name:   districtURL,
		Caller: &pxp.Client{BaseURL: districtURL, UserID: userID, Password: password},
	}
}

// Fetch calls a method of the PXPWebServices and decodes the response into
// doc.
func (c *Client) Fetch(ctx context.Context, method pxp.Method, params pxp.Params, doc pxp.Document) error {
	clnLog.Debugf("Calling method %s(%v) on %s", method, params, c.Name)
	// execute call
	text, err := c.Call(ctx, pxp.Operation{Handle: pxp.PXPWebServices, Method: method}, params)
	if err != nil {
		return err
	}

	// build result
	err = pxp.Decode(text, doc)
	if err != nil {
		return fmt.Errorf("Invalid XML response for %s: %w", method, err)
	}
	return nil
}

// Grades retrieves the grade book of the current reporting period or of the
// specified one.
func (c *Client) Grades(ctx context.Context, reportPeriod *uint64) (*Gradebook, error) {
	var ps pxp.Params
	if reportPeriod != nil {
		ps = append(ps, pxp.ReportPeriod(*reportPeriod))
	}
	g := &Gradebook{}
	if err := c.Fetch(ctx, pxp.GradeBook, ps, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Attendance retrieves the absences of the student.
func (c *Client) Attendance(ctx context.Context) (*Attendance, error) {
	a := &Attendance{}
	if err := c.Fetch(ctx, pxp.Attendance, nil, a); err != nil {
		return nil, err
	}
	return a, nil
}

// StudentInfo retrieves personal information about the student.
func (c *Client) StudentInfo(ctx context.Context) (*StudentInfo, error) {
	s := &StudentInfo{}
	if err := c.Fetch(ctx, pxp.StudentInfo, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Schedule retrieves the current class schedule.
func (c *Client) Schedule(ctx context.Context) (*ClassSchedule, error) {
	s := &ClassSchedule{}
	if err := c.Fetch(ctx, pxp.StudentClassList, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SchoolInfo retrieves information about the attended school.
func (c *Client) SchoolInfo(ctx context.Context) (*SchoolInfo, error) {
	s := &SchoolInfo{}
	if err := c.Fetch(ctx, pxp.StudentSchoolInfo, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}
