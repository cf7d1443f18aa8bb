package pxp

import "fmt"

// Handle is a service handle, the namespace of a group of remote methods.
type Handle int

// Service handles.
const (
	PXPWebServices Handle = iota
	HDInfoServices
)

var handleTokens = [...]string{
	PXPWebServices: "PXPWebServices",
	HDInfoServices: "HDInfoServices",
}

// String returns the wire token of the handle.
func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleTokens) {
		return fmt.Sprintf("Handle(%d)", int(h))
	}
	return handleTokens[h]
}

// ParseHandle looks up a handle by its wire token.
func ParseHandle(token string) (Handle, bool) {
	for h, t := range handleTokens {
		if t == token {
			return Handle(h), true
		}
	}
	return 0, false
}

// Method is a remote operation.
type Method int

// Remote methods.
const (
	Attendance Method = iota
	StudentHealthInfo
	GetStudentDocumentInitialData
	GradeBook
	StudentCalendar
	TestWebServiceURL
	ChildList
	GetSupportedLanguages
	GetContentOfAttachedDoc
	StudentCalendarAssignmentDetails
	SaveSoundFileData
	UploadGBDocDataForStudentAssignment
	StudentHWNotes
	UpdateStudentHWNotes
	StudentInfo
	UpdatePXPMessage
	StudentSchoolInfo
	UpdateDeviceToken
	StudentDisciplineInfo
	GenerateAuthToken
	StudentConference
	GetMatchingDistrictList
	StudentFee
	PXPContentClassWebSiteGetFileXML
	GetPXPMessages
	GetContentUserDefinedModule
	GetSoundFileData
	GetAttachedDocToAssignment
	GetClassWebSiteData
	GetContentOfGBAttachedDoc
	GetReportCardInitialData
	GetReportCardDocumentData
	GetSpecialEdData
	StudentClassList
)

// Wire tokens of the methods. Some differ from the constant names and must be
// sent exactly like this, otherwise the service does not recognize them.
var methodTokens = [...]string{
	Attendance:                          "Attendance",
	StudentHealthInfo:                   "StudentHealthInfo",
	GetStudentDocumentInitialData:       "GetStudentDocumentInitialData",
	GradeBook:                           "Gradebook",
	StudentCalendar:                     "StudentCalendar",
	TestWebServiceURL:                   "TestWebServiceURL",
	ChildList:                           "ChildList",
	GetSupportedLanguages:               "GetSupportedLanguages",
	GetContentOfAttachedDoc:             "GetContentOfAttachedDoc",
	StudentCalendarAssignmentDetails:    "StudentCalendarAssignmentDetails",
	SaveSoundFileData:                   "SaveSoundFileData",
	UploadGBDocDataForStudentAssignment: "UploadGBDocumentDataForStudentAssigment",
	StudentHWNotes:                      "StudentHWNotes",
	UpdateStudentHWNotes:                "UpdateStudentHWNotes",
	StudentInfo:                         "StudentInfo",
	UpdatePXPMessage:                    "UpdatePXPMessage",
	StudentSchoolInfo:                   "StudentSchoolInfo",
	UpdateDeviceToken:                   "UpdateDeviceToken",
	StudentDisciplineInfo:               "StudentDisciplineInfo",
	GenerateAuthToken:                   "GenerateAuthToken",
	StudentConference:                   "StudentConference",
	GetMatchingDistrictList:             "GetMatchingDistrictList",
	StudentFee:                          "StudentFee",
	PXPContentClassWebSiteGetFileXML:    "PXPContentCLassWebSiteGetFileXML",
	GetPXPMessages:                      "GetPXPMessages",
	GetContentUserDefinedModule:         "GetContentUserDefinedModule",
	GetSoundFileData:                    "GetSoundFileData",
	GetAttachedDocToAssignment:          "GetAttachedDocToAssignment",
	GetClassWebSiteData:                 "GetClassWebSiteData",
	GetContentOfGBAttachedDoc:           "GetContentOfGBAttachedDoc",
	GetReportCardInitialData:            "GetReportCardInitialData",
	GetReportCardDocumentData:           "GetReportCardDocumentData",
	GetSpecialEdData:                    "GetSpecialEdData",
	StudentClassList:                    "StudentClassList",
}

// String returns the wire token of the method.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodTokens) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodTokens[m]
}

// ParseMethod looks up a method by its wire token.
func ParseMethod(token string) (Method, bool) {
	for m, t := range methodTokens {
		if t == token {
			return Method(m), true
		}
	}
	return 0, false
}

// Methods returns all known methods.
func Methods() []Method {
	ms := make([]Method, len(methodTokens))
	for i := range ms {
		ms[i] = Method(i)
	}
	return ms
}

// Operation identifies a remote procedure.
type Operation struct {
	Handle Handle
	Method Method
}

// String implements fmt.Stringer.
func (o Operation) String() string {
	return o.Handle.String() + "." + o.Method.String()
}
