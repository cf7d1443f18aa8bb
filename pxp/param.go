package pxp

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field is the name of a parameter accepted by the service. It is used as XML
// tag in the parameter fragment.
type Field int

// Parameter fields.
const (
	FieldChildIntID Field = iota
	FieldHealthConditions
	FieldHealthVisits
	FieldHealthImmunizations
	FieldReportPeriod
	FieldConcurrentSchOrgYearGU
	FieldLoadAllTerms
	FieldRequestDate
	FieldAssignmentID
	FieldLanguageCode
	FieldClassGU
	FieldStudentClassList
	FieldSoundFileListing
	FieldGBDocumentData
	FieldKey
	FieldMatchToDistrictZipCode
)

type valueKind int

const (
	textValue valueKind = iota
	uintValue
	boolValue
	constValue
)

var fields = [...]struct {
	name string
	kind valueKind
}{
	FieldChildIntID:             {"ChildIntID", uintValue},
	FieldHealthConditions:       {"HealthConditions", boolValue},
	FieldHealthVisits:           {"HealthVisits", boolValue},
	FieldHealthImmunizations:    {"HealthImmunizations", boolValue},
	FieldReportPeriod:           {"ReportPeriod", uintValue},
	FieldConcurrentSchOrgYearGU: {"ConcurrentSchOrgYearGU", textValue},
	FieldLoadAllTerms:           {"LoadAllTerms", constValue},
	FieldRequestDate:            {"RequestDate", textValue},
	FieldAssignmentID:           {"AssignmentID", textValue},
	FieldLanguageCode:           {"LanguageCode", uintValue},
	FieldClassGU:                {"ClassGU", textValue},
	FieldStudentClassList:       {"StudentClassList", textValue},
	FieldSoundFileListing:       {"SoundFileListing", textValue},
	FieldGBDocumentData:         {"GBDocumentData", textValue},
	FieldKey:                    {"Key", constValue},
	FieldMatchToDistrictZipCode: {"MatchToDistrictZipCode", textValue},
}

// String returns the XML tag name of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fields) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fields[f].name
}

// ParseField looks up a field by its tag name.
func ParseField(name string) (Field, bool) {
	for f, d := range fields {
		if d.name == name {
			return Field(f), true
		}
	}
	return 0, false
}

const (
	// SessionKey is the fixed correlation token sent with the Key parameter.
	SessionKey = "5E4B7859-B805-474B-A833-FDB15D205D40"

	loadAllTermsValue = "true"

	// name of the container element of the parameter fragment
	paramsElement = "Parms"
)

// Param is a single parameter of a remote call. A Param can only be created
// with the constructor functions of this package, so the tag name always
// belongs to a known field.
type Param struct {
	field Field
	// string, uint64 or bool
	value interface{}
}

// Field returns the field of the parameter.
func (p Param) Field() Field { return p.field }

// Value returns the value of the parameter: string, uint64 or bool.
func (p Param) Value() interface{} { return p.value }

// String implements fmt.Stringer.
func (p Param) String() string {
	return fmt.Sprintf("%s=%v", p.field, p.value)
}

func (p Param) text() (string, error) {
	switch v := p.value.(type) {
	case string:
		return v, nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", errors.New("Parameter without value")
	default:
		return "", fmt.Errorf("Unsupported value type: %T", v)
	}
}

// ChildIntID selects a child of a parent account by its index.
func ChildIntID(id uint64) Param { return Param{FieldChildIntID, id} }

// HealthConditions requests the health conditions of the student.
func HealthConditions(b bool) Param { return Param{FieldHealthConditions, b} }

// HealthVisits requests the visits to the nurse's office.
func HealthVisits(b bool) Param { return Param{FieldHealthVisits, b} }

// HealthImmunizations requests the immunization records.
func HealthImmunizations(b bool) Param { return Param{FieldHealthImmunizations, b} }

// ReportPeriod selects a reporting period by its index.
func ReportPeriod(period uint64) Param { return Param{FieldReportPeriod, period} }

// ConcurrentSchOrgYearGU identifies a concurrent school year by its GU.
func ConcurrentSchOrgYearGU(gu string) Param { return Param{FieldConcurrentSchOrgYearGU, gu} }

// RequestDate is a date as expected by the service, e.g. 1/23/2019.
func RequestDate(date string) Param { return Param{FieldRequestDate, date} }

// AssignmentID identifies a grade book assignment.
func AssignmentID(id string) Param { return Param{FieldAssignmentID, id} }

// LanguageCode selects the language of the response.
func LanguageCode(code uint64) Param { return Param{FieldLanguageCode, code} }

// ClassGU identifies a class by its GU.
func ClassGU(gu string) Param { return Param{FieldClassGU, gu} }

// StudentClassListParam carries the StudentClassList field. The name avoids
// the clash with the method of the same name.
func StudentClassListParam(s string) Param { return Param{FieldStudentClassList, s} }

// SoundFileListing names a sound file.
func SoundFileListing(s string) Param { return Param{FieldSoundFileListing, s} }

// GBDocumentData carries the data of a document uploaded for an assignment.
func GBDocumentData(data string) Param { return Param{FieldGBDocumentData, data} }

// MatchToDistrictZipCode takes the zip code as text, leading zeros are kept.
func MatchToDistrictZipCode(zip string) Param { return Param{FieldMatchToDistrictZipCode, zip} }

// LoadAllTerms always has the value true.
func LoadAllTerms() Param { return Param{FieldLoadAllTerms, loadAllTermsValue} }

// Key carries the fixed SessionKey. It is never added implicitly, callers add
// it for the operations requiring it.
func Key() Param { return Param{FieldKey, SessionKey} }

// NewParam creates a parameter from a textual value, which is converted to the
// value type of the field. Constant fields accept an empty string or their
// constant.
func NewParam(f Field, value string) (Param, error) {
	if f < 0 || int(f) >= len(fields) {
		return Param{}, newError(EncodingFailure, f.String(), errors.New("Unknown field"))
	}
	switch fields[f].kind {
	case uintValue:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Param{}, newError(EncodingFailure, f.String(), fmt.Errorf("Invalid unsigned integer: %s", value))
		}
		return Param{f, u}, nil
	case boolValue:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return Param{}, newError(EncodingFailure, f.String(), fmt.Errorf("Invalid boolean: %s", value))
		}
		return Param{f, b}, nil
	case constValue:
		c := SessionKey
		if f == FieldLoadAllTerms {
			c = loadAllTermsValue
		}
		if value != "" && value != c {
			return Param{}, newError(EncodingFailure, f.String(), fmt.Errorf("Constant field can not be set to: %s", value))
		}
		return Param{f, c}, nil
	default:
		return Param{f, value}, nil
	}
}

// Params is the ordered parameter sequence of one call. The order is kept on
// encoding, the service depends on it for some operations.
type Params []Param

// Encode builds the XML parameter fragment: <Parms><Field>value</Field>...</Parms>.
// The container is always emitted, even for no parameters.
func (ps Params) Encode() (string, error) {
	var b strings.Builder
	b.WriteString("<" + paramsElement + ">")
	for _, p := range ps {
		name := p.field.String()
		txt, err := p.text()
		if err != nil {
			return "", newError(EncodingFailure, name, err)
		}
		// xml.EscapeText would replace them silently
		if !isXMLText(txt) {
			return "", newError(EncodingFailure, name, fmt.Errorf("Invalid character in value: %q", txt))
		}
		b.WriteString("<" + name + ">")
		err = xml.EscapeText(&b, []byte(txt))
		if err != nil {
			return "", newError(EncodingFailure, name, err)
		}
		b.WriteString("</" + name + ">")
	}
	b.WriteString("</" + paramsElement + ">")
	return b.String(), nil
}

// isXMLText checks for valid UTF-8 consisting only of characters allowed in an
// XML document (production Char of XML 1.0).
func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}
