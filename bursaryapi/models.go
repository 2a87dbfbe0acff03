package bursaryapi

import (
	"fmt"
	"io"
	"strings"
)

// ApplicationStatus is where a bursary application stands.
type ApplicationStatus string

const (
	StatusNotApplied ApplicationStatus = "not_applied"
	StatusPending    ApplicationStatus = "pending"
	StatusApproved   ApplicationStatus = "approved"
	StatusRejected   ApplicationStatus = "rejected"
)

// ParseApplicationStatus accepts the API's values in any case. An empty value
// means no application exists.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusNotApplied, nil
	case StatusNotApplied, StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown application status %q", s)
	}
}

// Label is the human readable status.
func (s ApplicationStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusNotApplied:
		return "Not applied"
	default:
		return string(s)
	}
}

// Profile is the signed-in user's record as held by the API.
type Profile struct {
	FullName        string `json:"full_name"`
	AdmissionNumber string `json:"admission_number"`
	InstitutionName string `json:"institution_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
}

type StatusEvent struct {
	Date    string            `json:"date"`
	Status  ApplicationStatus `json:"status"`
	Details string            `json:"details"`
}

// StatusReport is the applicant's current status and its history.
type StatusReport struct {
	Status  ApplicationStatus `json:"status"`
	History []StatusEvent     `json:"history"`
	Message string            `json:"message,omitempty"`
}

// Upload is an optional document attached to an application.
type Upload struct {
	Filename string
	Content  io.Reader
}

// ApplicationForm is the full bursary application.
type ApplicationForm struct {
	FullName        string
	Admission       string
	Gender          string
	Form            string
	DOB             string
	NationalID      string
	PhoneNumber     string
	Email           string
	InstitutionType string
	InstitutionName string
	IndexNumber     string
	Constituency    string
	Ward            string

	IDDocument       *Upload
	BirthCertificate *Upload
}

// fields returns the multipart field names and values in submission order.
func (f ApplicationForm) fields() [][2]string {
	return [][2]string{
		{"fullName", f.FullName},
		{"admission", f.Admission},
		{"gender", f.Gender},
		{"form", f.Form},
		{"dob", f.DOB},
		{"nationalID", f.NationalID},
		{"phoneNumber", f.PhoneNumber},
		{"email", f.Email},
		{"institutionType", f.InstitutionType},
		{"institutionName", f.InstitutionName},
		{"indexNumber", f.IndexNumber},
		{"constituency", f.Constituency},
		{"ward", f.Ward},
	}
}

// Validate reports the first required field left empty. IndexNumber and the
// uploads are optional.
func (f ApplicationForm) Validate() error {
	for _, kv := range f.fields() {
		if kv[0] == "indexNumber" {
			continue
		}
		if strings.TrimSpace(kv[1]) == "" {
			return fmt.Errorf("%s is required", kv[0])
		}
	}
	return nil
}

// Applicant is an application as listed for administrators.
type Applicant struct {
	ID               int    `json:"id"`
	FullName         string `json:"full_name"`
	Admission        string `json:"admission"`
	Gender           string `json:"gender"`
	Form             string `json:"form"`
	DOB              string `json:"dob"`
	NationalID       string `json:"national_id"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	InstitutionType  string `json:"institution_type"`
	InstitutionName  string `json:"institution_name"`
	IndexNumber      string `json:"index_number"`
	Constituency     string `json:"constituency"`
	Ward             string `json:"ward"`
	IDDocument       string `json:"id_document"`
	BirthCertificate string `json:"birth_certificate"`
	Status           string `json:"status"`
}
