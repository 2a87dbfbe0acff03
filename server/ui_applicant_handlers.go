package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/jrsteele09/bursary-portal/auth"
	"github.com/jrsteele09/bursary-portal/bursaryapi"
	"github.com/jrsteele09/bursary-portal/users"
	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 10 << 20

var allowedUploadExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".pdf": true,
}

// ApplicantPageData is shared by the dashboard and the profile page.
type ApplicantPageData struct {
	Profile     bursaryapi.Profile
	Status      bursaryapi.ApplicationStatus
	StatusLabel string
	History     []bursaryapi.StatusEvent
	CanApply    bool
	Progress    int
}

func statusProgress(st bursaryapi.ApplicationStatus) int {
	switch st {
	case bursaryapi.StatusPending:
		return 60
	case bursaryapi.StatusApproved, bursaryapi.StatusRejected:
		return 100
	case bursaryapi.StatusNotApplied:
		return 0
	default:
		return 0
	}
}

// loadApplicant fetches the profile and application status for the signed-in
// user. When the API rejects the token it logs out, redirects and returns false.
// Other failures are returned as a message and the page renders from the cached
// snapshot.
func (s *Server) loadApplicant(w http.ResponseWriter, r *http.Request, ac *auth.Context) (ApplicantPageData, string, bool) {
	token, ok := ac.Token()
	if !ok {
		ac.Logout(r.Context())
		redirectSuccess(w, r, RouteLogin)
		return ApplicantPageData{}, "", false
	}
	user := ac.User()

	data := ApplicantPageData{
		Profile: bursaryapi.Profile{
			FullName:        firstNonEmpty(user.FullName, user.Name),
			AdmissionNumber: user.AdmissionNumber,
			InstitutionName: user.InstitutionName,
			Email:           user.Email,
			PhoneNumber:     user.PhoneNumber,
		},
		Status: bursaryapi.StatusNotApplied,
	}

	var problem string
	profile, err := s.api.CurrentUser(r.Context(), token)
	switch {
	case handleRemoteUnauthorized(w, r, ac, err):
		return ApplicantPageData{}, "", false
	case err != nil:
		log.Ctx(r.Context()).Warn().Err(err).Msg("fetching profile failed")
		problem = apiErrorMessage(err)
	default:
		data.Profile = profile
	}

	if data.Profile.AdmissionNumber != "" {
		report, err := s.api.ApplicationStatus(r.Context(), token, data.Profile.AdmissionNumber)
		switch {
		case handleRemoteUnauthorized(w, r, ac, err):
			return ApplicantPageData{}, "", false
		case err != nil:
			log.Ctx(r.Context()).Warn().Err(err).Msg("fetching application status failed")
			if problem == "" {
				problem = apiErrorMessage(err)
			}
		default:
			data.Status = report.Status
			data.History = report.History
		}
	}

	data.StatusLabel = data.Status.Label()
	data.CanApply = data.Status == bursaryapi.StatusNotApplied
	data.Progress = statusProgress(data.Status)
	return data, problem, true
}

// ApplicantDashboardHandler renders the applicant's details and application status.
func (s *Server) ApplicantDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, problem, ok := s.loadApplicant(w, r, authContext(r))
		if !ok {
			return
		}
		s.render(w, r, view{
			Template: "applicant_dashboard.html",
			Title:    "Applicant Dashboard",
			Error:    problem,
			Data:     data,
		})
	}
}

// ApplicantApplyHandler starts an application from the dashboard.
func (s *Server) ApplicantApplyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac := authContext(r)
		token, _ := ac.Token()

		err := s.api.Apply(r.Context(), token)
		if handleRemoteUnauthorized(w, r, ac, err) {
			return
		}
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("apply failed")
			redirectWithError(w, r, RouteApplicantDashboard, apiErrorMessage(err))
			return
		}
		redirectSuccess(w, r, RouteApplicantDashboard+"?notice="+url.QueryEscape("Your application has been submitted"))
	}
}

// ProfileHandler renders the applicant's profile and status summary.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, problem, ok := s.loadApplicant(w, r, authContext(r))
		if !ok {
			return
		}
		s.render(w, r, view{
			Template: "profile.html",
			Title:    "My Profile",
			Error:    problem,
			Data:     data,
		})
	}
}

// ApplicationFormData is the bursary application form model.
type ApplicationFormData struct {
	Form bursaryapi.ApplicationForm
}

func formFromUser(u *users.Snapshot) bursaryapi.ApplicationForm {
	if u == nil {
		return bursaryapi.ApplicationForm{}
	}
	return bursaryapi.ApplicationForm{
		FullName:        firstNonEmpty(u.FullName, u.Name),
		Admission:       u.AdmissionNumber,
		PhoneNumber:     u.PhoneNumber,
		Email:           u.Email,
		InstitutionName: u.InstitutionName,
	}
}

// ApplicationFormHandler renders the full bursary application form.
func (s *Server) ApplicationFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, view{
			Template: "apply.html",
			Title:    "Apply For Bursary",
			Data:     ApplicationFormData{Form: formFromUser(authContext(r).User())},
		})
	}
}

// ApplicationSubmissionHandler sends the application form and its documents.
func (s *Server) ApplicationSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		form := bursaryapi.ApplicationForm{
			FullName:        strings.TrimSpace(r.FormValue("fullName")),
			Admission:       strings.TrimSpace(r.FormValue("admission")),
			Gender:          r.FormValue("gender"),
			Form:            r.FormValue("form"),
			DOB:             r.FormValue("dob"),
			NationalID:      strings.TrimSpace(r.FormValue("nationalID")),
			PhoneNumber:     strings.TrimSpace(r.FormValue("phoneNumber")),
			Email:           strings.TrimSpace(r.FormValue("email")),
			InstitutionType: r.FormValue("institutionType"),
			InstitutionName: strings.TrimSpace(r.FormValue("institutionName")),
			IndexNumber:     strings.TrimSpace(r.FormValue("indexNumber")),
			Constituency:    strings.TrimSpace(r.FormValue("constituency")),
			Ward:            strings.TrimSpace(r.FormValue("ward")),
		}

		fail := func(msg string) {
			s.render(w, r, view{
				Template: "apply.html",
				Title:    "Apply For Bursary",
				Status:   http.StatusUnprocessableEntity,
				Error:    msg,
				Data:     ApplicationFormData{Form: form},
			})
		}

		if err := form.Validate(); err != nil {
			fail(err.Error())
			return
		}

		defer func() { closeUploads(form.IDDocument, form.BirthCertificate) }()

		var err error
		if form.IDDocument, err = uploadFrom(r, "idDocument"); err != nil {
			fail(err.Error())
			return
		}
		if form.BirthCertificate, err = uploadFrom(r, "birthCertificate"); err != nil {
			fail(err.Error())
			return
		}

		ac := authContext(r)
		token, _ := ac.Token()
		_, err = s.api.SubmitApplication(r.Context(), token, form)
		if handleRemoteUnauthorized(w, r, ac, err) {
			return
		}
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("submitting application failed")
			fail(apiErrorMessage(err))
			return
		}
		redirectSuccess(w, r, RouteApplicantDashboard+"?notice="+url.QueryEscape("Your application has been submitted"))
	}
}

// uploadFrom returns the optional file in field, or nil when none was sent.
func uploadFrom(r *http.Request, field string) (*bursaryapi.Upload, error) {
	file, hdr, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s", field)
	}
	if !allowedUpload(hdr) {
		file.Close()
		return nil, fmt.Errorf("%s must be a PNG, JPG, GIF or PDF file", field)
	}
	return &bursaryapi.Upload{Filename: path.Base(hdr.Filename), Content: file}, nil
}

func closeUploads(uploads ...*bursaryapi.Upload) {
	for _, up := range uploads {
		if up == nil {
			continue
		}
		if c, ok := up.Content.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

func allowedUpload(hdr *multipart.FileHeader) bool {
	return allowedUploadExtensions[strings.ToLower(path.Ext(hdr.Filename))]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
