package server

import (
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/jrsteele09/bursary-portal/users"
	"github.com/rs/zerolog/log"
)

// RegistrationPageData keeps what the applicant typed, minus the password.
type RegistrationPageData struct {
	Form users.Registration
}

// ValidatePasswordHandler validates password strength for the registration form
func (s *Server) ValidatePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		password := r.FormValue("password")
		w.Header().Set("Content-Type", contentTypeHTML)

		if password == "" {
			w.WriteHeader(http.StatusOK)
			return
		}

		if err := users.ValidatePasswordStrength(password); err != nil {
			w.Header().Set("HX-Trigger", fmt.Sprintf(`{"passwordInvalid": %q}`, err.Error()))
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `<span class="text-danger">%s</span>`, html.EscapeString(err.Error()))
			return
		}

		w.Header().Set("HX-Trigger", `{"passwordValid": ""}`)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `<span class="text-success">Strong password</span>`)
	}
}

// RegistrationPageHandler renders the sign-up form
func (s *Server) RegistrationPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, view{Template: "register.html", Title: "Registration", Data: RegistrationPageData{}})
	}
}

// RegistrationSubmissionHandler checks the form and creates the account remotely.
func (s *Server) RegistrationSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		reg := users.Registration{
			FullName:        r.FormValue("full_name"),
			AdmissionNumber: r.FormValue("admission_number"),
			InstitutionName: r.FormValue("institution_name"),
			Email:           r.FormValue("email"),
			PhoneNumber:     r.FormValue("phone_number"),
			Password:        r.FormValue("password"),
		}
		reg.Normalize()

		if reg.Password != r.FormValue("confirm_password") {
			s.renderRegistrationError(w, r, reg, "Passwords do not match")
			return
		}
		if err := reg.Validate(); err != nil {
			s.renderRegistrationError(w, r, reg, err.Error())
			return
		}

		if err := s.api.Register(r.Context(), reg); err != nil {
			log.Ctx(r.Context()).Info().Err(err).Msg("registration rejected")
			s.renderRegistrationError(w, r, reg, apiErrorMessage(err))
			return
		}

		redirectSuccess(w, r, RouteLogin+"?notice=Registration+successful%2C+please+log+in&email="+url.QueryEscape(reg.Email))
	}
}

func (s *Server) renderRegistrationError(w http.ResponseWriter, r *http.Request, reg users.Registration, msg string) {
	reg.Password = ""
	s.render(w, r, view{
		Template: "register.html",
		Title:    "Registration",
		Status:   http.StatusUnprocessableEntity,
		Error:    msg,
		Data:     RegistrationPageData{Form: reg},
	})
}
