package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/bursary-portal/bursaryapi"
	perrors "github.com/jrsteele09/bursary-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Email string // Preserve email on error
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, view{
			Template: "login.html",
			Title:    "Login",
			Data:     LoginPageData{Email: r.URL.Query().Get("email")},
		})
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		if email == "" || password == "" {
			s.renderLoginError(w, r, "Email and password are required", email)
			return
		}

		user, token, err := s.api.Login(r.Context(), email, password)
		if err != nil {
			log.Ctx(r.Context()).Info().Err(err).Msg("login rejected")
			msg := apiErrorMessage(err)
			if perrors.Is(err, bursaryapi.ErrUnauthorized) {
				msg = "Invalid email or password"
			}
			s.renderLoginError(w, r, msg, email)
			return
		}

		ac := authContext(r)
		ac.Login(r.Context(), user, token)

		target := RouteApplicantDashboard
		if user.IsAdmin() {
			target = RouteAdminDashboard
		}
		redirectSuccess(w, r, target)
	}
}

func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, msg, email string) {
	s.render(w, r, view{
		Template: "login.html",
		Title:    "Login",
		Status:   http.StatusUnprocessableEntity,
		Error:    msg,
		Data:     LoginPageData{Email: email},
	})
}

// LogoutHandler clears the session and returns to the login page.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authContext(r).Logout(r.Context())
		redirectSuccess(w, r, RouteLogin)
	}
}
