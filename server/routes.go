package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/bursary-portal/guard"
)

func (s *Server) initRoutes() {
	// Public pages
	s.RegisterRouteHandler("GET "+RouteHome+"{$}", s.page(guard.None, s.IndexHandler()))
	s.RegisterRouteHandler("GET "+RouteAbout, s.page(guard.None, s.AboutHandler()))
	s.RegisterRouteHandler("GET "+RouteAchievements, s.page(guard.None, s.AchievementsHandler()))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, s.page(guard.None, s.LoginPageHandler()))
	s.RegisterRouteHandler("POST "+RouteLogin, s.page(guard.None, s.LoginSubmissionHandler()))
	s.RegisterRouteHandler("GET "+RouteLogout, s.page(guard.None, s.LogoutHandler()))
	s.RegisterRouteHandler("POST "+RouteLogout, s.page(guard.None, s.LogoutHandler()))

	// SIGNUP
	for _, route := range []string{RouteRegister, RouteRegistration} {
		s.RegisterRouteHandler("GET "+route, s.page(guard.None, s.RegistrationPageHandler()))
		s.RegisterRouteHandler("POST "+route, s.page(guard.None, s.RegistrationSubmissionHandler()))
	}

	// Applicant routes
	s.RegisterRouteHandler("GET "+RouteApplicantDashboard, s.page(guard.Authenticated, s.ApplicantDashboardHandler()))
	s.RegisterRouteHandler("POST "+RouteApplicantApply, s.page(guard.Authenticated, s.ApplicantApplyHandler()))
	s.RegisterRouteHandler("GET "+RouteProfile, s.page(guard.Authenticated, s.ProfileHandler()))
	s.RegisterRouteHandler("GET "+RouteApplyForBursary, s.page(guard.Authenticated, s.ApplicationFormHandler()))
	s.RegisterRouteHandler("POST "+RouteApplyForBursary, s.page(guard.Authenticated, s.ApplicationSubmissionHandler()))

	// Admin routes
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, s.page(guard.Admin, s.AdminDashboardHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminApplicantStatus, s.page(guard.Admin, s.AdminApplicantStatusHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminApplicantDelete, s.page(guard.Admin, s.AdminApplicantDeleteHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminAchievements, s.page(guard.Admin, s.AdminAchievementsHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminAchievements, s.page(guard.Admin, s.AdminAchievementCreateHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminAchievementDel, s.page(guard.Admin, s.AdminAchievementDeleteHandler()))

	// API routes
	s.RegisterRouteHandler("POST "+RouteAPIValidatePassword, ChainMiddleware(s.ValidatePasswordHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionStateHandler(), s.APIMiddleware(s.HydrateMiddleware)...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPISession, ChainMiddleware(s.SessionStateHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteStaticImages, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

// page wraps a view with the HTML middleware, hydration and the route guard.
func (s *Server) page(req guard.Requirement, view http.HandlerFunc) http.HandlerFunc {
	return ChainMiddleware(view, s.HTMLMiddleWare(s.HydrateMiddleware, s.RequireMiddleware(req))...)
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
