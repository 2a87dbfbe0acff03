package server

import "github.com/jrsteele09/bursary-portal/guard"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages
	RouteHome         = "/"
	RouteAbout        = "/about"
	RouteAchievements = "/achievements"

	// Auth Routes - Login, Logout & Registration
	RouteLogin        = guard.LoginPath
	RouteLogout       = "/logout"
	RouteRegister     = "/register"
	RouteRegistration = "/Registration"

	// Applicant Routes
	RouteApplyForBursary    = "/apply-for-bursary"
	RouteProfile            = "/profile"
	RouteApplicantDashboard = guard.LandingPath
	RouteApplicantApply     = "/ApplicantDashboard/apply"

	// Admin Routes
	RouteAdminDashboard       = "/AdminDashboard"
	RouteAdminAchievements    = "/admin/achievements"
	RouteAdminAchievementDel  = "/admin/achievements/{id}/delete"
	RouteAdminApplicantStatus = "/admin/applicants/{id}/status"
	RouteAdminApplicantDelete = "/admin/applicants/{id}/delete"

	// API Routes
	RouteAPISession          = "/api/session"
	RouteAPIValidatePassword = "/api/validate-password"

	// Static Asset Routes (patterns)
	RouteStaticCSS    = "/css/{file}"
	RouteStaticJS     = "/js/{file}"
	RouteStaticImages = "/images/{file}"
)
