package server

import (
	"github.com/jrsteele09/bursary-portal/auth"
)

type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// NavbarModel is the navigation bar for one auth state.
type NavbarModel struct {
	Links           []NavLink
	IsAuthenticated bool
	UserName        string
	Menu            []NavLink
	LogoutPath      string
}

func buildNavbar(state auth.State, currentPath string) NavbarModel {
	link := func(label, href string) NavLink {
		return NavLink{Label: label, Href: href, Active: href == currentPath}
	}

	nav := NavbarModel{
		Links: []NavLink{
			link("Home", RouteHome),
			link("Apply For Bursary", RouteApplyForBursary),
			link("About Us", RouteAbout),
			link("Key Achievements", RouteAchievements),
		},
		LogoutPath: RouteLogout,
	}

	if !state.IsAuthenticated {
		nav.Links = append(nav.Links,
			link("Registration", RouteRegistration),
			link("Login", RouteLogin),
		)
		return nav
	}

	nav.IsAuthenticated = true
	nav.UserName = state.User.DisplayName()
	if state.User.IsAdmin() {
		nav.Menu = []NavLink{
			link("Admin Dashboard", RouteAdminDashboard),
			link("Manage Achievements", RouteAdminAchievements),
		}
	} else {
		nav.Menu = []NavLink{
			link("Applicant Dashboard", RouteApplicantDashboard),
			link("My Profile", RouteProfile),
		}
	}
	return nav
}
