package server

import (
	"testing"

	"github.com/jrsteele09/bursary-portal/auth"
	"github.com/jrsteele09/bursary-portal/users"
	"github.com/stretchr/testify/require"
)

func labels(links []NavLink) []string {
	var out []string
	for _, l := range links {
		out = append(out, l.Label)
	}
	return out
}

func TestBuildNavbar(t *testing.T) {
	t.Run("guest", func(t *testing.T) {
		nav := buildNavbar(auth.State{}, "/login")
		require.False(t, nav.IsAuthenticated)
		require.Contains(t, labels(nav.Links), "Registration")
		require.Contains(t, labels(nav.Links), "Login")
		require.Empty(t, nav.Menu)
		for _, l := range nav.Links {
			require.Equal(t, l.Href == "/login", l.Active, l.Label)
		}
	})

	t.Run("applicant without a name", func(t *testing.T) {
		nav := buildNavbar(auth.State{IsAuthenticated: true, User: &users.Snapshot{Role: users.RoleApplicant}}, "/")
		require.True(t, nav.IsAuthenticated)
		require.Equal(t, "Profile", nav.UserName)
		require.Equal(t, []string{"Applicant Dashboard", "My Profile"}, labels(nav.Menu))
		require.NotContains(t, labels(nav.Links), "Login")
	})

	t.Run("admin", func(t *testing.T) {
		nav := buildNavbar(auth.State{IsAuthenticated: true, User: &users.Snapshot{Name: "Root", Role: users.RoleAdmin}}, "/")
		require.Equal(t, "Root", nav.UserName)
		require.Equal(t, []string{"Admin Dashboard", "Manage Achievements"}, labels(nav.Menu))
		require.Equal(t, "/logout", nav.LogoutPath)
	})
}
