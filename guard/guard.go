// Package guard decides whether a route renders for the current auth state.
package guard

import (
	"github.com/jrsteele09/bursary-portal/auth"
	"github.com/jrsteele09/bursary-portal/users"
)

const (
	LoginPath   = "/login"
	LandingPath = "/ApplicantDashboard"
)

// Requirement is the access level a route declares.
type Requirement int

const (
	None Requirement = iota
	Authenticated
	Admin
)

func (r Requirement) String() string {
	switch r {
	case None:
		return "none"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

type Action int

const (
	Render Action = iota
	Redirect
	Wait
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Wait:
		return "wait"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Decide. Target is set only for Redirect.
type Decision struct {
	Action Action
	Target string
}

func render() Decision            { return Decision{Action: Render} }
func redirect(to string) Decision { return Decision{Action: Redirect, Target: to} }

// Decide maps an auth state and a route requirement onto an action. It has no
// side effects.
func Decide(state auth.State, req Requirement) Decision {
	if req == None {
		return render()
	}
	if state.Loading {
		return Decision{Action: Wait}
	}
	if !state.IsAuthenticated {
		return redirect(LoginPath)
	}
	switch req {
	case Authenticated:
		return render()
	case Admin:
	default:
		return redirect(LoginPath)
	}
	if state.User == nil {
		return redirect(LandingPath)
	}
	switch state.User.Role {
	case users.RoleAdmin:
		return render()
	case users.RoleApplicant:
		return redirect(LandingPath)
	default:
		return redirect(LandingPath)
	}
}
