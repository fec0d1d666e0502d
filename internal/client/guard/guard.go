// Package guard decides whether a route may be rendered for the current
// session or where the user must be sent instead.
package guard

import (
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Principal is the read-only view of a session the guard needs.
type Principal interface {
	Authenticated() bool
	Role() models.Role
}

type Action int

const (
	ActionRender Action = iota
	ActionRedirect
)

func (a Action) String() string {
	if a == ActionRedirect {
		return "redirect"
	}
	return "render"
}

// Decision is the guard's verdict. Path is set only for redirects.
type Decision struct {
	Action Action
	Path   string
}

func Render() Decision { return Decision{Action: ActionRender} }

func Redirect(path string) Decision { return Decision{Action: ActionRedirect, Path: path} }

// Decide is a pure function of the principal and the route's role
// requirement. An empty requiredRole means any authenticated user.
// Anonymous users go to login; authenticated users lacking the role go to
// the dashboard, never to login.
func Decide(p Principal, requiredRole models.Role) Decision {
	if p == nil || !p.Authenticated() {
		return Redirect(LoginPath)
	}
	if requiredRole != "" && p.Role() != requiredRole {
		return Redirect(DashboardPath)
	}
	return Render()
}
