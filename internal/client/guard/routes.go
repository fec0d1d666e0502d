package guard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/irccwatch/internal/client/models"
)

var ErrUnknownRoute = errors.New("unknown route")

// Route is one screen of the client. Pattern segments starting with ':'
// bind parameters.
type Route struct {
	Name    string
	Pattern string
	Public  bool
	Role    models.Role
}

var Routes = []Route{
	{Name: "login", Pattern: "/login", Public: true},
	{Name: "register", Pattern: "/register", Public: true},
	{Name: "dashboard", Pattern: "/dashboard"},
	{Name: "credential-new", Pattern: "/credentials/new"},
	{Name: "credential-edit", Pattern: "/credentials/:id"},
	{Name: "applications", Pattern: "/applications"},
	{Name: "application", Pattern: "/applications/:number"},
	{Name: "change-password", Pattern: "/account/password"},
	{Name: "admin", Pattern: "/admin", Role: models.RoleAdmin},
}

// Params are the values bound by a route pattern.
type Params map[string]string

// Match finds the first route whose pattern matches path. Literal routes
// are listed before parameterized ones so /credentials/new wins over
// /credentials/:id.
func Match(path string) (Route, Params, bool) {
	segs := split(path)
	for _, r := range Routes {
		if params, ok := match(split(r.Pattern), segs); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func match(pattern, segs []string) (Params, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := Params{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, false
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// Navigate resolves path and applies Decide. Public routes always render.
func Navigate(p Principal, path string) (Decision, Route, Params, error) {
	if path == "" || path == "/" {
		path = DashboardPath
	}
	r, params, ok := Match(path)
	if !ok {
		return Decision{}, Route{}, nil, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}
	if r.Public {
		return Render(), r, params, nil
	}
	return Decide(p, r.Role), r, params, nil
}
