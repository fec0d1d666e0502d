package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/irccwatch/internal/client/guard"
)

// navigator tracks the current screen. Every screen entry goes through the
// route guard; redirects, including the ones the session issues on expiry
// or a 401, are printed so the user sees where they landed.
type navigator struct {
	mu        sync.Mutex
	principal guard.Principal
	current   string
	out       io.Writer
}

func newNavigator(p guard.Principal, out io.Writer) *navigator {
	return &navigator{principal: p, out: out}
}

// enter asks the guard for path. ok is false when the screen must not render.
func (n *navigator) enter(path string) (route guard.Route, params guard.Params, ok bool) {
	decision, route, params, err := guard.Navigate(n.principal, path)
	if err != nil {
		fmt.Fprintln(n.out, "Unknown screen:", path)
		return route, nil, false
	}

	if decision.Action == guard.ActionRedirect {
		n.moveTo(decision.Path)
		return route, nil, false
	}

	n.mu.Lock()
	n.current = path
	n.mu.Unlock()
	return route, params, true
}

// redirect satisfies session.Redirector. Redirects to the screen the user
// is already on are silent.
func (n *navigator) redirect(_ context.Context, path string) {
	if n.Current() == path {
		return
	}
	n.moveTo(path)
}

func (n *navigator) moveTo(path string) {
	n.mu.Lock()
	n.current = path
	n.mu.Unlock()

	fmt.Fprintln(n.out, "→", path)
}

func (n *navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
