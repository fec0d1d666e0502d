package session

import "github.com/dmitrijs2005/irccwatch/internal/client/models"

// State is the lifecycle position of a Session.
type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the session state. It satisfies
// guard.Principal.
type Snapshot struct {
	State State
	User  *models.User
}

func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

func (s Snapshot) Role() models.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
