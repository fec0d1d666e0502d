package db

import (
	"github.com/dmitrijs2005/irccwatch/internal/server/applications"
	"github.com/dmitrijs2005/irccwatch/internal/server/credentials"
	"github.com/dmitrijs2005/irccwatch/internal/server/users"
)

// InMemoryRepositoryManager holds process-local repositories. Data is lost
// on restart.
type InMemoryRepositoryManager struct {
	users        *users.MemoryRepository
	credentials  *credentials.MemoryRepository
	applications *applications.MemoryRepository
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Credentials() credentials.Repository {
	return m.credentials
}

func (m *InMemoryRepositoryManager) Applications() applications.Repository {
	return m.applications
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users:        users.NewMemoryRepository(),
		credentials:  credentials.NewMemoryRepository(),
		applications: applications.NewMemoryRepository(),
	}
}
