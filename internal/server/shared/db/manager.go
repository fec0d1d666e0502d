package db

import (
	"github.com/dmitrijs2005/irccwatch/internal/server/applications"
	"github.com/dmitrijs2005/irccwatch/internal/server/credentials"
	"github.com/dmitrijs2005/irccwatch/internal/server/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Credentials() credentials.Repository
	Applications() applications.Repository
}
