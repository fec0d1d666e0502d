package users

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}
