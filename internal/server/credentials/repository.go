package credentials

import "context"

type Repository interface {
	Create(ctx context.Context, c *Credential) (*Credential, error)
	Get(ctx context.Context, id string) (*Credential, error)
	Update(ctx context.Context, c *Credential) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]Credential, error)
	List(ctx context.Context) ([]Credential, error)
}
