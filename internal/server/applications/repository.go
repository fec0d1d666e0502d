package applications

import "context"

type Repository interface {
	// Append stores a new snapshot. Snapshots of one number must have
	// strictly increasing LastUpdatedTime.
	Append(ctx context.Context, rec Record) error
	Latest(ctx context.Context, number string) (Record, error)
	At(ctx context.Context, number string, ts int64) (Record, error)
}
