package services

import (
	"cmp"
	"context"
	"slices"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/status"
)

type ApplicationService interface {
	// List returns every tracked application, most recently updated first.
	List(ctx context.Context) ([]status.ApplicationRecord, error)
	Latest(ctx context.Context, number string) (status.ApplicationRecord, error)
	At(ctx context.Context, number, timestamp string) (status.ApplicationRecord, error)
}

type applicationService struct {
	api client.API
}

func NewApplicationService(api client.API) ApplicationService {
	return &applicationService{api: api}
}

func (s *applicationService) List(ctx context.Context) ([]status.ApplicationRecord, error) {
	raw, err := s.api.Applications(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := status.NormalizeList(raw)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(recs, func(a, b status.ApplicationRecord) int {
		return cmp.Compare(b.LastUpdatedAt, a.LastUpdatedAt)
	})
	return recs, nil
}

func (s *applicationService) Latest(ctx context.Context, number string) (status.ApplicationRecord, error) {
	if err := requireNumber(number); err != nil {
		return status.ApplicationRecord{}, err
	}
	raw, err := s.api.LatestApplication(ctx, number)
	if err != nil {
		return status.ApplicationRecord{}, err
	}
	return status.Normalize(raw)
}

func (s *applicationService) At(ctx context.Context, number, timestamp string) (status.ApplicationRecord, error) {
	if err := requireNumber(number); err != nil {
		return status.ApplicationRecord{}, err
	}
	if timestamp == "" {
		return s.Latest(ctx, number)
	}
	raw, err := s.api.ApplicationAt(ctx, number, timestamp)
	if err != nil {
		return status.ApplicationRecord{}, err
	}
	return status.Normalize(raw)
}

func requireNumber(number string) error {
	if number == "" {
		return client.ValidationError("invalid input", map[string]string{"application_number": "cannot be blank"})
	}
	return nil
}
