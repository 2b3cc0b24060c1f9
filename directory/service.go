package directory

import (
	"context"
	"errors"

	"agreementflow/party"
)

// ProfileStore abstracts repository operations for the service.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	ListByKind(ctx context.Context, kind Kind, limit int) ([]Profile, error)
	Upsert(ctx context.Context, p Profile) error
}

// Service resolves stored profiles into agreement party inputs.
type Service struct {
	repo ProfileStore
}

func NewService(repo ProfileStore) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByKind(ctx context.Context, kind Kind, limit int) ([]Profile, error) {
	return s.repo.ListByKind(ctx, kind, limit)
}

func (s *Service) Save(ctx context.Context, p Profile) error {
	return s.repo.Upsert(ctx, p)
}

// PartyInput loads a profile and converts it to a composer candidate. A
// missing profile yields a nil candidate rather than an error so drafting can
// proceed on normalization placeholders.
func (s *Service) PartyInput(ctx context.Context, id string) (*party.Input, error) {
	if id == "" {
		return nil, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p.PartyInput(), nil
}
