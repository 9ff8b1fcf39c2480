package service

import (
	"context"

	"gpevim-backend/internal/domains/publication/model"
	"gpevim-backend/internal/shared/store"
)

// ServiceInterface is the publication use-case surface consumed by the handler.
type ServiceInterface interface {
	List(ctx context.Context) ([]model.Publication, error)
	GetByID(ctx context.Context, id int64) (*model.Publication, error)
	Create(ctx context.Context, req *model.PublicationRequest) (*model.Publication, error)
	Update(ctx context.Context, id int64, req *model.PublicationRequest) (*model.Publication, error)
	Delete(ctx context.Context, id int64) error
}

type publicationService struct {
	repo store.Store[model.Publication]
}

// NewPublicationService expects the fallback coordinator (or a single
// backend when fallback is disabled).
func NewPublicationService(repo store.Store[model.Publication]) ServiceInterface {
	return &publicationService{repo: repo}
}

// List returns every reachable publication, newest first.
func (s *publicationService) List(ctx context.Context) ([]model.Publication, error) {
	pubs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if pubs == nil {
		pubs = make([]model.Publication, 0)
	}
	model.SortNewestFirst(pubs)
	return pubs, nil
}

func (s *publicationService) GetByID(ctx context.Context, id int64) (*model.Publication, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *publicationService) Create(ctx context.Context, req *model.PublicationRequest) (*model.Publication, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req.ToEntity())
}

func (s *publicationService) Update(ctx context.Context, id int64, req *model.PublicationRequest) (*model.Publication, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req.ToEntity())
}

func (s *publicationService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
