package services

import (
	"context"

	"sellerhub/internal/apperr"
	"sellerhub/internal/domain"
	"sellerhub/internal/repos"
)

type CatalogService struct {
	Cats *repos.CategoryRepo
}

func NewCatalogService(cats *repos.CategoryRepo) *CatalogService {
	return &CatalogService{Cats: cats}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.Cats.List(ctx)
	if err != nil {
		return nil, apperr.Store("Failed to fetch categories", err)
	}
	return cats, nil
}
