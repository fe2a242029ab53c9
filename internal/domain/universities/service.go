package universities

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all universities, or a name search when query is set.
func (s *Service) List(ctx context.Context, query string) ([]University, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*University, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*University, error) {
	return s.repo.GetByName(ctx, name)
}
