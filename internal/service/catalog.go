package service

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/pipeline"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/rs/zerolog"
)

// IndexCounts are the catalog totals on the home page.
type IndexCounts struct {
	Books                  int64
	BookInstances          int64
	BookInstancesAvailable int64
	Authors                int64
	Genres                 int64
}

type CatalogService struct {
	repos *repository.Repositories
}

func NewCatalogService(repos *repository.Repositories) *CatalogService {
	return &CatalogService{repos: repos}
}

// Index renders the home page. A failed count is shown on the page instead
// of failing the request.
func (s *CatalogService) Index(ctx context.Context) (pipeline.Outcome, error) {
	var counts IndexCounts

	err := pipeline.FanOut(ctx,
		count(&counts.Books, s.repos.Books.Count),
		count(&counts.BookInstances, s.repos.BookInstances.Count),
		func(ctx context.Context) error {
			n, err := s.repos.BookInstances.CountByStatus(ctx, model.StatusAvailable)
			counts.BookInstancesAvailable = n
			return err
		},
		count(&counts.Authors, s.repos.Authors.Count),
		count(&counts.Genres, s.repos.Genres.Count),
	)

	data := map[string]any{
		"title": "Local Library Home",
		"data":  counts,
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to count catalog entities")
		data["error"] = err
		data["data"] = IndexCounts{}
	}

	return pipeline.Render("index", data), nil
}

func count(dst *int64, fn func(ctx context.Context) (int64, error)) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		n, err := fn(ctx)
		*dst = n
		return err
	}
}
