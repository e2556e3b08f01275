package handler

import (
	"github.com/deppfellow/locallibrary/internal/metrics"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/server"
	"github.com/deppfellow/locallibrary/internal/service"
)

// Handlers groups every HTTP handler the router registers.
type Handlers struct {
	Health  *HealthHandler
	Catalog *CatalogHandler

	Authors       *EntityHandler
	Genres        *EntityHandler
	Books         *EntityHandler
	BookInstances *EntityHandler
}

func NewHandlers(s *server.Server, services *service.Services, m *metrics.Metrics) *Handlers {
	h := NewHandler(s, m)

	return &Handlers{
		Health:        NewHealthHandler(h),
		Catalog:       NewCatalogHandler(h, services.Catalog),
		Authors:       NewEntityHandler(h, model.KindAuthor, services.Authors, "authorid"),
		Genres:        NewEntityHandler(h, model.KindGenre, services.Genres, "genreid"),
		Books:         NewEntityHandler(h, model.KindBook, services.Books, "id"),
		BookInstances: NewEntityHandler(h, model.KindBookInstance, services.BookInstances, "id"),
	}
}
