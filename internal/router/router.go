// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps the catalog routes to their
// handlers.
package router

import (
	"fmt"

	"github.com/deppfellow/locallibrary/internal/handler"
	"github.com/deppfellow/locallibrary/internal/metrics"
	"github.com/deppfellow/locallibrary/internal/middleware"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/render"
	"github.com/deppfellow/locallibrary/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, m *metrics.Metrics) (*echo.Echo, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}

	mw := middleware.NewMiddlewares(s, m)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		mw.Global.CORS(),
		mw.Global.Secure(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.RateLimit.Limit(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(router, h, m)
	registerCatalogRoutes(router, h)

	return router, nil
}

func registerCatalogRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Catalog.Root)

	catalog := r.Group(model.CatalogPath)
	catalog.GET("", h.Catalog.Index)

	entities := []struct {
		kind    model.Kind
		handler *handler.EntityHandler
	}{
		{model.KindAuthor, h.Authors},
		{model.KindBook, h.Books},
		{model.KindGenre, h.Genres},
		{model.KindBookInstance, h.BookInstances},
	}

	for _, e := range entities {
		base := "/" + string(e.kind)

		catalog.GET(base+"/create", e.handler.CreateForm)
		catalog.POST(base+"/create", e.handler.Create)

		catalog.GET(base+"/:id/delete", e.handler.DeleteForm)
		catalog.POST(base+"/:id/delete", e.handler.Delete)

		catalog.GET(base+"/:id/update", e.handler.UpdateForm)
		catalog.POST(base+"/:id/update", e.handler.Update)

		catalog.GET(base+"/:id", e.handler.Detail)
		catalog.GET(base+"s", e.handler.List)
	}
}
