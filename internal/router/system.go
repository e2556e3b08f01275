package router

import (
	"github.com/deppfellow/locallibrary/internal/handler"
	"github.com/deppfellow/locallibrary/internal/metrics"
	"github.com/deppfellow/locallibrary/internal/render"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints outside the catalog.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *metrics.Metrics) {
	r.GET("/status", h.Health.CheckHealth)

	if m != nil {
		r.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	r.StaticFS("/static", render.Static())
}
