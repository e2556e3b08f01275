package handler

import (
	"net/http"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	Handler
	service *service.CatalogService
}

func NewCatalogHandler(h Handler, svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{Handler: h, service: svc}
}

// Index renders the home page with the catalog counts.
func (h *CatalogHandler) Index(c echo.Context) error {
	return h.Handle(c, "catalog", "index", h.service.Index)
}

// Root sends visitors to the catalog.
func (h *CatalogHandler) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, model.CatalogPath)
}
