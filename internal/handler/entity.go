package handler

import (
	"context"
	"net/url"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/pipeline"
	"github.com/labstack/echo/v4"
)

// EntityService is the surface every catalog entity service offers.
type EntityService interface {
	List(ctx context.Context) (pipeline.Outcome, error)
	Detail(ctx context.Context, id string) (pipeline.Outcome, error)
	CreateForm(ctx context.Context) (pipeline.Outcome, error)
	Create(ctx context.Context, form url.Values) (pipeline.Outcome, error)
	UpdateForm(ctx context.Context, id string) (pipeline.Outcome, error)
	Update(ctx context.Context, id string, form url.Values) (pipeline.Outcome, error)
	DeleteForm(ctx context.Context, id string) (pipeline.Outcome, error)
	Delete(ctx context.Context, id string) (pipeline.Outcome, error)
}

// EntityHandler serves the list, detail, create, update and delete pages of
// one entity kind.
type EntityHandler struct {
	Handler
	kind    model.Kind
	service EntityService

	// deleteField is the form field carrying the id on delete POST.
	deleteField string
}

func NewEntityHandler(h Handler, kind model.Kind, svc EntityService, deleteField string) *EntityHandler {
	return &EntityHandler{Handler: h, kind: kind, service: svc, deleteField: deleteField}
}

func (h *EntityHandler) List(c echo.Context) error {
	return h.Handle(c, string(h.kind), "list", h.service.List)
}

func (h *EntityHandler) Detail(c echo.Context) error {
	id := c.Param("id")
	return h.Handle(c, string(h.kind), "detail", func(ctx context.Context) (pipeline.Outcome, error) {
		return h.service.Detail(ctx, id)
	})
}

func (h *EntityHandler) CreateForm(c echo.Context) error {
	return h.Handle(c, string(h.kind), "create_form", h.service.CreateForm)
}

func (h *EntityHandler) Create(c echo.Context) error {
	form, err := formValues(c)
	if err != nil {
		return err
	}
	return h.Handle(c, string(h.kind), "create", func(ctx context.Context) (pipeline.Outcome, error) {
		return h.service.Create(ctx, form)
	})
}

func (h *EntityHandler) UpdateForm(c echo.Context) error {
	id := c.Param("id")
	return h.Handle(c, string(h.kind), "update_form", func(ctx context.Context) (pipeline.Outcome, error) {
		return h.service.UpdateForm(ctx, id)
	})
}

func (h *EntityHandler) Update(c echo.Context) error {
	id := c.Param("id")
	form, err := formValues(c)
	if err != nil {
		return err
	}
	return h.Handle(c, string(h.kind), "update", func(ctx context.Context) (pipeline.Outcome, error) {
		return h.service.Update(ctx, id, form)
	})
}

func (h *EntityHandler) DeleteForm(c echo.Context) error {
	id := c.Param("id")
	return h.Handle(c, string(h.kind), "delete_form", func(ctx context.Context) (pipeline.Outcome, error) {
		return h.service.DeleteForm(ctx, id)
	})
}

// Delete takes the id from the confirmation form, falling back to the path.
func (h *EntityHandler) Delete(c echo.Context) error {
	form, err := formValues(c)
	if err != nil {
		return err
	}

	id := form.Get(h.deleteField)
	if id == "" {
		id = c.Param("id")
	}

	return h.Handle(c, string(h.kind), "delete", func(ctx context.Context) (pipeline.Outcome, error) {
		return h.service.Delete(ctx, id)
	})
}

func formValues(c echo.Context) (url.Values, error) {
	form, err := c.FormParams()
	if err != nil {
		return nil, errs.ValidationError(err)
	}
	return form, nil
}
