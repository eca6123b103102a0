package bookinstances

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type operation func(ctx context.Context, req Request) (*Response, error)

type handler struct {
	controller *Controller
}

func (h *handler) list(c echo.Context) error {
	query := ListBookInstancesQuery{}
	if err := c.Bind(&query); err != nil {
		return errors.WithStack(err)
	}

	return h.serve(c, h.controller.List, Request{Query: &query})
}

func (h *handler) detail(c echo.Context) error {
	return h.serve(c, h.controller.Detail, Request{ID: c.Param("id")})
}

func (h *handler) createForm(c echo.Context) error {
	return h.serve(c, h.controller.CreateForm, Request{})
}

func (h *handler) create(c echo.Context) error {
	payload := BookInstancePayload{}
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	return h.serve(c, h.controller.Create, Request{Payload: &payload})
}

func (h *handler) updateForm(c echo.Context) error {
	return h.serve(c, h.controller.UpdateForm, Request{ID: c.Param("id")})
}

func (h *handler) update(c echo.Context) error {
	payload := BookInstancePayload{}
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	return h.serve(c, h.controller.Update, Request{ID: c.Param("id"), Payload: &payload})
}

func (h *handler) deleteForm(c echo.Context) error {
	return h.serve(c, h.controller.DeleteForm, Request{ID: c.Param("id")})
}

func (h *handler) deleteBookInstance(c echo.Context) error {
	payload := DeleteBookInstancePayload{}
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	return h.serve(c, h.controller.Delete, Request{ID: c.Param("id"), DeleteID: payload.BookInstanceID})
}

// serve runs the operation and writes its response.
func (h *handler) serve(c echo.Context, op operation, req Request) error {
	resp, err := op(c.Request().Context(), req)
	if err != nil {
		return errors.WithStack(err)
	}

	if resp.Redirect != "" {
		return errors.WithStack(c.Redirect(resp.Status, resp.Redirect))
	}
	return errors.WithStack(c.Render(resp.Status, resp.View, resp.Data))
}

// allowEmptyBody lets a form submit with no fields at all so it reaches
// validation instead of being rejected by the binder.
func allowEmptyBody(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set("disallow_empty_body", false)
		return next(c)
	}
}
