// Package api serves the use cases over HTTP.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/errfromexample/usecases"
)

//errfrom:union
type APIError interface{ apiError() }

// Unprocessable hides everything but the text of a use case failure from
// clients.
//
//errfrom:type usecases.UseCaseError
type Unprocessable struct{ Msg string }

func (Unprocessable) apiError() {}

type BadRequest struct{ Msg string }

func (BadRequest) apiError() {}

type Handler struct{ svc *usecases.Service }

func Register(e *echo.Echo, svc *usecases.Service) {
	h := &Handler{svc: svc}
	e.PUT("/users/:id", h.Rename)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Rename(c echo.Context) error {
	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, BadRequest{Msg: "malformed body"})
	}

	if err := h.svc.Rename(c.Param("id"), req.Name); err != nil {
		return respond(c, APIErrorFromUseCaseError(err))
	}
	return c.NoContent(http.StatusNoContent)
}

func respond(c echo.Context, err APIError) error {
	switch err := err.(type) {
	case BadRequest:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Msg})
	case Unprocessable:
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Msg})
	}
	return echo.ErrInternalServerError
}
