package main

import (
	"net/http"

	"DripmenStore/internal/middleware"
	"DripmenStore/internal/model"
	"DripmenStore/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCardRoutes(g *echo.Group, cs *services.CardService, r responder) {
	p := g.Group("/cards")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		cards, err := cs.List(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, cards)
	})

	p.POST("", func(c echo.Context) error {
		req := new(model.CardInput)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		cards, err := cs.Add(c.Request().Context(), *req)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusCreated, cards)
	})

	p.DELETE("/:index", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid card")
		}
		cards, err := cs.Remove(c.Request().Context(), index)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, cards)
	})
}
