package main

import (
	"net/http"

	"DripmenStore/internal/services"

	"github.com/labstack/echo/v4"
)

type toggleWishlistRequest struct {
	ProductID string `json:"product_id"`
}

func registerWishlistRoutes(g *echo.Group, ws *services.WishlistService, r responder) {
	p := g.Group("/wishlist")

	p.GET("", func(c echo.Context) error {
		entries, err := ws.List(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, entries)
	})

	p.POST("/toggle", func(c echo.Context) error {
		req := new(toggleWishlistRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		added, entries, err := ws.Toggle(c.Request().Context(), req.ProductID)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, echo.Map{"added": added, "items": entries})
	})

	p.POST("/move-all", func(c echo.Context) error {
		lines, err := ws.MoveAllToCart(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, lines)
	})

	p.POST("/:index/cart", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid wishlist entry")
		}
		lines, err := ws.AddToCart(c.Request().Context(), index)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, lines)
	})

	p.DELETE("/:index", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid wishlist entry")
		}
		entries, err := ws.Remove(c.Request().Context(), index)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, entries)
	})
}
