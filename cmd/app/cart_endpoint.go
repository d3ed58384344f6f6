package main

import (
	"net/http"

	"DripmenStore/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Qty       int    `json:"quantity"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

type couponRequest struct {
	Code string `json:"code"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService, r responder) {
	p := g.Group("/cart")

	// GET cart
	p.GET("", func(c echo.Context) error {
		cart, err := cs.Get(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, cart)
	})

	// ADD item
	p.POST("", func(c echo.Context) error {
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		if _, err := cs.AddProduct(c.Request().Context(), req.ProductID, req.Size, req.Color, req.Qty); err != nil {
			return r.fail(c, err)
		}
		cart, err := cs.Get(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusCreated, cart)
	})

	// CHANGE quantity
	p.PATCH("/:index", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid cart line")
		}
		req := new(changeQuantityRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		if _, err := cs.ChangeQuantity(c.Request().Context(), index, req.Delta); err != nil {
			return r.fail(c, err)
		}
		cart, err := cs.Get(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, cart)
	})

	// REMOVE line
	p.DELETE("/:index", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid cart line")
		}
		if _, err := cs.RemoveLine(c.Request().Context(), index); err != nil {
			return r.fail(c, err)
		}
		cart, err := cs.Get(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, cart)
	})

	p.POST("/coupon", func(c echo.Context) error {
		req := new(couponRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		if err := cs.ApplyCoupon(c.Request().Context(), req.Code); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, map[string]string{"code": services.CouponCode})
	})

	g.GET("/counts", func(c echo.Context) error {
		counts, err := cs.Counts(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, counts)
	})
}
