package main

import (
	"net/http"

	"DripmenStore/internal/middleware"
	"DripmenStore/internal/model"
	"DripmenStore/internal/services"

	"github.com/labstack/echo/v4"
)

func registerAddressRoutes(g *echo.Group, as *services.AddressService, r responder) {
	p := g.Group("/addresses")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		addrs, err := as.List(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, addrs)
	})

	p.POST("", func(c echo.Context) error {
		req := new(model.AddressInput)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		addrs, err := as.Add(c.Request().Context(), *req)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusCreated, addrs)
	})

	p.PUT("/:index", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid address")
		}
		req := new(model.AddressInput)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		addrs, err := as.Update(c.Request().Context(), index, *req)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, addrs)
	})

	p.DELETE("/:index", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid address")
		}
		addrs, err := as.Remove(c.Request().Context(), index)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, addrs)
	})

	p.POST("/:index/default", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid address")
		}
		addrs, err := as.SetDefault(c.Request().Context(), index)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, addrs)
	})

	// checkout form fields from a saved address
	p.GET("/:index/prefill", func(c echo.Context) error {
		index, ok := indexParam(c, "index")
		if !ok {
			return badRequest(c, "invalid address")
		}
		in, err := as.Prefill(c.Request().Context(), index)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, in)
	})
}
